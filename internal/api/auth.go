package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/roadbook/roadbook/internal/auth"
	"github.com/roadbook/roadbook/internal/journal"
	"github.com/roadbook/roadbook/internal/store"
)

// Register handles POST /auth/register. On success the signed token is
// returned in the Authorization response header.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	role := journal.RoleUser
	if h.admins[req.Username] {
		role = journal.RoleAdmin
	}

	account := &journal.Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := h.store.CreateAccount(r.Context(), account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		h.log.Error("create account failed", "username", req.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.tokens.Issue(account.Username)
	if err != nil {
		h.log.Error("token issue failed", "username", account.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Authorization", token)
	writeJSON(w, http.StatusCreated, map[string]string{"detail": "user created successfully"})
}

// Login handles POST /auth/login. The body is form-encoded with username
// and password fields.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	account, err := h.store.GetAccountByUsername(r.Context(), username)
	if err != nil {
		h.log.Error("account lookup failed", "username", username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if account == nil || !auth.CheckPassword(password, account.PasswordHash) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := h.tokens.Issue(account.Username)
	if err != nil {
		h.log.Error("token issue failed", "username", username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Authorization", token)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "user logged in successfully"})
}
