package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/roadbook/roadbook/internal/journal"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal validates the Authorization token and attaches the matching
// account to the request context. Requests without a valid token, or whose
// subject no longer resolves to an account, are rejected with 401.
func (h *Handlers) Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		raw = strings.TrimPrefix(raw, "Bearer ")
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		username, err := h.tokens.Subject(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		account, err := h.store.GetAccountByUsername(r.Context(), username)
		if err != nil {
			h.log.Error("principal lookup failed", "username", username, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if account == nil {
			writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects principals whose role does not grant the account
// listing capability. It must run after Principal.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := principal(r.Context())
		if p == nil || !p.Role.Can(journal.CapListAccounts) {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// principal returns the authenticated account, or nil outside the
// Principal middleware.
func principal(ctx context.Context) *journal.Account {
	p, _ := ctx.Value(principalKey).(*journal.Account)
	return p
}
