package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	store    Store
	cache    RoadtripCache
	tokens   TokenIssuer
	admins   map[string]bool
	log      *slog.Logger
	validate *validator.Validate
}

// NewHandlers constructs Handlers with all required dependencies. Usernames
// in adminUsers receive the admin role at registration.
func NewHandlers(store Store, cache RoadtripCache, tokens TokenIssuer, adminUsers []string, log *slog.Logger) *Handlers {
	admins := make(map[string]bool, len(adminUsers))
	for _, u := range adminUsers {
		admins[u] = true
	}
	return &Handlers{
		store:    store,
		cache:    cache,
		tokens:   tokens,
		admins:   admins,
		log:      log,
		validate: validator.New(),
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decode parses the JSON body into dst and runs struct validation. On
// failure it writes a 400 response and returns false.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer func() { _ = r.Body.Close() }()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "body is required")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
