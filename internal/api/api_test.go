package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roadbook/roadbook/internal/api"
	"github.com/roadbook/roadbook/internal/auth"
	"github.com/roadbook/roadbook/internal/cache"
	"github.com/roadbook/roadbook/internal/store"
)

// ---- test harness ----

// testApp wires the real memory store and token issuer behind the full
// router, so tests exercise middleware, routing, and handlers together.
type testApp struct {
	router http.Handler
	store  *store.Memory
	tokens *auth.TokenIssuer
}

const adminName = "root"

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithCache(t, cache.Noop{})
}

func newTestAppWithCache(t *testing.T, c api.RoadtripCache) *testApp {
	t.Helper()

	st := store.NewMemory()
	tokens, err := auth.NewTokenIssuer(strings.Repeat("s", 32), time.Hour)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := api.NewHandlers(st, c, tokens, []string{adminName}, log)
	router := api.NewRouter(handlers, []string{"http://localhost:3000"}, st, nil, log)

	return &testApp{router: router, store: st, tokens: tokens}
}

// do sends a JSON request through the router. An empty token leaves the
// Authorization header unset.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the public endpoint and returns the
// issued token. Registering adminName yields an admin principal.
func (a *testApp) register(t *testing.T, username string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    username + "@example.com",
		"username": username,
		"password": "pw-" + username,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	token := w.Header().Get("Authorization")
	require.NotEmpty(t, token)
	return token
}

// login posts the form-encoded credentials and returns the recorder.
func (a *testApp) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// createLandmark seeds a landmark through the admin endpoint and returns its id.
func (a *testApp) createLandmark(t *testing.T, adminToken, name string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/landmarks", adminToken, map[string]any{
		"name":    name,
		"amenity": "viewpoint",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody[map[string]string](t, w)["landmark_id"]
}

// createRoadtrip seeds a roadtrip for the given principal and returns its id.
func (a *testApp) createRoadtrip(t *testing.T, token, title string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/roadtrips", token, map[string]any{
		"title": title,
		"waypoints": []map[string]any{
			{"id": "wp-1", "name": "Start", "position": map[string]float64{"lat": 48.8, "lon": 2.3}},
			{"id": "wp-2", "name": "End", "position": map[string]float64{"lat": 43.2, "lon": 5.4}},
		},
		"distance_between_waypoints": []float64{661.0},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody[map[string]string](t, w)["roadtrip_id"]
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
