package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLandmark_AdminOnly(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, adminName)
	user := app.register(t, "alice")

	w := app.do(t, http.MethodPost, "/landmarks", user, map[string]any{"name": "Pont du Gard"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	id := app.createLandmark(t, admin, "Pont du Gard")

	w = app.do(t, http.MethodGet, "/landmarks/"+id, user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[map[string]any](t, w)
	assert.Equal(t, "Pont du Gard", got["name"])
	assert.Equal(t, "viewpoint", got["amenity"])
}

func TestCreateLandmark_MissingName(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, adminName)

	w := app.do(t, http.MethodPost, "/landmarks", admin, map[string]any{"amenity": "viewpoint"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLandmarks(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, adminName)
	app.createLandmark(t, admin, "Pont du Gard")
	app.createLandmark(t, admin, "Mont Ventoux")

	w := app.do(t, http.MethodGet, "/landmarks", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeBody[[]map[string]any](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "Pont du Gard", got[0]["name"])
	assert.Equal(t, "Mont Ventoux", got[1]["name"])
}

func TestGetLandmark_Unknown(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")

	w := app.do(t, http.MethodGet, "/landmarks/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLandmark_AdminOnly(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, adminName)
	user := app.register(t, "alice")
	id := app.createLandmark(t, admin, "Pont du Gard")

	w := app.do(t, http.MethodDelete, "/landmarks/"+id, user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodDelete, "/landmarks/"+id, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/landmarks/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLandmark_RemovesReviews(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, adminName)
	alice := app.register(t, "alice")
	id := app.createLandmark(t, admin, "Pont du Gard")
	app.createReview(t, alice, id, "worth the detour", 5)

	w := app.do(t, http.MethodDelete, "/landmarks/"+id, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/reviews", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]map[string]any](t, w))
}

func TestDeleteLandmark_Unknown(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, adminName)

	w := app.do(t, http.MethodDelete, "/landmarks/missing", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
