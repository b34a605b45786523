package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testApp) createMagazine(t *testing.T, token, title string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/magazines", token, map[string]any{
		"title":       title,
		"description": "curated trips",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	mag := decodeBody[map[string]any](t, w)["magazine"].(map[string]any)
	return mag["id"].(string)
}

func TestCreateMagazine(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")

	w := app.do(t, http.MethodPost, "/magazines", token, map[string]any{
		"title":       "Summer issue",
		"description": "curated trips",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	mag := decodeBody[map[string]any](t, w)["magazine"].(map[string]any)
	assert.Equal(t, "Summer issue", mag["name"])
	assert.Equal(t, "curated trips", mag["description"])
	assert.Empty(t, mag["roadtrip_ids"].([]any))
}

func TestCreateMagazine_MissingFields(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")

	w := app.do(t, http.MethodPost, "/magazines", token, map[string]any{"title": "no description"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMagazines(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")
	app.createMagazine(t, token, "Summer issue")
	app.createMagazine(t, token, "Winter issue")

	w := app.do(t, http.MethodGet, "/magazines", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeBody[[]map[string]any](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "Summer issue", got[0]["name"])
	assert.Equal(t, "Winter issue", got[1]["name"])
}

func TestUpdateMagazine_Fields(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")
	id := app.createMagazine(t, token, "Summer issue")

	w := app.do(t, http.MethodPut, "/magazines", token, map[string]any{
		"magazine_id": id,
		"title":       "Autumn issue",
	})
	require.Equal(t, http.StatusOK, w.Code)

	mag := decodeBody[map[string]any](t, w)["magazine"].(map[string]any)
	assert.Equal(t, "Autumn issue", mag["name"])
	assert.Equal(t, "curated trips", mag["description"], "absent fields keep their stored values")
}

func TestUpdateMagazine_AddRemoveRoadtrip(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")
	magID := app.createMagazine(t, token, "Summer issue")
	tripID := app.createRoadtrip(t, token, "Alps")

	w := app.do(t, http.MethodPut, "/magazines", token, map[string]any{
		"magazine_id":     magID,
		"add_roadtrip_id": tripID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Adding the same id again is a no-op.
	w = app.do(t, http.MethodPut, "/magazines", token, map[string]any{
		"magazine_id":     magID,
		"add_roadtrip_id": tripID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	mag := decodeBody[map[string]any](t, w)["magazine"].(map[string]any)
	assert.Equal(t, []any{tripID}, mag["roadtrip_ids"].([]any))

	w = app.do(t, http.MethodPut, "/magazines", token, map[string]any{
		"magazine_id":        magID,
		"remove_roadtrip_id": tripID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	mag = decodeBody[map[string]any](t, w)["magazine"].(map[string]any)
	assert.Empty(t, mag["roadtrip_ids"].([]any))
}

func TestUpdateMagazine_ReferencesAreNotValidated(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")
	magID := app.createMagazine(t, token, "Summer issue")
	tripID := app.createRoadtrip(t, token, "Alps")

	w := app.do(t, http.MethodPut, "/magazines", token, map[string]any{
		"magazine_id":     magID,
		"add_roadtrip_id": tripID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting the roadtrip leaves the reference dangling.
	w = app.do(t, http.MethodDelete, "/roadtrips/"+tripID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/magazines", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[[]map[string]any](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, []any{tripID}, got[0]["roadtrip_ids"].([]any))
}

func TestUpdateMagazine_Unknown(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")

	w := app.do(t, http.MethodPut, "/magazines", token, map[string]any{
		"magazine_id": "missing",
		"title":       "x",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMagazine_MissingID(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")

	w := app.do(t, http.MethodPut, "/magazines", token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMagazine(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")
	id := app.createMagazine(t, token, "Summer issue")

	w := app.do(t, http.MethodDelete, "/magazines", token, map[string]any{"magazine_id": id})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/magazines", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]map[string]any](t, w))
}

func TestDeleteMagazine_Unknown(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "alice")

	w := app.do(t, http.MethodDelete, "/magazines", token, map[string]any{"magazine_id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
