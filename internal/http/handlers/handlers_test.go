package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/starwars-backend/internal/dto"
	"github.com/ignatzorin/starwars-backend/internal/http/middleware"
	"github.com/ignatzorin/starwars-backend/internal/service"
	"github.com/ignatzorin/starwars-backend/internal/testutil"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

func newTestStore() *testutil.Store {
	store := testutil.NewStore()
	store.AddUser(1, "luke@rebellion.org")
	store.AddCharacter(1, "Luke Skywalker")
	store.AddCharacter(2, "C-3PO")
	store.AddPlanet(1, "Tatooine")
	store.AddPlanet(5, "Dagobah")
	return store
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestUserHandler_ListUsers(t *testing.T) {
	store := newTestStore()
	r := newTestEngine()
	r.GET("/users", NewUserHandler(store.Users()).ListUsers)

	w := doJSON(r, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.UsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Here are all your users", resp.Message)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "luke@rebellion.org", resp.Users[0].Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCatalogHandler_GetPlanet(t *testing.T) {
	store := newTestStore()
	r := newTestEngine()
	h := NewCatalogHandler(store.Characters(), store.Planets())
	r.GET("/planets/:id", h.GetPlanet)

	w := doJSON(r, http.MethodGet, "/planets/5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.PlanetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Here is the planet", resp.Message)
	require.NotNil(t, resp.Planet)
	assert.Equal(t, int64(5), resp.Planet.ID)
}

func TestCatalogHandler_GetPlanet_NotFound(t *testing.T) {
	store := newTestStore()
	r := newTestEngine()
	h := NewCatalogHandler(store.Characters(), store.Planets())
	r.GET("/planets/:id", h.GetPlanet)

	w := doJSON(r, http.MethodGet, "/planets/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Planet not found", decodeMessage(t, w))
}

func TestCatalogHandler_GetCharacter_InvalidID(t *testing.T) {
	store := newTestStore()
	r := newTestEngine()
	h := NewCatalogHandler(store.Characters(), store.Planets())
	r.GET("/people/:id", h.GetCharacter)

	for _, id := range []string{"abc", "0", "-3"} {
		w := doJSON(r, http.MethodGet, "/people/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "id=%s", id)
	}
}

func TestCatalogHandler_ListCharacters(t *testing.T) {
	store := newTestStore()
	r := newTestEngine()
	h := NewCatalogHandler(store.Characters(), store.Planets())
	r.GET("/people", h.ListCharacters)

	w := doJSON(r, http.MethodGet, "/people", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.CharactersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Characters, 2)
	assert.Equal(t, int64(1), resp.Characters[0].ID)
	assert.Equal(t, int64(2), resp.Characters[1].ID)
}

func newFavoriteEngine(store *testutil.Store) *gin.Engine {
	svc := service.NewFavoriteService(store.Users(), store.Characters(), store.Planets(), store.Favorites())
	h := NewFavoriteHandler(svc)
	r := newTestEngine()
	r.POST("/users/favorites", h.ListUserFavorites)
	r.POST("/favorite/planet/:id", h.AddFavoritePlanet)
	r.DELETE("/favorite/planet/:id", h.RemoveFavoritePlanet)
	r.POST("/favorite/people/:id", h.AddFavoriteCharacter)
	r.DELETE("/favorite/people/:id", h.RemoveFavoriteCharacter)
	return r
}

func TestFavoriteHandler_AddAndRemoveCharacter(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	w := doJSON(r, http.MethodPost, "/favorite/people/2", `{"user_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	var added dto.FavoritesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.Equal(t, "Character successfully added to your favorites, here is the new list", added.Message)
	require.Len(t, added.Favorites, 1)
	require.NotNil(t, added.Favorites[0].CharacterID)
	assert.Equal(t, int64(2), *added.Favorites[0].CharacterID)

	w = doJSON(r, http.MethodDelete, "/favorite/people/2", `{"user_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	var removed dto.FavoritesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &removed))
	assert.Equal(t, "Character successfully deleted from your favorites, here is the new list", removed.Message)
	assert.NotNil(t, removed.Favorites)
	assert.Empty(t, removed.Favorites)
}

func TestFavoriteHandler_RemoveMissingPlanet(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	w := doJSON(r, http.MethodDelete, "/favorite/planet/5", `{"user_id":1}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, service.MsgPlanetNotInFavorites, decodeMessage(t, w))
}

func TestFavoriteHandler_UnknownUser(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	w := doJSON(r, http.MethodPost, "/favorite/planet/5", `{"user_id":77}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.MsgUserMissing, decodeMessage(t, w))
}

func TestFavoriteHandler_BadBody(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	cases := []string{``, `{`, `{}`, `{"user_id":null}`, `{"user_id":"one"}`, `{"user_id":-1}`}
	for _, body := range cases {
		w := doJSON(r, http.MethodPost, "/favorite/planet/5", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body=%q", body)
	}
}

func TestFavoriteHandler_ListUserFavorites_Empty(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	w := doJSON(r, http.MethodPost, "/users/favorites", `{"user_id":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Here are all your favorites","favorites":[]}`, w.Body.String())
}

type stubPinger struct {
	err   error
	stats sql.DBStats
}

func (p stubPinger) PingContext(context.Context) error { return p.err }
func (p stubPinger) Stats() sql.DBStats                { return p.stats }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pinger     stubPinger
		wantStatus int
		wantState  string
	}{
		{name: "healthy", pinger: stubPinger{}, wantStatus: http.StatusOK, wantState: "healthy"},
		{name: "db down", pinger: stubPinger{err: errors.New("dial tcp: refused")}, wantStatus: http.StatusServiceUnavailable, wantState: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine()
			r.GET("/health", NewHealthHandler(tt.pinger).Health)

			w := doJSON(r, http.MethodGet, "/health", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantState, resp.Status)
		})
	}
}

type stubSeeder struct {
	result *service.SeedResult
	err    error
}

func (s stubSeeder) Seed(context.Context) (*service.SeedResult, error) { return s.result, s.err }

func TestSeedHandler(t *testing.T) {
	r := newTestEngine()
	r.POST("/seed", NewSeedHandler(stubSeeder{result: &service.SeedResult{Users: 2, Characters: 5, Planets: 5}}).Seed)

	w := doJSON(r, http.MethodPost, "/seed", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp SeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Inserted.Planets)
}

func TestSeedHandler_InternalErrorIsMasked(t *testing.T) {
	r := newTestEngine()
	r.POST("/seed", NewSeedHandler(stubSeeder{err: errors.New("pq: relation \"users\" does not exist")}).Seed)

	w := doJSON(r, http.MethodPost, "/seed", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeMessage(t, w))
}

func TestFavoriteHandler_ListUserFavorites_UnknownUserIDs(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	for _, body := range []string{`{"user_id":0}`, `{"user_id":999}`} {
		w := doJSON(r, http.MethodPost, "/users/favorites", body)

		require.Equal(t, http.StatusOK, w.Code, "body=%s", body)
		assert.JSONEq(t, `{"message":"Here are all your favorites","favorites":[]}`, w.Body.String())
	}
}

func TestFavoriteHandler_ZeroUserIDOnAddIsNotFound(t *testing.T) {
	r := newFavoriteEngine(newTestStore())

	w := doJSON(r, http.MethodPost, "/favorite/planet/5", `{"user_id":0}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.MsgUserMissing, decodeMessage(t, w))
}
