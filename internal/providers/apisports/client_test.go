package apisports_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/apisports"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playersPayload = `{
  "get": "players/",
  "parameters": {"search": "curry"},
  "errors": [],
  "results": 2,
  "response": [
    {"id": 123, "firstname": "Seth", "lastname": "Curry"},
    {"id": 124, "firstname": "Stephen", "lastname": "Curry"}
  ]
}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "api-nba-v1.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T, server *httptest.Server) *apisports.Client {
	t.Helper()
	c, err := apisports.New(apisports.Config{BaseURL: server.URL, APIKey: "test-key"}, nil)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := apisports.New(apisports.Config{}, nil)
	assert.ErrorIs(t, err, apisports.ErrMissingAPIKey)
}

func TestClient_ResolvePlayerPrefersExactMatch(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "Curry", r.URL.Query().Get("search"))
		w.Write([]byte(playersPayload))
	})
	c := newClient(t, server)

	player, err := c.ResolvePlayer(context.Background(), "Stephen Curry")
	require.NoError(t, err)
	assert.Equal(t, &models.Player{ID: "124", Name: "Stephen Curry"}, player)

	// no exact match falls back to the first result
	player, err = c.ResolvePlayer(context.Background(), "Dell Curry")
	require.NoError(t, err)
	assert.Equal(t, "123", player.ID)
}

func TestClient_ResolvePlayerNotFound(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[],"results":0,"response":[]}`))
	})
	c := newClient(t, server)

	_, err := c.ResolvePlayer(context.Background(), "Zzyzx Nobody")

	var resErr *models.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "Zzyzx Nobody", resErr.Player)

	_, err = c.ResolvePlayer(context.Background(), "   ")
	assert.Equal(t, "resolution_failure", models.ErrorKind(err))
}

func TestClient_ResolvePlayerStatusError(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"You are not subscribed to this API."}`, http.StatusForbidden)
	})
	c := newClient(t, server)

	_, err := c.ResolvePlayer(context.Background(), "Stephen Curry")

	var fetchErr *models.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Equal(t, "resolve", fetchErr.Call)
}

func TestClient_FetchShots(t *testing.T) {
	const stats = `{"errors":[],"results":1,"response":[{"fgm":3,"fga":7,"tpm":1,"tpa":2}]}`
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/statistics", r.URL.Path)
		assert.Equal(t, "124", r.URL.Query().Get("id"))
		assert.Equal(t, "2023", r.URL.Query().Get("season"))
		w.Write([]byte(stats))
	})
	c := newClient(t, server)

	body, err := c.FetchShots(context.Background(), &models.Player{ID: "124"}, "2023-24")
	require.NoError(t, err)
	assert.JSONEq(t, stats, string(body))
}

func TestClient_FetchShotsAPIErrors(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":{"season":"The Season field must contain 4 characters."},"response":[]}`))
	})
	c := newClient(t, server)

	_, err := c.FetchShots(context.Background(), &models.Player{ID: "124"}, "2023-24")

	var fetchErr *models.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "shots", fetchErr.Call)
	assert.Contains(t, err.Error(), "The Season field")
}

func TestClient_FetchShotsInvalidSeason(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	c := newClient(t, server)

	_, err := c.FetchShots(context.Background(), &models.Player{ID: "124"}, "23-24")
	assert.ErrorIs(t, err, models.ErrInvalidSeason)
}
