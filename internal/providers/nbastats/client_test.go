package nbastats_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/nbastats"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const allPlayersPayload = `{
  "resource": "commonallplayers",
  "resultSets": [{
    "name": "CommonAllPlayers",
    "headers": ["PERSON_ID","DISPLAY_LAST_FIRST","DISPLAY_FIRST_LAST","ROSTERSTATUS"],
    "rowSet": [
      [2544,"James, LeBron","LeBron James",1],
      [201939,"Curry, Stephen","Stephen Curry",1]
    ]
  }]
}`

const shotsPayload = `{"resultSets":[{"name":"Shot_Chart_Detail","headers":["LOC_X","LOC_Y","SHOT_MADE_FLAG"],"rowSet":[[1,2,1]]}]}`

func newServer(t *testing.T, shotsStatus int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.nba.com/", r.Header.Get("Referer"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		switch r.URL.Path {
		case "/commonallplayers":
			assert.Equal(t, "0", r.URL.Query().Get("IsOnlyCurrentSeason"))
			w.Write([]byte(allPlayersPayload))
		case "/shotchartdetail":
			q := r.URL.Query()
			assert.Equal(t, "201939", q.Get("PlayerID"))
			assert.Equal(t, "2022-23", q.Get("Season"))
			assert.Equal(t, "Playoffs", q.Get("SeasonType"))
			assert.Equal(t, "FGA", q.Get("ContextMeasure"))
			assert.True(t, q.Has("OpponentTeamID"))
			if shotsStatus != http.StatusOK {
				http.Error(w, "upstream down", shotsStatus)
				return
			}
			w.Write([]byte(shotsPayload))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Identity(t *testing.T) {
	c := nbastats.New(nbastats.Config{}, nil)
	assert.Equal(t, "nbastats", c.GetProviderKey())
	assert.Equal(t, models.VariantNBAStats, c.GetSchemaVariant())
	assert.NotEmpty(t, c.GetDisplayName())
}

func TestClient_ResolvePlayer(t *testing.T) {
	server := newServer(t, http.StatusOK)
	c := nbastats.New(nbastats.Config{BaseURL: server.URL, Timeout: time.Second}, nil)

	player, err := c.ResolvePlayer(context.Background(), "  stephen CURRY ")
	require.NoError(t, err)
	assert.Equal(t, &models.Player{ID: "201939", Name: "Stephen Curry"}, player)
}

func TestClient_ResolvePlayerNotFound(t *testing.T) {
	server := newServer(t, http.StatusOK)
	c := nbastats.New(nbastats.Config{BaseURL: server.URL}, nil)

	_, err := c.ResolvePlayer(context.Background(), "Zzyzx Nobody")

	var resErr *models.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "Zzyzx Nobody", resErr.Player)
	assert.Equal(t, "nbastats", resErr.Provider)
}

func TestClient_ResolvePlayerBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>blocked</html>`))
	}))
	defer server.Close()

	c := nbastats.New(nbastats.Config{BaseURL: server.URL}, nil)
	_, err := c.ResolvePlayer(context.Background(), "Stephen Curry")
	assert.Equal(t, "fetch_failure", models.ErrorKind(err))
}

func TestClient_FetchShots(t *testing.T) {
	server := newServer(t, http.StatusOK)
	c := nbastats.New(nbastats.Config{BaseURL: server.URL, SeasonType: "Playoffs"}, nil)

	body, err := c.FetchShots(context.Background(), &models.Player{ID: "201939"}, "2022-23")
	require.NoError(t, err)
	assert.JSONEq(t, shotsPayload, string(body))
}

func TestClient_FetchShotsStatusError(t *testing.T) {
	server := newServer(t, http.StatusInternalServerError)
	c := nbastats.New(nbastats.Config{BaseURL: server.URL, SeasonType: "Playoffs"}, nil)

	_, err := c.FetchShots(context.Background(), &models.Player{ID: "201939"}, "2022-23")

	var fetchErr *models.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, "shots", fetchErr.Call)
}

func TestClient_FetchShotsInvalidSeason(t *testing.T) {
	c := nbastats.New(nbastats.Config{BaseURL: "http://127.0.0.1:0"}, nil)

	_, err := c.FetchShots(context.Background(), &models.Player{ID: "1"}, "2023")
	assert.ErrorIs(t, err, models.ErrInvalidSeason)
}
