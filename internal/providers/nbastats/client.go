package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/metrics"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/upstream"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/tidwall/gjson"
)

const (
	ProviderKey = "nbastats"
	BaseURL     = "https://stats.nba.com/stats"

	DefaultSeasonType = "Regular Season"
	DefaultSeason     = "2023-24"
)

// stats.nba.com rejects requests that don't look like they come from nba.com
var browserHeaders = map[string]string{
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Origin":             "https://www.nba.com",
	"Referer":            "https://www.nba.com/",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
}

// Config holds the stats.nba.com client settings
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	SeasonType string // "Regular Season", "Playoffs"
	Season     string // season used for the player directory lookup
	Retries    int    // extra attempts after a transient failure
}

// Client resolves players and fetches shot-chart-detail payloads
type Client struct {
	http       *upstream.Client
	seasonType string
	season     string
}

// New creates a stats.nba.com client
func New(cfg Config, m *metrics.Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.SeasonType == "" {
		cfg.SeasonType = DefaultSeasonType
	}
	if cfg.Season == "" {
		cfg.Season = DefaultSeason
	}
	client := upstream.New(ProviderKey, strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout, browserHeaders, m).
		WithRetry(upstream.NewRetryPolicy(cfg.Retries+1, upstream.DefaultRetryDelay))
	return &Client{
		http:       client,
		seasonType: cfg.SeasonType,
		season:     cfg.Season,
	}
}

func (c *Client) GetProviderKey() string {
	return ProviderKey
}

func (c *Client) GetDisplayName() string {
	return "NBA Stats"
}

func (c *Client) GetSchemaVariant() models.SchemaVariant {
	return models.VariantNBAStats
}

// ResolvePlayer searches the full player directory for a case-insensitive
// match on the display name
func (c *Client) ResolvePlayer(ctx context.Context, name string) (*models.Player, error) {
	query := url.Values{
		"LeagueID":            {"00"},
		"Season":              {c.season},
		"IsOnlyCurrentSeason": {"0"},
	}

	body, err := c.http.Get(ctx, "resolve", "/commonallplayers", query)
	if err != nil {
		return nil, err
	}

	player, err := findPlayer(body, name)
	if err != nil {
		return nil, &models.FetchError{Provider: ProviderKey, Call: "resolve", Err: err}
	}
	if player == nil {
		return nil, &models.ResolutionError{Provider: ProviderKey, Player: name}
	}
	return player, nil
}

// findPlayer scans the CommonAllPlayers result set. A nil player with a nil
// error means no row matched.
func findPlayer(body []byte, name string) (*models.Player, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding response: invalid JSON")
	}

	rs := gjson.GetBytes(body, `resultSets.#(name=="CommonAllPlayers")`)
	if !rs.Exists() {
		rs = gjson.GetBytes(body, "resultSets.0")
	}

	idxID, idxName := -1, -1
	for i, h := range rs.Get("headers").Array() {
		switch h.String() {
		case "PERSON_ID":
			idxID = i
		case "DISPLAY_FIRST_LAST":
			idxName = i
		}
	}
	if idxID < 0 || idxName < 0 {
		return nil, fmt.Errorf("decoding response: missing PERSON_ID/DISPLAY_FIRST_LAST columns")
	}

	want := strings.TrimSpace(name)
	var found *models.Player
	rs.Get("rowSet").ForEach(func(_, row gjson.Result) bool {
		cells := row.Array()
		if idxID >= len(cells) || idxName >= len(cells) {
			return true
		}
		if strings.EqualFold(cells[idxName].String(), want) {
			found = &models.Player{
				ID:   strconv.FormatInt(cells[idxID].Int(), 10),
				Name: cells[idxName].String(),
			}
			return false
		}
		return true
	})

	return found, nil
}

// FetchShots returns the shotchartdetail payload for every field goal attempt
func (c *Client) FetchShots(ctx context.Context, player *models.Player, season string) ([]byte, error) {
	if err := models.ValidateSeason(season); err != nil {
		return nil, err
	}

	query := url.Values{
		"PlayerID":       {player.ID},
		"Season":         {season},
		"SeasonType":     {c.seasonType},
		"ContextMeasure": {"FGA"},
		"LeagueID":       {"00"},
		"TeamID":         {"0"},
		"GameID":         {""},
		"Outcome":        {""},
		"Location":       {""},
		"Month":          {"0"},
		"SeasonSegment":  {""},
		"DateFrom":       {""},
		"DateTo":         {""},
		"OpponentTeamID": {"0"},
		"VsConference":   {""},
		"VsDivision":     {""},
		"Position":       {""},
		"RookieYear":     {""},
		"GameSegment":    {""},
		"Period":         {"0"},
		"LastNGames":     {"0"},
		"AheadBehind":    {""},
		"ClutchTime":     {""},
		"PlayerPosition": {""},
	}

	return c.http.Get(ctx, "shots", "/shotchartdetail", query)
}
