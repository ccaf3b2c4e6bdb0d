package apisports

import (
	"context"
	"errors"
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
	ProviderKey = "apisports"
	BaseURL     = "https://api-nba-v1.p.rapidapi.com"
	DefaultHost = "api-nba-v1.p.rapidapi.com"
)

// ErrMissingAPIKey is returned when no RapidAPI key is configured
var ErrMissingAPIKey = errors.New("apisports: RAPIDAPI_KEY is not set")

// Config holds the API-NBA client settings
type Config struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
	Retries int
}

// Client resolves players and fetches per-game statistics from API-NBA
type Client struct {
	http *upstream.Client
}

// New creates an API-NBA client. The key is required.
func New(cfg Config, m *metrics.Metrics) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	headers := map[string]string{
		"Accept":          "application/json",
		"X-RapidAPI-Key":  cfg.APIKey,
		"X-RapidAPI-Host": cfg.Host,
	}
	return &Client{
		http: upstream.New(ProviderKey, strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout, headers, m).
			WithRetry(upstream.NewRetryPolicy(cfg.Retries+1, upstream.DefaultRetryDelay)),
	}, nil
}

func (c *Client) GetProviderKey() string {
	return ProviderKey
}

func (c *Client) GetDisplayName() string {
	return "API-NBA (RapidAPI)"
}

func (c *Client) GetSchemaVariant() models.SchemaVariant {
	return models.VariantAPISports
}

// ResolvePlayer searches by last name and prefers an exact full-name match,
// falling back to the first result
func (c *Client) ResolvePlayer(ctx context.Context, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil, &models.ResolutionError{Provider: ProviderKey, Player: name}
	}

	// the search endpoint only matches single names
	search := fields[len(fields)-1]
	body, err := c.http.Get(ctx, "resolve", "/players", url.Values{"search": {search}})
	if err != nil {
		return nil, err
	}
	if err := apiErrors(body); err != nil {
		return nil, &models.FetchError{Provider: ProviderKey, Call: "resolve", Err: err}
	}

	results := gjson.GetBytes(body, "response").Array()
	if len(results) == 0 {
		return nil, &models.ResolutionError{Provider: ProviderKey, Player: name}
	}

	pick := results[0]
	for _, r := range results {
		full := strings.TrimSpace(r.Get("firstname").String() + " " + r.Get("lastname").String())
		if strings.EqualFold(full, name) {
			pick = r
			break
		}
	}

	return &models.Player{
		ID:   strconv.FormatInt(pick.Get("id").Int(), 10),
		Name: strings.TrimSpace(pick.Get("firstname").String() + " " + pick.Get("lastname").String()),
	}, nil
}

// FetchShots returns the per-game statistics payload. API-NBA names seasons
// by start year, so "2023-24" is sent as 2023.
func (c *Client) FetchShots(ctx context.Context, player *models.Player, season string) ([]byte, error) {
	year, err := models.SeasonStartYear(season)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"id":     {player.ID},
		"season": {strconv.Itoa(year)},
	}
	body, err := c.http.Get(ctx, "shots", "/players/statistics", query)
	if err != nil {
		return nil, err
	}
	if err := apiErrors(body); err != nil {
		return nil, &models.FetchError{Provider: ProviderKey, Call: "shots", Err: err}
	}
	return body, nil
}

// apiErrors reports the "errors" field API-NBA fills in on a 200 response,
// either an array of strings or an object keyed by parameter
func apiErrors(body []byte) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("decoding response: invalid JSON")
	}

	errs := gjson.GetBytes(body, "errors")
	var msgs []string
	switch {
	case errs.IsArray():
		for _, e := range errs.Array() {
			msgs = append(msgs, e.String())
		}
	case errs.IsObject():
		errs.ForEach(func(key, value gjson.Result) bool {
			msgs = append(msgs, key.String()+": "+value.String())
			return true
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("api error: %s", strings.Join(msgs, "; "))
}
