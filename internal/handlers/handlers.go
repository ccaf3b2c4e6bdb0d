package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/compare"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/normalize"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/render"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/rs/zerolog/log"
)

// comparisonTimeout bounds one request's upstream work across both players
const comparisonTimeout = 45 * time.Second

// Comparer runs shot chart pipelines
type Comparer interface {
	Compare(ctx context.Context, req compare.Request) (*compare.Comparison, error)
	Player(ctx context.Context, query, season string) (*compare.PlayerResult, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	comparer      Comparer
	providerName  string
	defaultSeason string
	seasons       []string
}

// NewHandler creates a new handler with dependencies
func NewHandler(comparer Comparer, providerName, defaultSeason string) *Handler {
	return &Handler{
		comparer:      comparer,
		providerName:  providerName,
		defaultSeason: defaultSeason,
		seasons:       seasonOptions(defaultSeason),
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "shot-visualizer",
		"provider":  h.providerName,
	})
}

// Compare returns the comparison summary for two players as JSON
// Query params: player1, player2, season
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), comparisonTimeout)
	defer cancel()

	req, err := h.parseRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	cmp, err := h.comparer.Compare(ctx, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	respondJSON(w, http.StatusOK, cmp.Summary())
}

// Chart renders one player's chart as SVG
// Query params: player, season, mode (scatter|heatmap)
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), comparisonTimeout)
	defer cancel()

	q := r.URL.Query()
	player := strings.TrimSpace(q.Get("player"))
	if player == "" {
		respondError(w, http.StatusBadRequest, "player is required", nil)
		return
	}
	mode, err := render.ParseMode(q.Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	res, err := h.comparer.Player(ctx, player, h.season(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if res.Err != nil {
		respondPipelineError(w, res.Err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Chart(mode)); err != nil {
		log.Debug().Err(err).Msg("error writing chart")
	}
}

func (h *Handler) parseRequest(r *http.Request) (compare.Request, error) {
	q := r.URL.Query()
	req := compare.Request{
		Players: [2]string{strings.TrimSpace(q.Get("player1")), strings.TrimSpace(q.Get("player2"))},
		Season:  h.season(r),
	}
	if req.Players[0] == "" || req.Players[1] == "" {
		return req, errors.New("player1 and player2 are required")
	}
	if err := models.ValidateSeason(req.Season); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler) season(r *http.Request) string {
	if season := strings.TrimSpace(r.URL.Query().Get("season")); season != "" {
		return season
	}
	return h.defaultSeason
}

// pipelineStatus maps a per-player pipeline error onto an HTTP status
func pipelineStatus(err error) int {
	var resErr *models.ResolutionError
	var fetchErr *models.FetchError
	switch {
	case errors.As(err, &resErr):
		return http.StatusNotFound
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, normalize.ErrNoShotLocations):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondPipelineError(w http.ResponseWriter, err error) {
	status := pipelineStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("chart pipeline failed")
	}
	writeError(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
		Kind:    models.ErrorKind(err),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("error encoding response")
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Error().Err(err).Msg(message)
	}
	writeError(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func writeError(w http.ResponseWriter, status int, errResp models.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		log.Error().Err(err).Msg("error encoding error response")
	}
}

// seasonOptions lists 2010-11 through the default season, newest last
func seasonOptions(defaultSeason string) []string {
	last, err := models.SeasonStartYear(defaultSeason)
	if err != nil || last < 2010 {
		last = 2023
	}
	return models.SeasonRange(2010, last)
}
