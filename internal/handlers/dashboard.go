package handlers

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/compare"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/render"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/stats"
	"github.com/rs/zerolog/log"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const introText = "Select a season and enter two player names, then click 'Compare' to visualize their shots."

type pageData struct {
	Provider     string
	Seasons      []string
	Season       string
	Player1      string
	Player2      string
	View         string
	Views        []string
	Info         string
	Error        string
	ComparisonID string
	Players      []playerView
}

type playerView struct {
	Title     string
	Chart     template.HTML
	Stats     []string
	Notice    string
	Synthetic bool
	ErrorKind string
	Error     string
}

// Index serves the dashboard. With player1 and player2 set it runs the
// comparison and shows both charts in the selected view.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Provider: h.providerName,
		Seasons:  h.seasons,
		Season:   h.season(r),
		Player1:  strings.TrimSpace(q.Get("player1")),
		Player2:  strings.TrimSpace(q.Get("player2")),
		View:     string(render.ModeScatter),
		Views:    []string{string(render.ModeScatter), string(render.ModeHeatmap)},
	}
	if mode, err := render.ParseMode(q.Get("view")); err == nil {
		data.View = string(mode)
	}

	switch {
	case data.Player1 == "" && data.Player2 == "":
		data.Info = introText
	default:
		h.fillComparison(r.Context(), r, &data)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug().Err(err).Msg("error writing page")
	}
}

func (h *Handler) fillComparison(ctx context.Context, r *http.Request, data *pageData) {
	ctx, cancel := context.WithTimeout(ctx, comparisonTimeout)
	defer cancel()

	req, err := h.parseRequest(r)
	if err != nil {
		data.Error = err.Error()
		return
	}

	cmp, err := h.comparer.Compare(ctx, req)
	if err != nil {
		data.Error = err.Error()
		return
	}

	data.ComparisonID = cmp.ID
	mode := render.Mode(data.View)
	for _, res := range cmp.Players {
		data.Players = append(data.Players, newPlayerView(res, mode, req.Season))
	}
}

func newPlayerView(res *compare.PlayerResult, mode render.Mode, season string) playerView {
	name := res.Query
	if res.Player != nil {
		name = res.Player.Name
	}
	view := playerView{Title: render.Title(name, season)}

	if res.Err != nil {
		view.ErrorKind = errorLabel(res.Err)
		view.Error = res.Err.Error()
		return view
	}

	view.Chart = inlineSVG(res.Chart(mode))
	view.Stats = stats.FormatLines(res.Stats)
	view.Synthetic = res.Table.Synthetic
	if res.Table.IsEmpty() {
		view.Notice = "No shot data available for " + name + " in " + season + " season"
	}
	return view
}

func errorLabel(err error) string {
	switch pipelineStatus(err) {
	case http.StatusNotFound:
		return "Player not found"
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return "Upstream request failed"
	default:
		return "Could not build chart"
	}
}

// inlineSVG drops the XML prolog so the chart can sit inside HTML
func inlineSVG(doc []byte) template.HTML {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}
