package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/compare"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/config"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/apisports"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/nbastats"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shots = `{"resultSets":[{"name":"Shot_Chart_Detail",
	"headers":["LOC_X","LOC_Y","SHOT_MADE_FLAG"],
	"rowSet":[[0,10,1],[0,250,0]]}]}`

type stubProvider struct {
	known map[string]bool
}

func (p *stubProvider) GetProviderKey() string                 { return "stub" }
func (p *stubProvider) GetDisplayName() string                 { return "Stub" }
func (p *stubProvider) GetSchemaVariant() models.SchemaVariant { return models.VariantNBAStats }

func (p *stubProvider) ResolvePlayer(_ context.Context, name string) (*models.Player, error) {
	if !p.known[name] {
		return nil, &models.ResolutionError{Provider: "stub", Player: name}
	}
	return &models.Player{ID: name, Name: name}, nil
}

func (p *stubProvider) FetchShots(_ context.Context, _ *models.Player, _ string) ([]byte, error) {
	return []byte(shots), nil
}

func newStubComparer(known ...string) *compare.Comparer {
	p := &stubProvider{known: map[string]bool{}}
	for _, name := range known {
		p.known[name] = true
	}
	return compare.New(compare.Config{Provider: p})
}

func TestRunRender_WritesBothCharts(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := RunRender(context.Background(), newStubComparer("Stephen Curry", "LeBron James"), RenderOptions{
		Players: [2]string{"Stephen Curry", "LeBron James"},
		Season:  "2023-24",
		OutDir:  dir,
	}, &out)
	require.NoError(t, err)

	for _, name := range []string{"stephen-curry", "lebron-james"} {
		for _, mode := range []string{"scatter", "heatmap"} {
			data, err := os.ReadFile(filepath.Join(dir, name+"-"+mode+".svg"))
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "</svg>"))
		}
	}
	assert.Contains(t, out.String(), "Total Attempts: 2")
}

func TestRunRender_OnePlayerFails(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := RunRender(context.Background(), newStubComparer("Stephen Curry"), RenderOptions{
		Players: [2]string{"Stephen Curry", "Zzyzx Nobody"},
		Season:  "2023-24",
		OutDir:  dir,
	}, &out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "stephen-curry-scatter.svg"))
	assert.NoFileExists(t, filepath.Join(dir, "zzyzx-nobody-scatter.svg"))
	assert.Contains(t, out.String(), "Zzyzx Nobody")
}

func TestRunRender_BothPlayersFail(t *testing.T) {
	var out bytes.Buffer

	err := RunRender(context.Background(), newStubComparer(), RenderOptions{
		Players: [2]string{"A", "B"},
		Season:  "2023-24",
		OutDir:  t.TempDir(),
	}, &out)
	assert.ErrorIs(t, err, ErrAllPlayersFailed)
}

func TestRunRender_InvalidSeason(t *testing.T) {
	err := RunRender(context.Background(), newStubComparer("A"), RenderOptions{
		Players: [2]string{"A", "A"},
		Season:  "2023",
		OutDir:  t.TempDir(),
	}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAllPlayersFailed)
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Stephen Curry":       "stephen-curry",
		"  Shaquille O'Neal ": "shaquille-o-neal",
		"Karl-Anthony Towns":  "karl-anthony-towns",
		"!!!":                 "player",
		"":                    "player",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := Root()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "shot-visualizer v"+BuildVersion)
}

func TestNewRegistry(t *testing.T) {
	cfg := config.ProviderConfig{Key: nbastats.ProviderKey}

	reg, err := NewRegistry(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{nbastats.ProviderKey}, reg.Keys())

	cfg.RapidAPIKey = "secret"
	reg, err = NewRegistry(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{apisports.ProviderKey, nbastats.ProviderKey}, reg.Keys())

	_, err = NewRegistry(config.ProviderConfig{Key: apisports.ProviderKey}, nil)
	assert.ErrorIs(t, err, apisports.ErrMissingAPIKey)
}

func TestConfigFromContext(t *testing.T) {
	_, err := configFrom(context.Background())
	assert.Error(t, err)

	cfg := &config.Config{DefaultSeason: "2022-23"}
	got, err := configFrom(withConfig(context.Background(), cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}
