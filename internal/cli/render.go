package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/compare"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/render"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/stats"
	"github.com/spf13/cobra"
)

// ErrAllPlayersFailed is returned by render when neither chart could be built
var ErrAllPlayersFailed = errors.New("both player pipelines failed")

// RenderOptions are the render command inputs
type RenderOptions struct {
	Players [2]string
	Season  string
	OutDir  string
}

// comparer is the part of compare.Comparer the render command needs
type comparer interface {
	Compare(ctx context.Context, req compare.Request) (*compare.Comparison, error)
}

func Render() *cobra.Command {
	var opts RenderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render shot charts for two players to SVG files",
		Long:  `Run one comparison and write a scatter and a heatmap SVG per player`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd.Context())
			if err != nil {
				return err
			}
			if opts.Season == "" {
				opts.Season = cfg.DefaultSeason
			}

			app, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			return RunRender(cmd.Context(), app.Comparer, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.Players[0], "player1", "", "first player's full name")
	cmd.Flags().StringVar(&opts.Players[1], "player2", "", "second player's full name")
	cmd.Flags().StringVar(&opts.Season, "season", "", "season as YYYY-YY, defaults to DEFAULT_SEASON")
	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "directory to write SVG files to")
	_ = cmd.MarkFlagRequired("player1")
	_ = cmd.MarkFlagRequired("player2")
	return cmd
}

// RunRender compares two players and writes their charts into opts.OutDir.
// A failed player is reported on out; the error is returned only when both
// players failed.
func RunRender(ctx context.Context, c comparer, opts RenderOptions, out io.Writer) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cmp, err := c.Compare(ctx, compare.Request{Players: opts.Players, Season: opts.Season})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "comparison %s (%s, %s)\n", cmp.ID, cmp.Provider, cmp.Season)
	failed := 0
	for _, res := range cmp.Players {
		if res.Err != nil {
			failed++
			fmt.Fprintf(out, "  %s: %v\n", res.Query, res.Err)
			continue
		}

		slug := Slug(res.Query)
		for _, mode := range []render.Mode{render.ModeScatter, render.ModeHeatmap} {
			path := filepath.Join(opts.OutDir, fmt.Sprintf("%s-%s.svg", slug, mode))
			if err := os.WriteFile(path, res.Chart(mode), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(out, "  wrote %s\n", path)
		}

		line := strings.Join(stats.FormatLines(res.Stats), ", ")
		if res.Table.IsEmpty() {
			line += " (no shot data)"
		}
		if res.Table.Synthetic {
			line += " (synthetic)"
		}
		fmt.Fprintf(out, "  %s: %s\n", res.Query, line)
	}

	if failed == len(cmp.Players) {
		return ErrAllPlayersFailed
	}
	return nil
}

// Slug turns a player name into a file name stem: "Stephen Curry" -> "stephen-curry"
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "player"
	}
	return s
}
