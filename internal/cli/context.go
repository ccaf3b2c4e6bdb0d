package cli

import (
	"context"
	"errors"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/config"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg, nil
		}
	}
	return nil, errors.New("configuration not loaded")
}
