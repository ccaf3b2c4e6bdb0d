package main

import (
	"context"
	"os"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/cli"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := cli.Root().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("shot-visualizer failed")
		os.Exit(1)
	}
}
