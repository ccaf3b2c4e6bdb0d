package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildVersion is set at build time with -ldflags "-X .../internal/cli.BuildVersion=..."
var BuildVersion = "0.1.0"

func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Shot visualizer version information",
		Long:  `Print the version information of the shot visualizer`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shot-visualizer v%s (Go version: %s)\n", BuildVersion, runtime.Version())
		},
	}
}
