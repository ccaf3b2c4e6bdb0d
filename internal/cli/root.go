package cli

import (
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/config"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/logging"
	"github.com/spf13/cobra"
)

// Root builds the shot-visualizer command tree
func Root() *cobra.Command {
	var envFile string
	var closeLog func()

	rootCmd := &cobra.Command{
		Use:           "shot-visualizer",
		Short:         "NBA shot chart comparison dashboard",
		Long:          `Fetch NBA shot locations for two players and compare them as scatter plots and heatmaps`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			closeLog, err = logging.Setup(cfg.Log)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file with configuration overrides")

	rootCmd.AddCommand(Serve())
	rootCmd.AddCommand(Render())
	rootCmd.AddCommand(Version())
	return rootCmd
}
