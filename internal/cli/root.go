package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/avstrong/hotel/internal/app"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/logger"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// NewRoot builds the command tree. Running the root command starts an
// interactive booking session on the command's stdin and stdout.
func NewRoot(l *logger.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "hotel",
		Short:         "Book a hotel room from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(l, configPath)
			if err != nil {
				return err
			}

			return app.Run(cmd.Context(), l, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(newRoomsCmd(l, &configPath))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newRoomsCmd(l *logger.Logger, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List the hotel's rooms without booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(l, *configPath)
			if err != nil {
				return err
			}

			return app.PrintRooms(cmd.Context(), l, cfg, cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hotel %s (commit %s, built %s)\n", Version, CommitSHA, BuildDate)
		},
	}
}

func load(l *logger.Logger, path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	l.SetLevel(level)

	if cfg.Log.Output == "discard" {
		l.SetOutput(io.Discard)
	}

	return cfg, nil
}
