package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/app"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/config"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/logger"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "euview",
		Short:        "Browse EU4 savegames and render their map modes",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, cleanup, err := setup(debug)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			return tui.Run(cfg, logger.L())
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to <output_dir>/euview.log")
	cmd.AddCommand(renderCmd(&debug), searchCmd(&debug), infoCmd(&debug))
	return cmd
}

// setup loads configuration and installs the file logger shared by every
// command. The --debug flag wins over the config file.
func setup(debug bool) (*config.Config, func() error, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if debug {
		cfg.Debug = true
	}

	cleanup, err := logger.Setup(logger.Config{Dir: cfg.OutputDir, Debug: cfg.Debug})
	if err != nil {
		return nil, nil, err
	}
	return cfg, cleanup, nil
}

func loadApp(cfg *config.Config, save string) (*app.App, error) {
	return app.Load(cfg, save, logger.L())
}
