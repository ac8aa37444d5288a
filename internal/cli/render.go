package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/render"
)

func renderCmd(debug *bool) *cobra.Command {
	var save string
	var mode string
	var all bool
	var noBorders bool

	c := &cobra.Command{
		Use:   "render",
		Short: "Render a savegame's map modes to PNG files",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, cleanup, err := setup(*debug)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			a, err := loadApp(cfg, save)
			if err != nil {
				return err
			}

			modes := []render.Mode{}
			if all {
				modes = render.Modes()
			} else {
				m, err := render.ParseMode(mode)
				if err != nil {
					return err
				}
				modes = append(modes, m)
			}

			for _, m := range modes {
				path, err := a.RenderToFile(m, !noBorders)
				if err != nil {
					return fmt.Errorf("rendering %s map: %w", m, err)
				}
				fmt.Fprintf(os.Stdout, "%-12s %s\n", m, path)
			}

			if warnings := a.Warnings(); len(warnings) > 0 {
				fmt.Fprintf(os.Stderr, "%d warnings (see the log for details)\n", len(warnings))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&save, "save", "s", "", "Savefile name inside the saves folder (required)")
	c.Flags().StringVarP(&mode, "mode", "m", "political", "Map mode: political|area|region|development|religion")
	c.Flags().BoolVar(&all, "all", false, "Render every map mode")
	c.Flags().BoolVar(&noBorders, "no-borders", false, "Skip province borders")
	_ = c.MarkFlagRequired("save")
	return c
}
