package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func infoCmd(debug *bool) *cobra.Command {
	var save string

	c := &cobra.Command{
		Use:   "info <province-id>",
		Short: "Show one province with its hierarchy chain and aggregates",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("province id must be a number, got %q", args[0])
			}

			cfg, cleanup, err := setup(*debug)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			a, err := loadApp(cfg, save)
			if err != nil {
				return err
			}

			p, ok := a.World.ProvinceByID(id)
			if !ok {
				return fmt.Errorf("no province %d in this save", id)
			}
			fmt.Fprint(os.Stdout, a.ProvinceSummary(p))
			return nil
		},
	}

	c.Flags().StringVarP(&save, "save", "s", "", "Savefile name inside the saves folder (required)")
	_ = c.MarkFlagRequired("save")
	return c
}
