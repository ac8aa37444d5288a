package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func searchCmd(debug *bool) *cobra.Command {
	var save string
	var exact bool

	c := &cobra.Command{
		Use:   "search <name>",
		Short: "Search provinces by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, cleanup, err := setup(*debug)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			a, err := loadApp(cfg, save)
			if err != nil {
				return err
			}

			results := a.World.SearchByName(args[0], exact)
			if len(results) == 0 {
				fmt.Fprintf(os.Stdout, "No provinces match %q.\n", args[0])
				return nil
			}
			for _, p := range results {
				fmt.Fprintf(os.Stdout, "%5d  %-24s %s\n", p.ID, p.Name, p.Type)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&save, "save", "s", "", "Savefile name inside the saves folder (required)")
	c.Flags().BoolVarP(&exact, "exact", "e", false, "Match the full name instead of a substring")
	_ = c.MarkFlagRequired("save")
	return c
}
