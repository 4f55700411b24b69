package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRotationCmd(e *env) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "rotation [previous-crop]",
		Short: "Suggest crops to plant after the previous one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := e.services()
			if err != nil {
				return err
			}
			if list {
				for _, opt := range app.Rotation.Crops() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s (%s)\n", opt.Key, opt.Name, opt.Region)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("previous crop is required (see --list)")
			}
			advice, err := app.Rotation.Advise(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return writeJSON(cmd, advice)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list known crops")
	return cmd
}
