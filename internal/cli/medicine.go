package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agrirevive-backend/internal/medicines"
)

func newMedicineCmd(e *env) *cobra.Command {
	var suggest bool
	cmd := &cobra.Command{
		Use:   "medicine <name>",
		Short: "Look up a medicine, or suggest names with --suggest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := e.services()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if suggest {
				return writeJSON(cmd, app.Medicines.Suggest(cmd.Context(), query))
			}
			res, err := app.Medicines.Lookup(cmd.Context(), query)
			if errors.Is(err, medicines.ErrNotFound) {
				return fmt.Errorf("no results found for %q", query)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		},
	}
	cmd.Flags().BoolVar(&suggest, "suggest", false, "list similar medicine names instead")
	return cmd
}
