// Package cli implements the advisor command line over the same services
// the API serves.
package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"agrirevive-backend/internal/bootstrap"
	"agrirevive-backend/internal/shared/telemetry"
)

// Builder constructs the services a command needs.
type Builder func() (*bootstrap.App, error)

type env struct {
	build    Builder
	app      *bootstrap.App
	logLevel string
}

// NewRootCmd creates the advisor root command. build runs once, before the
// first subcommand that needs services.
func NewRootCmd(version string, build Builder) *cobra.Command {
	e := &env{build: build}

	cmd := &cobra.Command{
		Use:           "advisor",
		Short:         "Agricultural advisor CLI",
		Long:          "Waste recommendations, crop rotation, medicine lookup and place search from the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if e.logLevel != "" {
				telemetry.SetLevel(e.logLevel)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRecommendCmd(e),
		newRotationCmd(e),
		newMedicineCmd(e),
		newPlacesCmd(e),
		newAQICmd(),
	)
	return cmd
}

func (e *env) services() (*bootstrap.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	if e.build == nil {
		return nil, errors.New("no service builder configured")
	}
	app, err := e.build()
	if err != nil {
		return nil, err
	}
	if e.logLevel != "" {
		// building applies the configured level; the flag wins
		telemetry.SetLevel(e.logLevel)
	}
	e.app = app
	return app, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
