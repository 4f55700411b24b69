package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"agrirevive-backend/internal/aqi"
)

func newAQICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aqi [value]",
		Short: "Classify an AQI reading, or show the baseline reading",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeJSON(cmd, aqi.Baseline(time.Now()))
			}
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid aqi value %q", args[0])
			}
			report, err := aqi.Classify(value)
			if err != nil {
				return err
			}
			return writeJSON(cmd, report)
		},
	}
}
