package cli

import (
	"bufio"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"agrirevive-backend/internal/geocode"
	"agrirevive-backend/internal/shared/debounce"
)

func newPlacesCmd(e *env) *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Search places as you type; one query per input line",
		Long: "Reads queries from stdin. Lines arriving within the debounce delay of each " +
			"other collapse into a single search for the last one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := e.services()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("delay") && app.Config.SearchDebounce > 0 {
				delay = app.Config.SearchDebounce
			}

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			s := geocode.NewSuggester(cmd.Context(), app.Geocoder, delay, func(query string, places []geocode.Place, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					fmt.Fprintf(out, "%s: error: %v\n", query, err)
					return
				}
				if query == "" {
					return
				}
				fmt.Fprintf(out, "%s: %d result(s)\n", query, len(places))
				for _, p := range places {
					fmt.Fprintf(out, "  %.6f,%.6f  %s\n", p.Lat, p.Lon, p.DisplayName)
				}
			})

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				s.Submit(scanner.Text())
			}
			s.Drain()
			s.Close()
			return scanner.Err()
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", debounce.DefaultDelay, "debounce delay between keystrokes")
	return cmd
}
