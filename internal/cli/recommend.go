package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"agrirevive-backend/internal/geocode"
	"agrirevive-backend/internal/recommend"
)

func newRecommendCmd(e *env) *cobra.Command {
	var (
		category string
		quantity float64
		address  string
		lat, lng float64
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Recommend how to manage crop residue",
		Example: `  advisor recommend --category rice --quantity 500 --address "Karnal, Haryana"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if recommend.NormalizeCategory(category) == "" {
				return errors.New("--category is required")
			}
			if quantity <= 0 {
				return errors.New("--quantity must be greater than zero")
			}
			loc := recommend.Location{Address: address}
			latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
			if latSet != lngSet {
				return errors.New("--lat and --lng must be given together")
			}
			if latSet {
				if !geocode.ValidCoordinates(lat, lng) {
					return geocode.ErrInvalidCoordinates
				}
				loc.Lat, loc.Lng = &lat, &lng
			}

			app, err := e.services()
			if err != nil {
				return err
			}
			out := app.Fetcher.Fetch(cmd.Context(), recommend.Submission{
				Category: category,
				Quantity: recommend.Quantity(quantity),
				Location: loc,
			})
			if out.Notice != "" {
				cmd.PrintErrln(out.Notice)
			}
			return writeJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "crop or waste category")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "quantity in kilograms")
	cmd.Flags().StringVar(&address, "address", "", "farm location")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	return cmd
}
