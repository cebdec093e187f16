package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/pricing"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/provider/googleroutes"
	"github.com/jengzang/tour-planner-go/internal/spatial"
	"github.com/spf13/cobra"
)

// routesCmd searches transit routes between two coordinates
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Searches transit routes between two coordinates and prints fare estimates.",
	Example: `  tour-planner routes --from 37.4979,127.0276 --to 37.5563,126.9220
  tour-planner routes --from 37.4979,127.0276 --to 37.5563,126.9220 --preference LESS_WALKING`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")
		preference, _ := cmd.Flags().GetString("preference")

		from, err := parseLatLng(fromFlag)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := parseLatLng(toFlag)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.Google.APIKey == "" {
			return fmt.Errorf("google.api_key is not set")
		}

		client := googleroutes.New(provider.NewHTTPClient(providerOptions(cfg), logger), googleroutes.Config{
			BaseURL:  cfg.Google.RoutesURL,
			APIKey:   cfg.Google.APIKey,
			Language: cfg.Google.Language,
		}, logger)

		candidates, err := client.ComputeTransit(context.Background(), googleroutes.Request{
			Origin:      from,
			Destination: to,
			Preference:  preference,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "straight-line distance: %.1f km\n\n",
			spatial.HaversineDistance(from.Lat, from.Lng, to.Lat, to.Lng)/1000)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "#\tROUTE\tMINUTES\tPRICE\tESTIMATE\t")
		for i, c := range candidates {
			estimate := 0
			if len(c.Legs) > 0 {
				estimate = pricing.Breakdown(c.Legs[0].Steps).Total
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t\n", i, c.Description, c.TotalDuration, c.TotalPrice, estimate)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().String("from", "", "origin as lat,lng")
	routesCmd.Flags().String("to", "", "destination as lat,lng")
	routesCmd.Flags().String("preference", "", "LESS_WALKING or FEWER_TRANSFERS")
	_ = routesCmd.MarkFlagRequired("from")
	_ = routesCmd.MarkFlagRequired("to")
}

func parseLatLng(s string) (planner.Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return planner.Location{}, fmt.Errorf("expected lat,lng but got %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return planner.Location{}, fmt.Errorf("bad latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return planner.Location{}, fmt.Errorf("bad longitude: %w", err)
	}

	if !spatial.ValidCoordinates(lat, lng) {
		return planner.Location{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return planner.Location{Lat: lat, Lng: lng}, nil
}
