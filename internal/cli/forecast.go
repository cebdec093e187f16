package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/provider/openweather"
	"github.com/spf13/cobra"
)

// forecastCmd prints the daily forecast of a coordinate
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Prints the 5-day forecast for a coordinate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")

		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.OpenWeather.APIKey == "" {
			return fmt.Errorf("openweather.api_key is not set")
		}

		client := openweather.New(provider.NewHTTPClient(providerOptions(cfg), logger), openweather.Config{
			BaseURL: cfg.OpenWeather.BaseURL,
			APIKey:  cfg.OpenWeather.APIKey,
		}, logger)

		fc, err := client.Forecast(context.Background(), lat, lng)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%.4f, %.4f)\n\n", fc.City, fc.Lat, fc.Lng)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DATE\tMIN\tMAX\tCONDITION\tHUMIDITY\tPOP\tWIND\t")
		for _, d := range fc.Days {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d%%\t%d%%\t%.1f\t\n",
				d.Date, d.TempMin, d.TempMax, d.Description, d.Humidity, d.PopPercent, d.WindSpeed)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.Flags().Float64("lat", 0, "latitude")
	forecastCmd.Flags().Float64("lng", 0, "longitude")
	_ = forecastCmd.MarkFlagRequired("lat")
	_ = forecastCmd.MarkFlagRequired("lng")
}
