package main

import (
	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather <id>",
	Short: "Print a city with its current weather",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		detail, err := container.WeatherUseCase.GetCityWeather(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), detail)
	},
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}
