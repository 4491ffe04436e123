package main

import (
	"fmt"
	"io"

	"city-api/internal/bootstrap"
	"city-api/pkg/log"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var container *bootstrap.Container

var rootCmd = &cobra.Command{
	Use:   "city-admin",
	Short: "Maintenance commands for the city store",
	Long: `city-admin runs the city-api use cases against the configured database
without starting the HTTP server. It reads the same configs/application.yml
and environment variables as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootstrap.New(cmd.Context(), bootstrap.Options{})
		if err != nil {
			return err
		}
		container = c
		return nil
	},
}

func init() {
	// runs after every command, failed ones included
	cobra.OnFinalize(closeContainer)
}

func closeContainer() {
	if container != nil {
		if err := container.Close(); err != nil {
			log.Warn("closing city-admin resources", zap.Error(err))
		}
		container = nil
	}
	log.Sync()
}

func printJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
