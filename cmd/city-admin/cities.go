package main

import (
	"fmt"

	"city-api/internal/domain/model"
	"city-api/pkg/msg"
	"city-api/pkg/util/numberutils"

	"github.com/spf13/cobra"
)

var (
	preloadForce bool
	resetReload  bool

	listQuery     string
	listFavorites bool
	listPage      int
	listSize      int
)

var preloadCmd = &cobra.Command{
	Use:   "preload",
	Short: "Load the remote city list into the store",
	Long:  `Loads the remote city list when the store is empty. With --force the stored cities are replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		useCase := container.CityUseCase

		if preloadForce {
			if _, err := useCase.ResetCities(cmd.Context(), true); err != nil {
				return err
			}
		} else {
			seeded, err := useCase.PreloadCitiesIfEmpty(cmd.Context())
			if err != nil {
				return err
			}
			if !seeded {
				cmd.Println(msg.GetMessage("city.preload.skipped"))
				return nil
			}
		}

		count, err := useCase.CountCities(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println(msg.GetMessage("city.preload.done", count))
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored cities",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := container.CityUseCase.CountCities(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), model.CountResponse{Count: count})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cities ordered by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := container.CityUseCase.ListCities(cmd.Context(), listQuery, listFavorites, listPage, listSize)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), page)
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle the favorite flag of a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		city, err := container.CityUseCase.ToggleFavorite(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), city)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every stored city",
	Long:  `Deletes every stored city. With --reload the remote list is fetched first and replaces the store in one transaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := container.CityUseCase.ResetCities(cmd.Context(), resetReload)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), model.DeletedResponse{Deleted: deleted})
	},
}

func parseID(raw string) (int64, error) {
	id, err := numberutils.ToInt64WithError(raw)
	if err != nil || !numberutils.IsInt64Positive(id) {
		return 0, fmt.Errorf("%s", msg.GetMessage("city.error.invalid-id", raw))
	}
	return id, nil
}

func init() {
	preloadCmd.Flags().BoolVar(&preloadForce, "force", false, "replace the stored cities")
	resetCmd.Flags().BoolVar(&resetReload, "reload", false, "reload the remote list after deleting")

	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "name prefix, case insensitive")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "only favorite cities")
	listCmd.Flags().IntVar(&listPage, "page", 0, "page number, starting at 0")
	listCmd.Flags().IntVar(&listSize, "size", model.DefaultPageSize, "page size")

	rootCmd.AddCommand(preloadCmd, countCmd, listCmd, favoriteCmd, resetCmd)
}
