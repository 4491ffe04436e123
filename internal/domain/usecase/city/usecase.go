package city

import (
	"context"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
)

type UseCase interface {
	// ListCities returns one page of cities whose name starts with query, ordered by name
	ListCities(ctx context.Context, query string, onlyFavorites bool, page int, size int) (*model.Page[entity.City], error)

	// PreloadCities fetches the remote city list once and stores it, returning the stored count
	PreloadCities(ctx context.Context) (int64, error)

	// PreloadCitiesIfEmpty runs PreloadCities only when the store has no cities
	PreloadCitiesIfEmpty(ctx context.Context) (bool, error)

	// ResetCities deletes every city and, when reload is set, replaces them with a fresh remote list
	ResetCities(ctx context.Context, reload bool) (int64, error)

	// ToggleFavorite flips the favorite flag of a city
	ToggleFavorite(ctx context.Context, id int64) (*entity.City, error)

	// FindCityByID returns a single city or model.ErrCityNotFound
	FindCityByID(ctx context.Context, id int64) (*entity.City, error)

	CountCities(ctx context.Context) (int64, error)

	// RequestPreload enqueues a preload request, or runs it inline when no queue is configured
	RequestPreload(ctx context.Context, force bool) (string, error)

	// ProcessPreloadRequest executes a preload request received from the queue
	ProcessPreloadRequest(ctx context.Context, request model.PreloadRequest) error
}
