package db

import (
	"context"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
)

// CityGateway is the storage contract for cities. Lookups of absent rows return nil, nil.
type CityGateway interface {
	// FindAll returns one page (0-based) of cities matching filter, ordered by name case-insensitively then id
	FindAll(ctx context.Context, filter model.CityFilter, page int, size int) ([]entity.City, error)
	Count(ctx context.Context, filter model.CityFilter) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.City, error)

	// InsertAll upserts the batch in one transaction. A (name, country) conflict overwrites the stored row and keeps its id.
	InsertAll(ctx context.Context, cities []entity.City) (int64, error)
	// ToggleFavorite flips the favorite flag in a single statement and returns the updated row
	ToggleFavorite(ctx context.Context, id int64) (*entity.City, error)
	DeleteAll(ctx context.Context) (int64, error)
	// ReplaceAll clears the table and inserts cities in one transaction
	ReplaceAll(ctx context.Context, cities []entity.City) (int64, error)
}
