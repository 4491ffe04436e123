package api

import (
	"context"

	"city-api/internal/domain/model/external"
)

// CitySourceGateway reads the remote city listing used to seed the local store
type CitySourceGateway interface {
	// FetchCities downloads the whole listing in one request
	FetchCities(ctx context.Context) ([]external.CityListItem, error)
}
