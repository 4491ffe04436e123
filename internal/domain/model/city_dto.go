package model

import "city-api/internal/domain/entity"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CityFilter restricts city listings. An empty Query matches every name.
type CityFilter struct {
	Query         string
	OnlyFavorites bool
}

// PreloadRequest is the message carried by the preload queue
type PreloadRequest struct {
	RequestID string `json:"requestId"`
	Force     bool   `json:"force"`
}

// CityDetail pairs a city with the weather at its coordinates
type CityDetail struct {
	City    entity.City    `json:"city"`
	Weather entity.Weather `json:"weather"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

type MessageResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
