package external

import (
	"strings"

	"city-api/internal/domain/entity"
)

// CityListItem is one element of the remote city listing
type CityListItem struct {
	ID      int64  `json:"_id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Coord   struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
}

// ToEntity maps a listing item to a non-favorite city. The remote _id is not kept.
func (c CityListItem) ToEntity() entity.City {
	return entity.City{
		Name:       strings.TrimSpace(c.Name),
		Country:    strings.TrimSpace(c.Country),
		Latitude:   c.Coord.Lat,
		Longitude:  c.Coord.Lon,
		IsFavorite: false,
	}
}
