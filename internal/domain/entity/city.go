package entity

// City is a geolocated place the user can mark as favorite.
// (Name, Country) is unique within the store.
type City struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsFavorite bool    `json:"isFavorite"`
}
