package model

// CoordinateQuery is the bound and validated query of GET /weather
type CoordinateQuery struct {
	Lat *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `query:"lon" validate:"required,gte=-180,lte=180"`
}
