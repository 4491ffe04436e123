package external

import "city-api/internal/domain/entity"

// OpenWeatherResponse is the current-weather document of api.openweathermap.org/data/2.5/weather
type OpenWeatherResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Base string `json:"base"`
	Main struct {
		Temp      float64  `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		TempMin   float64  `json:"temp_min"`
		TempMax   float64  `json:"temp_max"`
		Pressure  int      `json:"pressure"`
		Humidity  int      `json:"humidity"`
		SeaLevel  *int     `json:"sea_level"`
		GrndLevel *int     `json:"grnd_level"`
		TempKf    *float64 `json:"temp_kf"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64  `json:"speed"`
		Deg   int      `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Type    *int     `json:"type"`
		ID      *int     `json:"id"`
		Message *float64 `json:"message"`
		Country string   `json:"country"`
		Sunrise int64    `json:"sunrise"`
		Sunset  int64    `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Cod      int    `json:"cod"`
}

// OpenWeatherErrorResponse is returned with non-2xx statuses. Cod arrives as a number or a string.
type OpenWeatherErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// ToEntity maps the remote document to the domain snapshot
func (r *OpenWeatherResponse) ToEntity() *entity.Weather {
	conditions := make([]entity.WeatherDescription, 0, len(r.Weather))
	for _, w := range r.Weather {
		conditions = append(conditions, entity.WeatherDescription{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}

	return &entity.Weather{
		Coord:      entity.Coordinates{Lat: r.Coord.Lat, Lon: r.Coord.Lon},
		Conditions: conditions,
		Base:       r.Base,
		Main: entity.MainWeatherData{
			Temp:        r.Main.Temp,
			FeelsLike:   r.Main.FeelsLike,
			TempMin:     r.Main.TempMin,
			TempMax:     r.Main.TempMax,
			Pressure:    r.Main.Pressure,
			Humidity:    r.Main.Humidity,
			SeaLevel:    r.Main.SeaLevel,
			GroundLevel: r.Main.GrndLevel,
			TempKf:      r.Main.TempKf,
		},
		Visibility: r.Visibility,
		Wind: entity.Wind{
			Speed: r.Wind.Speed,
			Deg:   r.Wind.Deg,
			Gust:  r.Wind.Gust,
		},
		Clouds: entity.Clouds{All: r.Clouds.All},
		Dt:     r.Dt,
		Sys: entity.SystemData{
			Type:    r.Sys.Type,
			ID:      r.Sys.ID,
			Message: r.Sys.Message,
			Country: r.Sys.Country,
			Sunrise: r.Sys.Sunrise,
			Sunset:  r.Sys.Sunset,
		},
		Timezone: r.Timezone,
		ID:       r.ID,
		Name:     r.Name,
		Cod:      r.Cod,
	}
}
