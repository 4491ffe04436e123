package entity

// Weather is a point-in-time reading for a coordinate. It is fetched per request and never stored.
// Dt is the reading time in unix seconds and Timezone the shift from UTC in seconds.
type Weather struct {
	Coord      Coordinates          `json:"coord"`
	Conditions []WeatherDescription `json:"weather"`
	Base       string               `json:"base"`
	Main       MainWeatherData      `json:"main"`
	Visibility int                  `json:"visibility"`
	Wind       Wind                 `json:"wind"`
	Clouds     Clouds               `json:"clouds"`
	Dt         int64                `json:"dt"`
	Sys        SystemData           `json:"sys"`
	Timezone   int                  `json:"timezone"`
	ID         int64                `json:"id"`
	Name       string               `json:"name"`
	Cod        int                  `json:"cod"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type WeatherDescription struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainWeatherData struct {
	Temp        float64  `json:"temp"`
	FeelsLike   float64  `json:"feelsLike"`
	TempMin     float64  `json:"tempMin"`
	TempMax     float64  `json:"tempMax"`
	Pressure    int      `json:"pressure"`
	Humidity    int      `json:"humidity"`
	SeaLevel    *int     `json:"seaLevel,omitempty"`
	GroundLevel *int     `json:"groundLevel,omitempty"`
	TempKf      *float64 `json:"tempKf,omitempty"`
}

type Wind struct {
	Speed float64  `json:"speed"`
	Deg   int      `json:"deg"`
	Gust  *float64 `json:"gust,omitempty"`
}

type Clouds struct {
	All int `json:"all"`
}

type SystemData struct {
	Type    *int     `json:"type,omitempty"`
	ID      *int     `json:"id,omitempty"`
	Message *float64 `json:"message,omitempty"`
	Country string   `json:"country"`
	Sunrise int64    `json:"sunrise"`
	Sunset  int64    `json:"sunset"`
}
