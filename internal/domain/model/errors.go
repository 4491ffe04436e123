package model

import "errors"

var (
	// ErrCityNotFound is returned when a city id has no stored row
	ErrCityNotFound = errors.New("city not found")
	// ErrConnection wraps any failure talking to a remote source
	ErrConnection = errors.New("connection error")
)
