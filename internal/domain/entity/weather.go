// Package entity contains the core business objects of the project.
package entity

import "time"

// CurrentWeather is the simplified weather snapshot served to clients and
// cached between upstream fetches.
type CurrentWeather struct {
	Location    string    `json:"location"`
	Condition   string    `json:"condition"`   // e.g. "Clouds"
	Description string    `json:"description"` // e.g. "broken clouds"
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Units       string    `json:"units"` // "metric" or "imperial"
	ObservedAt  time.Time `json:"observed_at"`
}
