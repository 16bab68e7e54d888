// Package entity contains the core business objects of the project.
package entity

import "time"

// StopArrival is one predicted vehicle arrival at a monitored stop.
type StopArrival struct {
	RouteID         string     `json:"route_id"`
	Destination     string     `json:"destination"`
	StopID          string     `json:"stop_id"`
	ExpectedArrival *time.Time `json:"expected_arrival,omitempty"`
	VehicleRef      string     `json:"vehicle_ref,omitempty"`
}
