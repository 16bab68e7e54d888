// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SavedRoute is a transit route a user has bookmarked, such as a daily
// commute between two stops.
type SavedRoute struct {
	ID          uuid.UUID // The unique identifier for the saved route.
	UserID      uuid.UUID // The owning user account.
	Name        string    // User-supplied label, e.g. "Morning commute".
	Origin      string    // Origin stop or location.
	Destination string    // Destination stop or location.
	RouteTypes  string    // Preferred route types, comma separated (e.g. "subway,bus").
	Notes       string    // Optional free-form notes.
	IsFavorite  bool      // Pinned to the top of the user's list.
	IsActive    bool      // Soft-delete flag; inactive routes are hidden.
	CreatedAt   time.Time // Timestamp of creation.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
