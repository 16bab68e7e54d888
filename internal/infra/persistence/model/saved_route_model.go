package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedRouteModel mirrors the 'saved_routes' table.
type SavedRouteModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Origin      string    `gorm:"type:varchar(255);not null"`
	Destination string    `gorm:"type:varchar(255);not null"`
	RouteTypes  string    `gorm:"type:varchar(100)"`
	Notes       string    `gorm:"type:text"`
	IsFavorite  bool      `gorm:"not null;default:false"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SavedRouteModel) TableName() string {
	return "saved_routes"
}
