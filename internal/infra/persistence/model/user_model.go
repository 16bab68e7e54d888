// Package model contains the GORM persistence models mirroring the
// PostgreSQL schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The unique indexes on email, username
// and the two provider id columns are the only thing guaranteeing one row
// per identity under concurrent linking; the nullable provider id columns
// use a plain unique index so multiple NULLs coexist.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email         string    `gorm:"type:varchar(255);unique;not null"`
	Username      string    `gorm:"type:varchar(100);unique;not null"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	FullName      string    `gorm:"type:varchar(100)"`
	AvatarURL     string    `gorm:"type:text"`
	GoogleID      *string   `gorm:"type:varchar(255);unique"`
	AppleID       *string   `gorm:"type:varchar(255);unique"`
	AuthProvider  string    `gorm:"type:varchar(50)"`
	EmailVerified bool      `gorm:"not null;default:false"`
	IsActive      bool      `gorm:"not null;default:true"`
	IsSuperuser   bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	SavedRoutes []SavedRouteModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
