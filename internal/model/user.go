package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role classifies what a user may do in the system.
type Role string

const (
	// RoleCitizen schedules pickups for a household.
	RoleCitizen Role = "CITIZEN"
	// RoleCompany schedules pickups for a business.
	RoleCompany Role = "COMPANY"
	// RoleCooperative claims and fulfills scheduled pickups.
	RoleCooperative Role = "COOPERATIVE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleCompany, RoleCooperative:
		return true
	}
	return false
}

// User represents a registered account: a requester (citizen or company)
// or a recycling cooperative.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	Phone        *string   `json:"phone,omitempty" gorm:"size:50"`
	Address      *string   `json:"address,omitempty" gorm:"size:255"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
