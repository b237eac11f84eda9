package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CollectionStatus represents the lifecycle state of a pickup request.
type CollectionStatus string

const (
	StatusScheduled CollectionStatus = "SCHEDULED"
	StatusInRoute   CollectionStatus = "IN_ROUTE"
	StatusCompleted CollectionStatus = "COMPLETED"
	StatusCanceled  CollectionStatus = "CANCELED"
)

// Valid reports whether s is one of the known statuses.
func (s CollectionStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInRoute, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Collection is a scheduled pickup of one or more recyclable materials.
// CooperativeID stays null until a cooperative claims the collection, and
// WeightKg is recorded only when the pickup completes.
type Collection struct {
	ID            uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	RequesterID   uuid.UUID        `json:"requesterId" gorm:"type:char(36);not null;index"`
	CooperativeID *uuid.UUID       `json:"cooperativeId" gorm:"type:char(36);index"`
	Latitude      float64          `json:"latitude" gorm:"not null"`
	Longitude     float64          `json:"longitude" gorm:"not null"`
	PickupDate    time.Time        `json:"pickupDate" gorm:"not null"`
	Status        CollectionStatus `json:"status" gorm:"type:varchar(20);not null;default:'SCHEDULED';index"`
	Notes         *string          `json:"notes,omitempty" gorm:"size:500"`
	WeightKg      *decimal.Decimal `json:"weightKg,omitempty" gorm:"type:decimal(10,2)"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`

	// Relations
	Requester   *User                `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Cooperative *User                `json:"cooperative,omitempty" gorm:"foreignKey:CooperativeID"`
	Materials   []CollectionMaterial `json:"materials,omitempty" gorm:"foreignKey:CollectionID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CollectionMaterial is a line item tying a collection to a catalog material,
// with an optional free-text quantity descriptor ("3 bags", "aprox. 5kg").
type CollectionMaterial struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CollectionID uuid.UUID `json:"collectionId" gorm:"type:char(36);not null;index"`
	MaterialID   uuid.UUID `json:"materialId" gorm:"type:char(36);not null;index"`
	Quantity     *string   `json:"quantity,omitempty" gorm:"size:100"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

// BeforeCreate sets UUID before creating the record.
func (cm *CollectionMaterial) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	return nil
}
