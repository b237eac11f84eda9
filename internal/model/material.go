package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is a reference entry in the recyclable material catalog.
// The catalog is seeded once and read-only afterwards.
type Material struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description *string   `json:"description,omitempty" gorm:"size:255"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
