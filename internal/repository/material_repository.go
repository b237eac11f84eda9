package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recicla/internal/model"
)

// MaterialRepository defines catalog persistence operations.
type MaterialRepository interface {
	List(ctx context.Context) ([]model.Material, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	UpsertByName(ctx context.Context, material *model.Material) (created bool, err error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new material repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

// List returns the full catalog ordered by name.
func (r *materialRepository) List(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// CountByIDs counts how many of the given ids exist in the catalog.
func (r *materialRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// UpsertByName creates the material if no entry with its name exists and
// leaves an existing entry untouched. Reports whether a row was created.
func (r *materialRepository) UpsertByName(ctx context.Context, material *model.Material) (bool, error) {
	res := r.db.WithContext(ctx).
		Where(model.Material{Name: material.Name}).
		FirstOrCreate(material)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
