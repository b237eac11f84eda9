package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recicla/internal/model"
)

// ListScope is the tagged visibility variant for listing collections; it is
// selected deterministically from the caller's role and query parameters
// instead of mutating one loosely-typed filter object.
type ListScope int

const (
	// ScopeRequester lists collections the given user requested.
	ScopeRequester ListScope = iota
	// ScopeCooperative lists collections assigned to the given cooperative.
	ScopeCooperative
	// ScopeUnassignedScheduled lists SCHEDULED collections no cooperative
	// has claimed yet.
	ScopeUnassignedScheduled
)

// ListFilter narrows a collection listing. Status further restricts any scope
// when set.
type ListFilter struct {
	Scope  ListScope
	UserID uuid.UUID
	Status *model.CollectionStatus
}

// CollectionRepository defines collection persistence operations.
type CollectionRepository interface {
	CreateWithLines(ctx context.Context, collection *model.Collection, lines []model.CollectionMaterial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Collection, error)
	List(ctx context.Context, filter ListFilter) ([]model.Collection, error)
	UpdateStatusGuarded(ctx context.Context, id, cooperativeID uuid.UUID, status model.CollectionStatus, weightKg *decimal.Decimal) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository.
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// withDetails preloads the nested requester, cooperative and material data
// every read path returns.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Requester").
		Preload("Cooperative").
		Preload("Materials").
		Preload("Materials.Material")
}

// CreateWithLines inserts the collection row and its material line items in
// one transaction: parent first, then children referencing it, all-or-nothing.
func (r *collectionRepository) CreateWithLines(ctx context.Context, collection *model.Collection, lines []model.CollectionMaterial) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Requester", "Cooperative", "Materials").Create(collection).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].CollectionID = collection.ID
		}
		if err := tx.Omit("Material").Create(&lines).Error; err != nil {
			return err
		}
		collection.Materials = lines
		return nil
	})
}

// FindByID finds a collection with nested details.
func (r *collectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	var collection model.Collection
	if err := withDetails(r.db.WithContext(ctx)).Where("id = ?", id).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// List returns collections matching the filter, newest first.
func (r *collectionRepository) List(ctx context.Context, filter ListFilter) ([]model.Collection, error) {
	q := withDetails(r.db.WithContext(ctx))

	switch filter.Scope {
	case ScopeRequester:
		q = q.Where("requester_id = ?", filter.UserID)
	case ScopeCooperative:
		q = q.Where("cooperative_id = ?", filter.UserID)
	case ScopeUnassignedScheduled:
		q = q.Where("cooperative_id IS NULL AND status = ?", model.StatusScheduled)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var collections []model.Collection
	if err := q.Order("created_at DESC").Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// UpdateStatusGuarded applies the status, assignee and optional weight in a
// single conditional write: the row must be unclaimed or already claimed by
// the same cooperative, so two cooperatives racing for one collection cannot
// both win. Returns the number of rows affected.
func (r *collectionRepository) UpdateStatusGuarded(ctx context.Context, id, cooperativeID uuid.UUID, status model.CollectionStatus, weightKg *decimal.Decimal) (int64, error) {
	updates := map[string]interface{}{
		"status":         status,
		"cooperative_id": cooperativeID,
	}
	if weightKg != nil {
		updates["weight_kg"] = *weightKg
	}

	res := r.db.WithContext(ctx).Model(&model.Collection{}).
		Where("id = ? AND (cooperative_id IS NULL OR cooperative_id = ?)", id, cooperativeID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
