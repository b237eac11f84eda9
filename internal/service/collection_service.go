package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recicla/internal/auth"
	apperrors "recicla/internal/errors"
	"recicla/internal/model"
	"recicla/internal/repository"
	"recicla/internal/statemachine"
)

// MaterialLineInput is one requested material in a schedule call.
type MaterialLineInput struct {
	MaterialID uuid.UUID
	Quantity   *string
}

// ScheduleInput carries the fields of a new pickup request.
type ScheduleInput struct {
	Latitude   float64
	Longitude  float64
	PickupDate time.Time
	Notes      *string
	Materials  []MaterialLineInput
}

// ListQuery carries the optional narrowing parameters of a list call.
type ListQuery struct {
	Status        *model.CollectionStatus
	CooperativeID *uuid.UUID
}

// StatusUpdateInput carries a requested lifecycle change.
type StatusUpdateInput struct {
	Status        model.CollectionStatus
	CooperativeID *uuid.UUID
	WeightKg      *decimal.Decimal
}

// CollectionService owns the pickup lifecycle.
type CollectionService interface {
	Schedule(ctx context.Context, caller auth.Identity, input ScheduleInput) (*model.Collection, error)
	List(ctx context.Context, caller auth.Identity, query ListQuery) ([]model.Collection, error)
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Collection, error)
	UpdateStatus(ctx context.Context, caller auth.Identity, id uuid.UUID, input StatusUpdateInput) (*model.Collection, error)
}

type collectionService struct {
	collectionRepo repository.CollectionRepository
	materialRepo   repository.MaterialRepository
}

// NewCollectionService creates a new collection service.
func NewCollectionService(collectionRepo repository.CollectionRepository, materialRepo repository.MaterialRepository) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		materialRepo:   materialRepo,
	}
}

// Schedule creates a pickup request in status SCHEDULED with no assigned
// cooperative. The parent row and its line items are written in one
// transaction; every referenced material must exist in the catalog.
func (s *collectionService) Schedule(ctx context.Context, caller auth.Identity, input ScheduleInput) (*model.Collection, error) {
	if len(input.Materials) == 0 {
		return nil, apperrors.ErrNoMaterials
	}

	ids := uniqueMaterialIDs(input.Materials)
	count, err := s.materialRepo.CountByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("check materials: %w", err)
	}
	if count != int64(len(ids)) {
		return nil, apperrors.ErrMaterialNotFound
	}

	collection := &model.Collection{
		RequesterID: caller.UserID,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		PickupDate:  input.PickupDate,
		Status:      model.StatusScheduled,
		Notes:       input.Notes,
	}
	lines := make([]model.CollectionMaterial, 0, len(input.Materials))
	for _, m := range input.Materials {
		lines = append(lines, model.CollectionMaterial{
			MaterialID: m.MaterialID,
			Quantity:   m.Quantity,
		})
	}

	if err := s.collectionRepo.CreateWithLines(ctx, collection, lines); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	// Re-read for the nested requester and material details.
	created, err := s.collectionRepo.FindByID(ctx, collection.ID)
	if err != nil {
		return nil, fmt.Errorf("load created collection: %w", err)
	}
	return created, nil
}

// List returns collections visible to the caller. The scope is picked
// deterministically from role and query: requesters see their own requests;
// a cooperative sees its assigned collections, the ones of an explicitly
// given cooperative id, or, when filtering for SCHEDULED, the unassigned
// pool available to claim.
func (s *collectionService) List(ctx context.Context, caller auth.Identity, query ListQuery) ([]model.Collection, error) {
	filter := repository.ListFilter{Status: query.Status}

	switch caller.Role {
	case model.RoleCitizen, model.RoleCompany:
		filter.Scope = repository.ScopeRequester
		filter.UserID = caller.UserID
	case model.RoleCooperative:
		switch {
		case query.CooperativeID != nil:
			filter.Scope = repository.ScopeCooperative
			filter.UserID = *query.CooperativeID
		case query.Status != nil && *query.Status == model.StatusScheduled:
			filter.Scope = repository.ScopeUnassignedScheduled
		default:
			filter.Scope = repository.ScopeCooperative
			filter.UserID = caller.UserID
		}
	default:
		return nil, apperrors.ErrCollectionForbidden
	}

	return s.collectionRepo.List(ctx, filter)
}

// Get returns one collection if the caller may see it: requesters their own,
// cooperatives anything assigned to them or still unassigned and SCHEDULED.
// Existing-but-forbidden records answer 403, never 404.
func (s *collectionService) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("find collection: %w", err)
	}

	if !canView(caller, collection) {
		return nil, apperrors.ErrCollectionForbidden
	}
	return collection, nil
}

func canView(caller auth.Identity, collection *model.Collection) bool {
	if collection.RequesterID == caller.UserID {
		return true
	}
	if caller.Role != model.RoleCooperative {
		return false
	}
	if collection.CooperativeID != nil {
		return *collection.CooperativeID == caller.UserID
	}
	return collection.Status == model.StatusScheduled
}

// UpdateStatus moves a collection through its lifecycle on behalf of the
// calling cooperative. A supplied cooperativeId must be the caller's own;
// the assignee defaults to the caller. Illegal transitions are rejected and
// the write is conditioned on the row being unclaimed or claimed by the
// caller, so concurrent claims cannot both succeed.
func (s *collectionService) UpdateStatus(ctx context.Context, caller auth.Identity, id uuid.UUID, input StatusUpdateInput) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("find collection: %w", err)
	}

	if input.CooperativeID != nil && *input.CooperativeID != caller.UserID {
		return nil, apperrors.ErrAssignOtherCooperative
	}

	if !statemachine.CanTransition(collection.Status, input.Status) {
		return nil, apperrors.ErrIllegalTransition
	}

	if input.WeightKg != nil {
		if input.Status != model.StatusCompleted {
			return nil, apperrors.ErrWeightWithoutCompletion
		}
		if input.WeightKg.IsNegative() {
			return nil, apperrors.ErrNegativeWeight
		}
	}

	rows, err := s.collectionRepo.UpdateStatusGuarded(ctx, id, caller.UserID, input.Status, input.WeightKg)
	if err != nil {
		return nil, fmt.Errorf("update collection status: %w", err)
	}
	if rows == 0 {
		// The row exists, so the guard lost to another cooperative's claim.
		return nil, apperrors.ErrCollectionClaimed
	}

	updated, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load updated collection: %w", err)
	}
	return updated, nil
}

func uniqueMaterialIDs(lines []MaterialLineInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.MaterialID]; ok {
			continue
		}
		seen[l.MaterialID] = struct{}{}
		ids = append(ids, l.MaterialID)
	}
	return ids
}
