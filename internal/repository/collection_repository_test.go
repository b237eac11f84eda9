package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recicla/internal/model"
)

func scheduleOne(t *testing.T, db *gorm.DB, repo CollectionRepository, requester *model.User, materials ...*model.Material) *model.Collection {
	t.Helper()
	collection := &model.Collection{
		RequesterID: requester.ID,
		Latitude:    -23.55,
		Longitude:   -46.63,
		PickupDate:  time.Now().Add(24 * time.Hour),
		Status:      model.StatusScheduled,
	}
	lines := make([]model.CollectionMaterial, 0, len(materials))
	for _, m := range materials {
		lines = append(lines, model.CollectionMaterial{MaterialID: m.ID})
	}
	require.NoError(t, repo.CreateWithLines(context.Background(), collection, lines))
	return collection
}

func TestCollectionRepository_CreateWithLines(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	requester := createUser(t, db, "Ana", model.RoleCitizen)
	papel := createMaterial(t, db, "Papel")
	vidro := createMaterial(t, db, "Vidro")

	created := scheduleOne(t, db, repo, requester, papel, vidro)

	loaded, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, loaded.Status)
	assert.Nil(t, loaded.CooperativeID)
	assert.Len(t, loaded.Materials, 2)
	require.NotNil(t, loaded.Requester)
	assert.Equal(t, requester.ID, loaded.Requester.ID)
	require.NotNil(t, loaded.Materials[0].Material)

	var lineCount int64
	require.NoError(t, db.Model(&model.CollectionMaterial{}).Count(&lineCount).Error)
	assert.EqualValues(t, 2, lineCount)
}

func TestCollectionRepository_List_Scopes(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	ana := createUser(t, db, "Ana", model.RoleCitizen)
	rui := createUser(t, db, "Rui", model.RoleCitizen)
	coop := createUser(t, db, "EcoCoop", model.RoleCooperative)
	papel := createMaterial(t, db, "Papel")

	anaCol := scheduleOne(t, db, repo, ana, papel)
	scheduleOne(t, db, repo, rui, papel)
	claimed := scheduleOne(t, db, repo, rui, papel)

	rows, err := repo.UpdateStatusGuarded(ctx, claimed.ID, coop.ID, model.StatusInRoute, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	t.Run("requester scope", func(t *testing.T) {
		got, err := repo.List(ctx, ListFilter{Scope: ScopeRequester, UserID: ana.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, anaCol.ID, got[0].ID)
	})

	t.Run("cooperative scope", func(t *testing.T) {
		got, err := repo.List(ctx, ListFilter{Scope: ScopeCooperative, UserID: coop.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, claimed.ID, got[0].ID)
	})

	t.Run("unassigned scheduled excludes claimed", func(t *testing.T) {
		got, err := repo.List(ctx, ListFilter{Scope: ScopeUnassignedScheduled})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, col := range got {
			assert.Nil(t, col.CooperativeID)
			assert.Equal(t, model.StatusScheduled, col.Status)
		}
	})

	t.Run("status filter narrows requester scope", func(t *testing.T) {
		inRoute := model.StatusInRoute
		got, err := repo.List(ctx, ListFilter{Scope: ScopeRequester, UserID: rui.ID, Status: &inRoute})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, claimed.ID, got[0].ID)
	})
}

func TestCollectionRepository_UpdateStatusGuarded_ClaimRace(t *testing.T) {
	db := newTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	ana := createUser(t, db, "Ana", model.RoleCitizen)
	coopA := createUser(t, db, "Coop A", model.RoleCooperative)
	coopB := createUser(t, db, "Coop B", model.RoleCooperative)
	papel := createMaterial(t, db, "Papel")
	collection := scheduleOne(t, db, repo, ana, papel)

	// First claim wins.
	rows, err := repo.UpdateStatusGuarded(ctx, collection.ID, coopA.ID, model.StatusInRoute, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	// Second cooperative loses: the guard matches no row.
	rows, err = repo.UpdateStatusGuarded(ctx, collection.ID, coopB.ID, model.StatusCompleted, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	loaded, err := repo.FindByID(ctx, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInRoute, loaded.Status)
	require.NotNil(t, loaded.CooperativeID)
	assert.Equal(t, coopA.ID, *loaded.CooperativeID)

	// The holder keeps updating and records the weight on completion.
	weight := decimal.NewFromFloat(12.5)
	rows, err = repo.UpdateStatusGuarded(ctx, collection.ID, coopA.ID, model.StatusCompleted, &weight)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	loaded, err = repo.FindByID(ctx, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, loaded.Status)
	require.NotNil(t, loaded.WeightKg)
	assert.True(t, loaded.WeightKg.Equal(weight))
}
