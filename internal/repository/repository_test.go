package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recicla/internal/model"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Material{},
		&model.Collection{},
		&model.CollectionMaterial{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role model.Role) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: string(hashed),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createMaterial(t *testing.T, db *gorm.DB, name string) *model.Material {
	t.Helper()
	material := &model.Material{Name: name}
	require.NoError(t, db.Create(material).Error)
	return material
}
