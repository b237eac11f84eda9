package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "recicla/internal/errors"
	"recicla/internal/model"
)

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo)
	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	userID := uuid.New()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcryptCost)
	existing := &model.User{ID: userID, Name: "Ana", Email: "ana@example.com", PasswordHash: string(oldHash), Role: model.RoleCitizen}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	newPassword := "new-password"
	svc := NewUserService(mockRepo)
	updated, err := svc.UpdateUser(context.Background(), userID, UpdateProfileInput{Password: &newPassword})
	assert.NoError(t, err)

	// The stored hash changed and verifies against the new password.
	assert.NotEqual(t, string(oldHash), updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_EmailConflict(t *testing.T) {
	userID := uuid.New()
	existing := &model.User{ID: userID, Name: "Ana", Email: "ana@example.com", Role: model.RoleCitizen}
	other := &model.User{ID: uuid.New(), Email: "taken@example.com"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
	mockRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(other, nil)

	taken := "taken@example.com"
	svc := NewUserService(mockRepo)
	_, err := svc.UpdateUser(context.Background(), userID, UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestUserService_UpdateUser_PartialFieldsPassThrough(t *testing.T) {
	userID := uuid.New()
	existing := &model.User{ID: userID, Name: "Ana", Email: "ana@example.com", Role: model.RoleCitizen}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	phone := "+55 11 99999-0000"
	svc := NewUserService(mockRepo)
	updated, err := svc.UpdateUser(context.Background(), userID, UpdateProfileInput{Phone: &phone})
	assert.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "ana@example.com", updated.Email)
	if assert.NotNil(t, updated.Phone) {
		assert.Equal(t, phone, *updated.Phone)
	}
}
