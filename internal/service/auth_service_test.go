package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recicla/internal/auth"
	apperrors "recicla/internal/errors"
	"recicla/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Name: "Ana Souza", Email: "ana@example.com", Password: "senha123", Role: model.RoleCitizen},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "duplicate email",
			input: RegisterInput{Name: "Ana Souza", Email: "taken@example.com", Password: "senha123", Role: model.RoleCitizen},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
			user, token, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Role, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcryptCost)
	known := &model.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleCitizen,
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
	}{
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "whatever",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(known, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			assert.Nil(t, user)
			assert.Empty(t, token)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("senha123"), bcryptCost)
	known := &model.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleCitizen,
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(known, nil)

	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(mockRepo, jwtService)

	user, token, err := svc.Login(context.Background(), "ana@example.com", "senha123")
	assert.NoError(t, err)
	assert.Equal(t, known.ID, user.ID)

	claims, err := jwtService.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, known.ID, claims.UserID)
	assert.Equal(t, model.RoleCitizen, claims.Role)
}
