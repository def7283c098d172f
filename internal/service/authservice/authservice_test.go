package authservice

import (
	"context"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/validate"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockRepo(ctrl)
	service := New(userRepo, &auth.HashService{}, &auth.JWTService{})
	defer ctrl.Finish()
	return service, userRepo
}

func TestRegister(t *testing.T) {
	service, userRepo := NewMock(t)

	tests := []struct {
		name          string
		params        RegisterParams
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "New account gets a referral code and starting coins",
			params: RegisterParams{Username: "rookie", Password: "secret1"},
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "rookie").Return(nil, nil)
				userRepo.EXPECT().FindByReferralCode(gomock.Any(), gomock.Any()).Return(nil, nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *domain.User) (*domain.User, error) {
						assert.NotEqual(t, "secret1", user.PasswordHash)
						assert.True(t, validate.IsReferralCode(user.ReferralCode))
						assert.Equal(t, 100, user.Coins)
						assert.Equal(t, 0.0, user.Balance)
						user.ID = 1
						return user, nil
					},
				)
			},
		},
		{
			name:   "Taken username",
			params: RegisterParams{Username: "rookie", Password: "secret1"},
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "rookie").Return(&domain.User{ID: 1}, nil)
			},
			expectedError: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.Register(context.Background(), tt.params)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, user.ID)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, userRepo := NewMock(t)

	hasher := &auth.HashService{}
	hash, err := hasher.HashPassword("secret1")
	assert.NoError(t, err)
	user := &domain.User{ID: 1, Username: "rookie", PasswordHash: hash}

	tests := []struct {
		name          string
		password      string
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Valid credentials",
			password: "secret1",
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "rookie").Return(user, nil)
			},
		},
		{
			name:     "Wrong password",
			password: "wrong",
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "rookie").Return(user, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Unknown user",
			password: "secret1",
			prepareMock: func() {
				userRepo.EXPECT().FindByUsername(gomock.Any(), "rookie").Return(nil, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			got, err := service.Authenticate(context.Background(), "rookie", tt.password)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user, got)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _ := NewMock(t)

	token, err := service.GenerateToken(1)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := (&auth.JWTService{}).ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
}
