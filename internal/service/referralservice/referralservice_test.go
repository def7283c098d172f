package referralservice

import (
	"context"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

// validCode passes the checksum; codes in requests are validated before any lookup.
const validCode = "2377225624"

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockReferralRepo, *MockWallet) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	referralRepo := NewMockReferralRepo(ctrl)
	wallet := NewMockWallet(ctrl)
	txm := pg.NewMockTXManager(ctrl)
	txm.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(userRepo, referralRepo, wallet, txm)
	defer ctrl.Finish()
	return service, userRepo, referralRepo, wallet
}

func TestApply(t *testing.T) {
	service, userRepo, referralRepo, wallet := NewMock(t)

	referrer := &domain.User{ID: 2, Username: "veteran", ReferralCode: validCode}

	tests := []struct {
		name          string
		code          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Applying credits the referrer",
			code: validCode,
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Username: "rookie"}, nil)
				userRepo.EXPECT().FindByReferralCode(gomock.Any(), validCode).Return(referrer, nil)
				userRepo.EXPECT().SetReferredBy(gomock.Any(), 1, 2).Return(nil)
				referralRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, ref *domain.Referral) (*domain.Referral, error) {
						assert.Equal(t, 2, ref.ReferrerID)
						assert.Equal(t, 1, ref.ReferredID)
						assert.Equal(t, 50.0, ref.Reward)
						ref.ID = 3
						return ref, nil
					},
				)
				wallet.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, 2, tx.UserID)
						assert.Equal(t, domain.TxTypeReferral, tx.Type)
						assert.Equal(t, domain.TxStatusCompleted, tx.Status)
						assert.Equal(t, 50.0, tx.Amount)
						return tx, nil
					},
				)
			},
		},
		{
			name:          "Malformed code is rejected before lookup",
			code:          "123",
			prepareMock:   func() {},
			expectedError: ErrInvalidCode,
		},
		{
			name: "Second application is rejected",
			code: validCode,
			prepareMock: func() {
				referredBy := 2
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, ReferredBy: &referredBy}, nil)
			},
			expectedError: ErrAlreadyApplied,
		},
		{
			name: "Unknown code",
			code: validCode,
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1}, nil)
				userRepo.EXPECT().FindByReferralCode(gomock.Any(), validCode).Return(nil, nil)
			},
			expectedError: ErrInvalidCode,
		},
		{
			name: "Own code",
			code: validCode,
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, ReferralCode: validCode}, nil)
				userRepo.EXPECT().FindByReferralCode(gomock.Any(), validCode).Return(&domain.User{ID: 1}, nil)
			},
			expectedError: ErrSelfReferral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			referral, err := service.Apply(context.Background(), 1, tt.code)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 3, referral.ID)
			}
		})
	}
}

func TestGet(t *testing.T) {
	service, userRepo, referralRepo, _ := NewMock(t)

	referrals := []domain.Referral{
		{ID: 1, ReferrerID: 2, ReferredID: 5, Status: domain.TxStatusCompleted, Reward: 50},
	}
	userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(&domain.User{ID: 2, ReferralCode: validCode}, nil)
	referralRepo.EXPECT().ListByReferrer(gomock.Any(), 2).Return(referrals, nil)

	code, got, err := service.Get(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, validCode, code)
	assert.Equal(t, referrals, got)
}
