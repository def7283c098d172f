package walletservice

import (
	"context"
	"errors"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockTransactionRepo, *MockUserRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	transactionRepo := NewMockTransactionRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	txm := pg.NewMockTXManager(ctrl)
	txm.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(transactionRepo, userRepo, txm)
	defer ctrl.Finish()
	return service, transactionRepo, userRepo, txm
}

func TestCreateTransaction(t *testing.T) {
	service, transactionRepo, userRepo, _ := NewMock(t)

	tests := []struct {
		name          string
		tx            *domain.Transaction
		prepareMock   func(tx *domain.Transaction)
		expectedError error
	}{
		{
			name: "Completed deposit credits the balance",
			tx: &domain.Transaction{
				UserID: 1,
				Amount: 100,
				Type:   domain.TxTypeDeposit,
				Status: domain.TxStatusCompleted,
			},
			prepareMock: func(tx *domain.Transaction) {
				transactionRepo.EXPECT().Create(gomock.Any(), tx).Return(tx, nil)
				userRepo.EXPECT().ApplyBalanceDelta(gomock.Any(), 1, 100.0).Return(100.0, nil)
			},
		},
		{
			name: "Completed entry fee debits the balance",
			tx: &domain.Transaction{
				UserID: 1,
				Amount: 50,
				Type:   domain.TxTypeTournamentEntry,
				Status: domain.TxStatusCompleted,
			},
			prepareMock: func(tx *domain.Transaction) {
				transactionRepo.EXPECT().Create(gomock.Any(), tx).Return(tx, nil)
				userRepo.EXPECT().ApplyBalanceDelta(gomock.Any(), 1, -50.0).Return(50.0, nil)
			},
		},
		{
			name: "Pending withdrawal does not touch the balance",
			tx: &domain.Transaction{
				UserID: 1,
				Amount: 75,
				Type:   domain.TxTypeWithdrawal,
				Status: domain.TxStatusPending,
			},
			prepareMock: func(tx *domain.Transaction) {
				transactionRepo.EXPECT().Create(gomock.Any(), tx).Return(tx, nil)
			},
		},
		{
			name: "Create failure aborts without balance change",
			tx: &domain.Transaction{
				UserID: 1,
				Amount: 100,
				Type:   domain.TxTypeDeposit,
				Status: domain.TxStatusCompleted,
			},
			prepareMock: func(tx *domain.Transaction) {
				transactionRepo.EXPECT().Create(gomock.Any(), tx).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock(tt.tx)

			result, err := service.CreateTransaction(context.Background(), tt.tx)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.tx, result)
			}
		})
	}
}

func TestGetWallet(t *testing.T) {
	service, transactionRepo, userRepo, _ := NewMock(t)

	user := &domain.User{ID: 1, Balance: 250, Coins: 100}
	transactions := []domain.Transaction{
		{ID: 2, UserID: 1, Amount: 50, Type: domain.TxTypeTournamentEntry, Status: domain.TxStatusCompleted},
		{ID: 1, UserID: 1, Amount: 300, Type: domain.TxTypeDeposit, Status: domain.TxStatusCompleted},
	}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Wallet with history",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				transactionRepo.EXPECT().ListByUser(gomock.Any(), 1).Return(transactions, nil)
			},
		},
		{
			name: "Unknown user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			gotUser, gotTxs, err := service.GetWallet(context.Background(), 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user, gotUser)
				assert.Equal(t, transactions, gotTxs)
			}
		})
	}
}

func TestDeposit(t *testing.T) {
	service, transactionRepo, userRepo, _ := NewMock(t)

	transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
			assert.Equal(t, domain.TxTypeDeposit, tx.Type)
			assert.Equal(t, domain.TxStatusCompleted, tx.Status)
			assert.NotEmpty(t, tx.Reference)
			tx.ID = 1
			return tx, nil
		},
	)
	userRepo.EXPECT().ApplyBalanceDelta(gomock.Any(), 1, 100.0).Return(100.0, nil)
	userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 100}, nil)

	tx, newBalance, err := service.Deposit(context.Background(), 1, 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, tx.ID)
	assert.Equal(t, 100.0, newBalance)
}

func TestRequestWithdrawal(t *testing.T) {
	service, transactionRepo, userRepo, _ := NewMock(t)

	tests := []struct {
		name          string
		amount        float64
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Pending withdrawal created",
			amount: 100,
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 250}, nil)
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TxTypeWithdrawal, tx.Type)
						assert.Equal(t, domain.TxStatusPending, tx.Status)
						return tx, nil
					},
				)
			},
		},
		{
			name:   "Insufficient balance",
			amount: 500,
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 250}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			tx, err := service.RequestWithdrawal(context.Background(), 1, tt.amount)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.TxStatusPending, tx.Status)
			}
		})
	}
}

func TestSettleWithdrawal(t *testing.T) {
	service, transactionRepo, userRepo, _ := NewMock(t)

	pending := domain.Transaction{
		ID:     7,
		UserID: 1,
		Amount: 100,
		Type:   domain.TxTypeWithdrawal,
		Status: domain.TxStatusPending,
	}

	tests := []struct {
		name          string
		tx            domain.Transaction
		approved      bool
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Approval completes and debits",
			tx:       pending,
			approved: true,
			prepareMock: func() {
				transactionRepo.EXPECT().UpdateStatus(gomock.Any(), 7, domain.TxStatusCompleted).Return(nil)
				userRepo.EXPECT().ApplyBalanceDelta(gomock.Any(), 1, -100.0).Return(150.0, nil)
			},
		},
		{
			name:     "Rejection fails without debit",
			tx:       pending,
			approved: false,
			prepareMock: func() {
				transactionRepo.EXPECT().UpdateStatus(gomock.Any(), 7, domain.TxStatusFailed).Return(nil)
			},
		},
		{
			name: "Completed transaction cannot be settled",
			tx: domain.Transaction{
				ID:     8,
				UserID: 1,
				Amount: 100,
				Type:   domain.TxTypeWithdrawal,
				Status: domain.TxStatusCompleted,
			},
			approved:      true,
			prepareMock:   func() {},
			expectedError: ErrNotSettleable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.SettleWithdrawal(context.Background(), tt.tx, tt.approved)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
