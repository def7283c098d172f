package walletservice

import (
	"context"
	"errors"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/metrics"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	ApplyBalanceDelta(ctx context.Context, userID int, delta float64) (float64, error)
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user not found")
	ErrNotSettleable       = errors.New("transaction is not a pending withdrawal")
)

type Service struct {
	transactionRepo TransactionRepo
	userRepo        UserRepo
	txm             pg.TXManager
}

func New(transactionRepo TransactionRepo, userRepo UserRepo, txm pg.TXManager) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		txm:             txm,
	}
}

// balanceDelta maps a transaction type to its signed effect on the balance.
func balanceDelta(txType string, amount float64) float64 {
	switch txType {
	case domain.TxTypeDeposit, domain.TxTypeTournamentWin, domain.TxTypeReferral:
		return amount
	case domain.TxTypeWithdrawal, domain.TxTypeTournamentEntry:
		return -amount
	}
	return 0
}

// CreateTransaction persists the row and, if and only if it is already
// completed, applies its balance effect. Both writes happen in one
// transactional unit so a transaction can never be recorded without its
// ledger effect.
func (s *Service) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	err := s.txm.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.transactionRepo.Create(ctx, tx); err != nil {
			return err
		}
		if tx.Status != domain.TxStatusCompleted {
			return nil
		}
		if delta := balanceDelta(tx.Type, tx.Amount); delta != 0 {
			if _, err := s.userRepo.ApplyBalanceDelta(ctx, tx.UserID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to create transaction", zap.Error(err))
		return nil, err
	}
	metrics.TransactionsTotal.WithLabelValues(tx.Type, tx.Status).Inc()
	return tx, nil
}

func (s *Service) GetWallet(ctx context.Context, userID int) (*domain.User, []domain.Transaction, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	transactions, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, nil, err
	}
	return user, transactions, nil
}

// Deposit simulates a payment gateway: the transaction settles instantly and
// credits the balance. Returns the transaction and the new balance.
func (s *Service) Deposit(ctx context.Context, userID int, amount float64) (*domain.Transaction, float64, error) {
	tx := &domain.Transaction{
		UserID:    userID,
		Amount:    amount,
		Type:      domain.TxTypeDeposit,
		Status:    domain.TxStatusCompleted,
		Reference: uuid.NewString(),
		Details:   `{"method":"UPI"}`,
	}
	if _, err := s.CreateTransaction(ctx, tx); err != nil {
		return nil, 0, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}
	return tx, user.Balance, nil
}

// RequestWithdrawal records a pending withdrawal. Pending transactions do not
// touch the balance; the payout poller settles them later.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int, amount float64) (*domain.Transaction, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Balance < amount {
		return nil, ErrInsufficientBalance
	}

	tx := &domain.Transaction{
		UserID:    userID,
		Amount:    amount,
		Type:      domain.TxTypeWithdrawal,
		Status:    domain.TxStatusPending,
		Reference: uuid.NewString(),
		Details:   `{"method":"UPI"}`,
	}
	return s.CreateTransaction(ctx, tx)
}

// SettleWithdrawal resolves a pending withdrawal: approval debits the balance
// and completes the transaction in one unit, rejection marks it failed and
// leaves the balance alone.
func (s *Service) SettleWithdrawal(ctx context.Context, tx domain.Transaction, approved bool) error {
	if tx.Type != domain.TxTypeWithdrawal || tx.Status != domain.TxStatusPending {
		return ErrNotSettleable
	}

	if !approved {
		if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, domain.TxStatusFailed); err != nil {
			return err
		}
		metrics.TransactionsTotal.WithLabelValues(tx.Type, domain.TxStatusFailed).Inc()
		return nil
	}

	err := s.txm.Begin(ctx, func(ctx context.Context) error {
		if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, domain.TxStatusCompleted); err != nil {
			return err
		}
		_, err := s.userRepo.ApplyBalanceDelta(ctx, tx.UserID, -tx.Amount)
		return err
	})
	if err != nil {
		zap.L().Error("failed to settle withdrawal", zap.Error(err), zap.Int("transactionID", tx.ID))
		return err
	}
	metrics.TransactionsTotal.WithLabelValues(tx.Type, domain.TxStatusCompleted).Inc()
	zap.L().Info("withdrawal settled", zap.Int("transactionID", tx.ID), zap.Float64("amount", tx.Amount))
	return nil
}
