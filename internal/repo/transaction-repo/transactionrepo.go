package transactionrepo

import (
	"context"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"go.uber.org/zap"
)

const txColumns = `id, user_id, amount, type, status, reference, details, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanTransaction(row pg.Scanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Status,
		&tx.Reference, &tx.Details, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, amount, type, status, reference, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.UserID, tx.Amount, tx.Type, tx.Status,
		tx.Reference, tx.Details).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't create transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		zap.L().Error("can't list transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

// FindPendingWithdrawals feeds the payout settlement poller.
func (r *Repository) FindPendingWithdrawals(ctx context.Context, limit uint32) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE type = $1 AND status = $2 ORDER BY created_at LIMIT $3`,
		domain.TxTypeWithdrawal, domain.TxStatusPending, limit)
	if err != nil {
		zap.L().Error("can't fetch pending withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		zap.L().Error("can't update transaction status", zap.Error(err))
	}
	return err
}

func (r *Repository) SumByTypeBetween(ctx context.Context, txType string, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE type = $1 AND status = $2 AND created_at >= $3 AND created_at < $4`,
		txType, domain.TxStatusCompleted, from, to).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum transactions", zap.Error(err))
		return 0, err
	}
	return total, nil
}
