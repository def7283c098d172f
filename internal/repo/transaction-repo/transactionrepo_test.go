package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var txRows = []string{"id", "user_id", "amount", "type", "status", "reference", "details", "created_at"}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	tests := []struct {
		name      string
		tx        *domain.Transaction
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates transaction",
			tx: &domain.Transaction{
				UserID: 1, Amount: 500, Type: domain.TxTypeDeposit,
				Status: domain.TxStatusCompleted, Reference: "ref-1", Details: `{"method":"UPI"}`,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO transactions (user_id, amount, type, status, reference, details)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`)).
					WithArgs(1, 500.0, domain.TxTypeDeposit, domain.TxStatusCompleted, "ref-1", `{"method":"UPI"}`).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(7, createdAt))
			},
		},
		{
			name: "Database error",
			tx: &domain.Transaction{
				UserID: 1, Amount: 500, Type: domain.TxTypeDeposit,
				Status: domain.TxStatusCompleted, Reference: "ref-1", Details: `{"method":"UPI"}`,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO transactions (user_id, amount, type, status, reference, details)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`)).
					WithArgs(1, 500.0, domain.TxTypeDeposit, domain.TxStatusCompleted, "ref-1", `{"method":"UPI"}`).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.tx)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, result.ID)
			}
		})
	}
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	rows := pgxmock.NewRows(txRows).
		AddRow(2, 1, 500.0, domain.TxTypeDeposit, domain.TxStatusCompleted, "ref-2", "{}", createdAt).
		AddRow(1, 1, 50.0, domain.TxTypeTournamentEntry, domain.TxStatusCompleted, "10", "{}", createdAt.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+txColumns+` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(1).
		WillReturnRows(rows)

	transactions, err := repo.ListByUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, domain.TxTypeDeposit, transactions[0].Type)
	assert.Equal(t, domain.TxTypeTournamentEntry, transactions[1].Type)
}

func TestRepository_FindPendingWithdrawals(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns oldest pending withdrawals",
			mockSetup: func() {
				rows := pgxmock.NewRows(txRows).
					AddRow(3, 1, 500.0, domain.TxTypeWithdrawal, domain.TxStatusPending, "w-3", "{}", createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+txColumns+` FROM transactions WHERE type = $1 AND status = $2 ORDER BY created_at LIMIT $3`)).
					WithArgs(domain.TxTypeWithdrawal, domain.TxStatusPending, uint32(10)).
					WillReturnRows(rows)
			},
			count: 1,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+txColumns+` FROM transactions WHERE type = $1 AND status = $2 ORDER BY created_at LIMIT $3`)).
					WithArgs(domain.TxTypeWithdrawal, domain.TxStatusPending, uint32(10)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			transactions, err := repo.FindPendingWithdrawals(context.Background(), 10)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, transactions, tt.count)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE transactions SET status = $1 WHERE id = $2`)).
		WithArgs(domain.TxStatusCompleted, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), 3, domain.TxStatusCompleted)
	assert.NoError(t, err)
}

func TestRepository_SumByTypeBetween(t *testing.T) {
	repo, mock := NewMock(t)

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM transactions
			 WHERE type = $1 AND status = $2 AND created_at >= $3 AND created_at < $4`)).
		WithArgs(domain.TxTypeTournamentWin, domain.TxStatusCompleted, from, to).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(15000.0))

	total, err := repo.SumByTypeBetween(context.Background(), domain.TxTypeTournamentWin, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 15000.0, total)
}
