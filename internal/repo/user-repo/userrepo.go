package userrepo

import (
	"context"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = `id, username, password_hash, email, phone, game_uid, avatar,
       balance, coins, referral_code, referred_by, team_id, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) scanUser(row pg.Scanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.Phone, &user.GameUID, &user.Avatar, &user.Balance, &user.Coins,
		&user.ReferralCode, &user.ReferredBy, &user.TeamID, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't scan user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	row := repo.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return repo.scanUser(row)
}

func (repo *Repository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := repo.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return repo.scanUser(row)
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	row := repo.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
	return repo.scanUser(row)
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, phone, game_uid, avatar, balance, coins, referral_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.Phone, user.GameUID,
		user.Avatar, user.Balance, user.Coins, user.ReferralCode,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ApplyBalanceDelta moves the balance by delta in a single statement so
// concurrent transactions cannot lose updates. Returns the new balance.
func (repo *Repository) ApplyBalanceDelta(ctx context.Context, userID int, delta float64) (float64, error) {
	var balance float64
	query := `UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`
	if err := repo.db.QueryRow(ctx, query, delta, userID).Scan(&balance); err != nil {
		zap.L().Error("can't update user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (repo *Repository) SetReferredBy(ctx context.Context, userID, referrerID int) error {
	_, err := repo.db.Exec(ctx, `UPDATE users SET referred_by = $1 WHERE id = $2`, referrerID, userID)
	if err != nil {
		zap.L().Error("can't set referred_by", zap.Error(err))
	}
	return err
}

func (repo *Repository) SetTeam(ctx context.Context, userID int, teamID *int) error {
	_, err := repo.db.Exec(ctx, `UPDATE users SET team_id = $1 WHERE id = $2`, teamID, userID)
	if err != nil {
		zap.L().Error("can't set team_id", zap.Error(err))
	}
	return err
}

func (repo *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		zap.L().Error("can't count users", zap.Error(err))
		return 0, err
	}
	return count, nil
}
