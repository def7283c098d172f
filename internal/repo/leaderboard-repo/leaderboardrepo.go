package leaderboardrepo

import (
	"context"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) ListByPeriod(ctx context.Context, period string) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT id, user_id, kills, wins, earnings, tournament_count, period, updated_at
		FROM leaderboard_entries
		WHERE period = $1
		ORDER BY kills DESC, wins DESC
	`
	rows, err := r.db.Query(ctx, query, period)
	if err != nil {
		zap.L().Error("can't list leaderboard", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kills, &e.Wins, &e.Earnings,
			&e.TournamentCount, &e.Period, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Upsert keeps one row per (user, period). Zero-valued incoming fields keep
// the stored value, matching the find-or-create-and-merge semantics of the
// leaderboard aggregate.
func (r *Repository) Upsert(ctx context.Context, entry *domain.LeaderboardEntry) (*domain.LeaderboardEntry, error) {
	query := `
		INSERT INTO leaderboard_entries (user_id, kills, wins, earnings, tournament_count, period)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, period) DO UPDATE SET
			kills = COALESCE(NULLIF(EXCLUDED.kills, 0), leaderboard_entries.kills),
			wins = COALESCE(NULLIF(EXCLUDED.wins, 0), leaderboard_entries.wins),
			earnings = COALESCE(NULLIF(EXCLUDED.earnings, 0::double precision), leaderboard_entries.earnings),
			tournament_count = COALESCE(NULLIF(EXCLUDED.tournament_count, 0), leaderboard_entries.tournament_count),
			updated_at = now()
		RETURNING id, user_id, kills, wins, earnings, tournament_count, period, updated_at
	`
	var e domain.LeaderboardEntry
	err := r.db.QueryRow(ctx, query, entry.UserID, entry.Kills, entry.Wins,
		entry.Earnings, entry.TournamentCount, entry.Period).
		Scan(&e.ID, &e.UserID, &e.Kills, &e.Wins, &e.Earnings, &e.TournamentCount,
			&e.Period, &e.UpdatedAt)
	if err != nil {
		zap.L().Error("can't upsert leaderboard entry", zap.Error(err))
		return nil, err
	}
	return &e, nil
}
