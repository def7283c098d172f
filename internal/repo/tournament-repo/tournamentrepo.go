package tournamentrepo

import (
	"context"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const tournamentColumns = `id, name, description, start_time, entry_fee, prize_pool,
       per_kill_reward, max_players, mode, map, status, rules, image, room_id,
       room_password, organizer_id, created_at`

const participantColumns = `id, tournament_id, user_id, team_id, kills, rank, status, joined_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanTournament(row pg.Scanner) (*domain.Tournament, error) {
	var t domain.Tournament
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.StartTime, &t.EntryFee,
		&t.PrizePool, &t.PerKillReward, &t.MaxPlayers, &t.Mode, &t.Map, &t.Status,
		&t.Rules, &t.Image, &t.RoomID, &t.RoomPassword, &t.OrganizerID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanParticipant(row pg.Scanner) (*domain.TournamentParticipant, error) {
	var p domain.TournamentParticipant
	err := row.Scan(&p.ID, &p.TournamentID, &p.UserID, &p.TeamID, &p.Kills,
		&p.Rank, &p.Status, &p.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Tournament, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tournamentColumns+` FROM tournaments ORDER BY start_time`)
	if err != nil {
		zap.L().Error("can't list tournaments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tournaments []domain.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Tournament, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
	t, err := scanTournament(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find tournament", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *Repository) Create(ctx context.Context, t *domain.Tournament) (*domain.Tournament, error) {
	query := `
		INSERT INTO tournaments (name, description, start_time, entry_fee, prize_pool,
			per_kill_reward, max_players, mode, map, status, rules, image, room_id,
			room_password, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		t.Name, t.Description, t.StartTime, t.EntryFee, t.PrizePool, t.PerKillReward,
		t.MaxPlayers, t.Mode, t.Map, t.Status, t.Rules, t.Image, t.RoomID,
		t.RoomPassword, t.OrganizerID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		zap.L().Error("can't create tournament", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *Repository) Participants(ctx context.Context, tournamentID int) ([]domain.TournamentParticipant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+participantColumns+` FROM tournament_participants WHERE tournament_id = $1 ORDER BY joined_at`,
		tournamentID)
	if err != nil {
		zap.L().Error("can't list participants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var participants []domain.TournamentParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

func (r *Repository) FindParticipant(ctx context.Context, tournamentID, userID int) (*domain.TournamentParticipant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM tournament_participants WHERE tournament_id = $1 AND user_id = $2`,
		tournamentID, userID)
	p, err := scanParticipant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find participant", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) CountParticipants(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tournament_participants WHERE tournament_id = $1`,
		tournamentID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count participants", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) CreateParticipant(ctx context.Context, p *domain.TournamentParticipant) (*domain.TournamentParticipant, error) {
	query := `
		INSERT INTO tournament_participants (tournament_id, user_id, team_id, kills, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at
	`
	err := r.db.QueryRow(ctx, query, p.TournamentID, p.UserID, p.TeamID, p.Kills, p.Status).
		Scan(&p.ID, &p.JoinedAt)
	if err != nil {
		zap.L().Error("can't create participant", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) DeleteParticipant(ctx context.Context, tournamentID, userID int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tournament_participants WHERE tournament_id = $1 AND user_id = $2`,
		tournamentID, userID)
	if err != nil {
		zap.L().Error("can't delete participant", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// TotalPrizePool sums prize pools of tournaments still worth advertising.
func (r *Repository) TotalPrizePool(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(prize_pool), 0) FROM tournaments WHERE status IN ($1, $2)`,
		domain.TournamentUpcoming, domain.TournamentOngoing).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum prize pools", zap.Error(err))
		return 0, err
	}
	return total, nil
}

func (r *Repository) CountStartedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tournaments WHERE start_time >= $1 AND start_time < $2`,
		from, to).Scan(&count)
	if err != nil {
		zap.L().Error("can't count tournaments", zap.Error(err))
		return 0, err
	}
	return count, nil
}
