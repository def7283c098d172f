package teamrepo

import (
	"context"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const teamColumns = `id, name, tag, description, logo, leader_id, max_members, created_at`
const memberColumns = `id, team_id, user_id, role, joined_at`
const inviteColumns = `id, team_id, user_id, invited_by, status, expires_at, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanTeam(row pg.Scanner) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(&t.ID, &t.Name, &t.Tag, &t.Description, &t.Logo,
		&t.LeaderID, &t.MaxMembers, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanMember(row pg.Scanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	if err := row.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanInvite(row pg.Scanner) (*domain.TeamInvite, error) {
	var inv domain.TeamInvite
	err := row.Scan(&inv.ID, &inv.TeamID, &inv.UserID, &inv.InvitedBy,
		&inv.Status, &inv.ExpiresAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at`)
	if err != nil {
		zap.L().Error("can't list teams", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Team, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find team", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *Repository) Create(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	query := `
		INSERT INTO teams (name, tag, description, logo, leader_id, max_members)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, t.Name, t.Tag, t.Description, t.Logo,
		t.LeaderID, t.MaxMembers).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		zap.L().Error("can't create team", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *Repository) Update(ctx context.Context, t *domain.Team) error {
	query := `
		UPDATE teams SET name = $1, tag = $2, description = $3, logo = $4, leader_id = $5
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, t.Name, t.Tag, t.Description, t.Logo, t.LeaderID, t.ID)
	if err != nil {
		zap.L().Error("can't update team", zap.Error(err))
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("can't delete team", zap.Error(err))
	}
	return err
}

func (r *Repository) AddMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	query := `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at
	`
	err := r.db.QueryRow(ctx, query, m.TeamID, m.UserID, m.Role).Scan(&m.ID, &m.JoinedAt)
	if err != nil {
		zap.L().Error("can't add team member", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) Members(ctx context.Context, teamID int) ([]domain.TeamMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE team_id = $1 ORDER BY joined_at`, teamID)
	if err != nil {
		zap.L().Error("can't list team members", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *Repository) FindMember(ctx context.Context, teamID, userID int) (*domain.TeamMember, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID)
	m, err := scanMember(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find team member", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) UpdateMemberRole(ctx context.Context, memberID int, role string) error {
	_, err := r.db.Exec(ctx, `UPDATE team_members SET role = $1 WHERE id = $2`, role, memberID)
	if err != nil {
		zap.L().Error("can't update member role", zap.Error(err))
	}
	return err
}

func (r *Repository) RemoveMember(ctx context.Context, teamID, userID int) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		zap.L().Error("can't remove team member", zap.Error(err))
	}
	return err
}

// FindCoLeader returns the longest-standing co-leader, the succession
// candidate when a leader leaves.
func (r *Repository) FindCoLeader(ctx context.Context, teamID int) (*domain.TeamMember, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE team_id = $1 AND role = $2 ORDER BY joined_at LIMIT 1`,
		teamID, domain.RoleCoLeader)
	m, err := scanMember(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find co-leader", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) CreateInvite(ctx context.Context, inv *domain.TeamInvite) (*domain.TeamInvite, error) {
	query := `
		INSERT INTO team_invites (team_id, user_id, invited_by, status, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, inv.TeamID, inv.UserID, inv.InvitedBy,
		inv.Status, inv.ExpiresAt).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		zap.L().Error("can't create team invite", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) FindPendingInvite(ctx context.Context, teamID, userID int) (*domain.TeamInvite, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+inviteColumns+` FROM team_invites WHERE team_id = $1 AND user_id = $2 AND status = $3`,
		teamID, userID, domain.InvitePending)
	inv, err := scanInvite(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find invite", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) FindInviteByID(ctx context.Context, id int) (*domain.TeamInvite, error) {
	row := r.db.QueryRow(ctx, `SELECT `+inviteColumns+` FROM team_invites WHERE id = $1`, id)
	inv, err := scanInvite(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find invite", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) ListPendingInvitesByUser(ctx context.Context, userID int) ([]domain.TeamInvite, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+inviteColumns+` FROM team_invites WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`,
		userID, domain.InvitePending)
	if err != nil {
		zap.L().Error("can't list invites", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var invites []domain.TeamInvite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, *inv)
	}
	return invites, rows.Err()
}

func (r *Repository) UpdateInviteStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE team_invites SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		zap.L().Error("can't update invite status", zap.Error(err))
	}
	return err
}
