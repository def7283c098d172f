package teamservice

import (
	"context"
	"errors"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"go.uber.org/zap"
)

type TeamRepo interface {
	List(ctx context.Context) ([]domain.Team, error)
	FindByID(ctx context.Context, id int) (*domain.Team, error)
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Delete(ctx context.Context, id int) error
	AddMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	Members(ctx context.Context, teamID int) ([]domain.TeamMember, error)
	FindMember(ctx context.Context, teamID, userID int) (*domain.TeamMember, error)
	UpdateMemberRole(ctx context.Context, memberID int, role string) error
	RemoveMember(ctx context.Context, teamID, userID int) error
	FindCoLeader(ctx context.Context, teamID int) (*domain.TeamMember, error)
	CreateInvite(ctx context.Context, inv *domain.TeamInvite) (*domain.TeamInvite, error)
	FindPendingInvite(ctx context.Context, teamID, userID int) (*domain.TeamInvite, error)
	FindInviteByID(ctx context.Context, id int) (*domain.TeamInvite, error)
	ListPendingInvitesByUser(ctx context.Context, userID int) ([]domain.TeamInvite, error)
	UpdateInviteStatus(ctx context.Context, id int, status string) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	SetTeam(ctx context.Context, userID int, teamID *int) error
}

type ChatRepo interface {
	CreateRoom(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error)
}

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrAlreadyInTeam  = errors.New("already a member of a team")
	ErrTeamFull       = errors.New("team is full")
	ErrNotInTeam      = errors.New("not a member of this team")
	ErrNotLeader      = errors.New("only the team leader can do this")
	ErrNotOfficer     = errors.New("only the leader or a co-leader can invite")
	ErrMemberNotFound = errors.New("member not found")
	ErrSelfRole       = errors.New("cannot change your own role")
	ErrInvalidRole    = errors.New("invalid role")
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyInvited = errors.New("user already has a pending invite")
	ErrInviteNotFound = errors.New("invite not found")
	ErrNotYourInvite  = errors.New("invite belongs to another user")
	ErrInviteExpired  = errors.New("invite has expired")
)

const (
	defaultMaxMembers = 4
	inviteTTL         = 7 * 24 * time.Hour
)

type InviteDetails struct {
	Invite  domain.TeamInvite
	Team    *domain.Team
	Inviter *domain.User
}

type Service struct {
	teamRepo TeamRepo
	userRepo UserRepo
	chatRepo ChatRepo
	txm      pg.TXManager
}

func New(teamRepo TeamRepo, userRepo UserRepo, chatRepo ChatRepo, txm pg.TXManager) *Service {
	return &Service{
		teamRepo: teamRepo,
		userRepo: userRepo,
		chatRepo: chatRepo,
		txm:      txm,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

func (s *Service) Members(ctx context.Context, teamID int) ([]domain.TeamMember, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.Members(ctx, teamID)
}

// Create founds a team with the caller as its leader. A user can belong to at
// most one team at a time.
func (s *Service) Create(ctx context.Context, userID int, team *domain.Team) (*domain.Team, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	team.LeaderID = userID
	if team.MaxMembers == 0 {
		team.MaxMembers = defaultMaxMembers
	}

	err = s.txm.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.teamRepo.Create(ctx, team); err != nil {
			return err
		}
		if _, err := s.teamRepo.AddMember(ctx, &domain.TeamMember{
			TeamID: team.ID,
			UserID: userID,
			Role:   domain.RoleLeader,
		}); err != nil {
			return err
		}
		if err := s.userRepo.SetTeam(ctx, userID, &team.ID); err != nil {
			return err
		}
		// Every team gets its own chat room.
		_, err := s.chatRepo.CreateRoom(ctx, &domain.ChatRoom{
			Name:      team.Name,
			Type:      domain.RoomTeam,
			RelatedID: &team.ID,
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to create team", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	zap.L().Info("team created", zap.Int("teamID", team.ID), zap.String("name", team.Name))
	return team, nil
}

func (s *Service) Join(ctx context.Context, teamID, userID int) (*domain.TeamMember, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	if err := s.ensureHasRoom(ctx, team); err != nil {
		return nil, err
	}

	var member *domain.TeamMember
	err = s.txm.Begin(ctx, func(ctx context.Context) error {
		member, err = s.teamRepo.AddMember(ctx, &domain.TeamMember{
			TeamID: teamID,
			UserID: userID,
			Role:   domain.RoleMember,
		})
		if err != nil {
			return err
		}
		return s.userRepo.SetTeam(ctx, userID, &teamID)
	})
	if err != nil {
		zap.L().Error("failed to join team", zap.Error(err), zap.Int("teamID", teamID), zap.Int("userID", userID))
		return nil, err
	}
	return member, nil
}

func (s *Service) ensureHasRoom(ctx context.Context, team *domain.Team) error {
	members, err := s.teamRepo.Members(ctx, team.ID)
	if err != nil {
		return err
	}
	if len(members) >= team.MaxMembers {
		return ErrTeamFull
	}
	return nil
}

// Leave removes the caller from their team. A departing leader hands the team
// to the longest-serving co-leader; with no co-leader the team disbands.
func (s *Service) Leave(ctx context.Context, teamID, userID int) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}

	member, err := s.teamRepo.FindMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotInTeam
	}

	err = s.txm.Begin(ctx, func(ctx context.Context) error {
		if team.LeaderID == userID {
			return s.leaderLeaves(ctx, team, userID)
		}
		if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
			return err
		}
		return s.userRepo.SetTeam(ctx, userID, nil)
	})
	if err != nil {
		zap.L().Error("failed to leave team", zap.Error(err), zap.Int("teamID", teamID), zap.Int("userID", userID))
		return err
	}
	return nil
}

func (s *Service) leaderLeaves(ctx context.Context, team *domain.Team, userID int) error {
	successor, err := s.teamRepo.FindCoLeader(ctx, team.ID)
	if err != nil {
		return err
	}

	if successor == nil {
		// No co-leader to promote: disband.
		members, err := s.teamRepo.Members(ctx, team.ID)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := s.userRepo.SetTeam(ctx, m.UserID, nil); err != nil {
				return err
			}
		}
		if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
			return err
		}
		zap.L().Info("team disbanded", zap.Int("teamID", team.ID))
		return nil
	}

	if err := s.teamRepo.UpdateMemberRole(ctx, successor.ID, domain.RoleLeader); err != nil {
		return err
	}
	team.LeaderID = successor.UserID
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return err
	}
	if err := s.teamRepo.RemoveMember(ctx, team.ID, userID); err != nil {
		return err
	}
	if err := s.userRepo.SetTeam(ctx, userID, nil); err != nil {
		return err
	}
	zap.L().Info("team leadership transferred",
		zap.Int("teamID", team.ID), zap.Int("newLeaderID", successor.UserID))
	return nil
}

type UpdateParams struct {
	Name        *string
	Tag         *string
	Description *string
	Logo        *string
}

func (s *Service) Update(ctx context.Context, teamID, userID int, params UpdateParams) (*domain.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if team.LeaderID != userID {
		return nil, ErrNotLeader
	}

	if params.Name != nil {
		team.Name = *params.Name
	}
	if params.Tag != nil {
		team.Tag = *params.Tag
	}
	if params.Description != nil {
		team.Description = *params.Description
	}
	if params.Logo != nil {
		team.Logo = *params.Logo
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// ChangeRole sets a member's role. Promoting someone to leader demotes the
// current leader to co-leader in the same transactional unit.
func (s *Service) ChangeRole(ctx context.Context, teamID, targetUserID, actorID int, role string) (*domain.TeamMember, error) {
	if role != domain.RoleLeader && role != domain.RoleCoLeader && role != domain.RoleMember {
		return nil, ErrInvalidRole
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if team.LeaderID != actorID {
		return nil, ErrNotLeader
	}
	if targetUserID == actorID {
		return nil, ErrSelfRole
	}

	member, err := s.teamRepo.FindMember(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	err = s.txm.Begin(ctx, func(ctx context.Context) error {
		if err := s.teamRepo.UpdateMemberRole(ctx, member.ID, role); err != nil {
			return err
		}
		if role != domain.RoleLeader {
			return nil
		}
		team.LeaderID = targetUserID
		if err := s.teamRepo.Update(ctx, team); err != nil {
			return err
		}
		actor, err := s.teamRepo.FindMember(ctx, teamID, actorID)
		if err != nil {
			return err
		}
		if actor == nil {
			return ErrMemberNotFound
		}
		return s.teamRepo.UpdateMemberRole(ctx, actor.ID, domain.RoleCoLeader)
	})
	if err != nil {
		zap.L().Error("failed to change member role", zap.Error(err), zap.Int("teamID", teamID))
		return nil, err
	}
	member.Role = role
	return member, nil
}

func (s *Service) Invite(ctx context.Context, teamID, actorID int, username string) (*domain.TeamInvite, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	actor, err := s.teamRepo.FindMember(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrNotInTeam
	}
	if actor.Role != domain.RoleLeader && actor.Role != domain.RoleCoLeader {
		return nil, ErrNotOfficer
	}

	if err := s.ensureHasRoom(ctx, team); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	existing, err := s.teamRepo.FindPendingInvite(ctx, teamID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInvited
	}

	invite, err := s.teamRepo.CreateInvite(ctx, &domain.TeamInvite{
		TeamID:    teamID,
		UserID:    user.ID,
		InvitedBy: actorID,
		Status:    domain.InvitePending,
		ExpiresAt: time.Now().Add(inviteTTL),
	})
	if err != nil {
		zap.L().Error("failed to create invite", zap.Error(err), zap.Int("teamID", teamID))
		return nil, err
	}
	zap.L().Info("team invite sent", zap.Int("teamID", teamID), zap.String("username", username))
	return invite, nil
}

// Invites lists the caller's pending invites, lazily expiring stale ones.
func (s *Service) Invites(ctx context.Context, userID int) ([]InviteDetails, error) {
	invites, err := s.teamRepo.ListPendingInvitesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]InviteDetails, 0, len(invites))
	for _, inv := range invites {
		if time.Now().After(inv.ExpiresAt) {
			if err := s.teamRepo.UpdateInviteStatus(ctx, inv.ID, domain.InviteExpired); err != nil {
				return nil, err
			}
			continue
		}
		team, err := s.teamRepo.FindByID(ctx, inv.TeamID)
		if err != nil {
			return nil, err
		}
		inviter, err := s.userRepo.FindByID(ctx, inv.InvitedBy)
		if err != nil {
			return nil, err
		}
		details = append(details, InviteDetails{Invite: inv, Team: team, Inviter: inviter})
	}
	return details, nil
}

// Respond accepts or declines an invite. Accepting joins the team.
func (s *Service) Respond(ctx context.Context, inviteID, userID int, accept bool) (*domain.TeamMember, error) {
	invite, err := s.teamRepo.FindInviteByID(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite == nil || invite.Status != domain.InvitePending {
		return nil, ErrInviteNotFound
	}
	if invite.UserID != userID {
		return nil, ErrNotYourInvite
	}
	if time.Now().After(invite.ExpiresAt) {
		if err := s.teamRepo.UpdateInviteStatus(ctx, invite.ID, domain.InviteExpired); err != nil {
			return nil, err
		}
		return nil, ErrInviteExpired
	}

	if !accept {
		return nil, s.teamRepo.UpdateInviteStatus(ctx, invite.ID, domain.InviteDeclined)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	team, err := s.teamRepo.FindByID(ctx, invite.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if err := s.ensureHasRoom(ctx, team); err != nil {
		return nil, err
	}

	var member *domain.TeamMember
	err = s.txm.Begin(ctx, func(ctx context.Context) error {
		if err := s.teamRepo.UpdateInviteStatus(ctx, invite.ID, domain.InviteAccepted); err != nil {
			return err
		}
		member, err = s.teamRepo.AddMember(ctx, &domain.TeamMember{
			TeamID: team.ID,
			UserID: userID,
			Role:   domain.RoleMember,
		})
		if err != nil {
			return err
		}
		return s.userRepo.SetTeam(ctx, userID, &team.ID)
	})
	if err != nil {
		zap.L().Error("failed to accept invite", zap.Error(err), zap.Int("inviteID", inviteID))
		return nil, err
	}
	return member, nil
}
