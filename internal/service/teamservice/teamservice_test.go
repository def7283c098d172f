package teamservice

import (
	"context"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return New(store.Teams(), store.Users(), store.Chat(), store.TxManager()), store
}

func seedUser(t *testing.T, store *memstore.Store, username string) *domain.User {
	t.Helper()
	user, err := store.Users().Create(context.Background(), &domain.User{Username: username})
	require.NoError(t, err)
	return user
}

func TestCreateTeam(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders", Tag: "NR"})
	require.NoError(t, err)
	assert.Equal(t, leader.ID, team.LeaderID)
	assert.Equal(t, 4, team.MaxMembers)

	member, err := store.Teams().FindMember(ctx, team.ID, leader.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, domain.RoleLeader, member.Role)

	updated, err := store.Users().FindByID(ctx, leader.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.TeamID)
	assert.Equal(t, team.ID, *updated.TeamID)

	rooms, err := store.Chat().ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, domain.RoomTeam, rooms[1].Type)
	require.NotNil(t, rooms[1].RelatedID)
	assert.Equal(t, team.ID, *rooms[1].RelatedID)

	// One team per user.
	_, err = service.Create(ctx, leader.ID, &domain.Team{Name: "Second Squad"})
	assert.ErrorIs(t, err, ErrAlreadyInTeam)
}

func TestJoinTeam(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders", MaxMembers: 2})
	require.NoError(t, err)

	second := seedUser(t, store, "second")
	member, err := service.Join(ctx, team.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, member.Role)

	third := seedUser(t, store, "third")
	_, err = service.Join(ctx, team.ID, third.ID)
	assert.ErrorIs(t, err, ErrTeamFull)

	_, err = service.Join(ctx, 999, third.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestLeaveTransfersLeadership(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")
	second := seedUser(t, store, "second")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders"})
	require.NoError(t, err)
	_, err = service.Join(ctx, team.ID, second.ID)
	require.NoError(t, err)

	_, err = service.ChangeRole(ctx, team.ID, second.ID, leader.ID, domain.RoleCoLeader)
	require.NoError(t, err)

	require.NoError(t, service.Leave(ctx, team.ID, leader.ID))

	updated, err := service.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.LeaderID)

	successor, err := store.Teams().FindMember(ctx, team.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLeader, successor.Role)

	gone, err := store.Users().FindByID(ctx, leader.ID)
	require.NoError(t, err)
	assert.Nil(t, gone.TeamID)
}

func TestLeaveDisbandsWithoutCoLeader(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")
	second := seedUser(t, store, "second")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders"})
	require.NoError(t, err)
	_, err = service.Join(ctx, team.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, service.Leave(ctx, team.ID, leader.ID))

	_, err = service.Get(ctx, team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)

	orphan, err := store.Users().FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.TeamID)
}

func TestChangeRolePromotionDemotesLeader(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")
	second := seedUser(t, store, "second")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders"})
	require.NoError(t, err)
	_, err = service.Join(ctx, team.ID, second.ID)
	require.NoError(t, err)

	_, err = service.ChangeRole(ctx, team.ID, second.ID, second.ID, domain.RoleCoLeader)
	assert.ErrorIs(t, err, ErrNotLeader)

	_, err = service.ChangeRole(ctx, team.ID, leader.ID, leader.ID, domain.RoleCoLeader)
	assert.ErrorIs(t, err, ErrSelfRole)

	promoted, err := service.ChangeRole(ctx, team.ID, second.ID, leader.ID, domain.RoleLeader)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLeader, promoted.Role)

	updated, err := service.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.LeaderID)

	demoted, err := store.Teams().FindMember(ctx, team.ID, leader.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoLeader, demoted.Role)
}

func TestInviteFlow(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")
	invited := seedUser(t, store, "invited")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders"})
	require.NoError(t, err)

	invite, err := service.Invite(ctx, team.ID, leader.ID, "invited")
	require.NoError(t, err)
	assert.Equal(t, domain.InvitePending, invite.Status)

	// Duplicate pending invite.
	_, err = service.Invite(ctx, team.ID, leader.ID, "invited")
	assert.ErrorIs(t, err, ErrAlreadyInvited)

	// Only the invitee may respond.
	stranger := seedUser(t, store, "stranger")
	_, err = service.Respond(ctx, invite.ID, stranger.ID, true)
	assert.ErrorIs(t, err, ErrNotYourInvite)

	invites, err := service.Invites(ctx, invited.ID)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, team.ID, invites[0].Team.ID)
	assert.Equal(t, leader.ID, invites[0].Inviter.ID)

	member, err := service.Respond(ctx, invite.ID, invited.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, member.Role)

	joined, err := store.Users().FindByID(ctx, invited.ID)
	require.NoError(t, err)
	require.NotNil(t, joined.TeamID)
	assert.Equal(t, team.ID, *joined.TeamID)

	// Invite is consumed.
	_, err = service.Respond(ctx, invite.ID, invited.ID, true)
	assert.ErrorIs(t, err, ErrInviteNotFound)
}

func TestInviteRequiresOfficer(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	leader := seedUser(t, store, "leader")
	second := seedUser(t, store, "second")
	seedUser(t, store, "outsider")

	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Night Raiders"})
	require.NoError(t, err)
	_, err = service.Join(ctx, team.ID, second.ID)
	require.NoError(t, err)

	_, err = service.Invite(ctx, team.ID, second.ID, "outsider")
	assert.ErrorIs(t, err, ErrNotOfficer)
}
