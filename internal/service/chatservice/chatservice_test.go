package chatservice

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
	return New(store.Chat(), store.Users(), store.Teams(), store.Tournaments()), store
}

func TestGlobalRoomIsSeeded(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	rooms, err := service.Rooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, domain.RoomGlobal, rooms[0].Type)
}

func TestSendToGlobalRoom(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	user, err := store.Users().Create(ctx, &domain.User{Username: "talker"})
	require.NoError(t, err)

	details, err := service.Send(ctx, 1, user.ID, "gl hf", "")
	require.NoError(t, err)
	assert.Equal(t, "gl hf", details.Message.Message)
	assert.Equal(t, "talker", details.User.Username)

	messages, err := service.Messages(ctx, 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	_, err = service.Send(ctx, 99, user.ID, "hello", "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestTeamRoomRequiresMembership(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	leader, err := store.Users().Create(ctx, &domain.User{Username: "leader"})
	require.NoError(t, err)
	outsider, err := store.Users().Create(ctx, &domain.User{Username: "outsider"})
	require.NoError(t, err)

	team, err := store.Teams().Create(ctx, &domain.Team{Name: "Night Raiders", LeaderID: leader.ID, MaxMembers: 4})
	require.NoError(t, err)
	_, err = store.Teams().AddMember(ctx, &domain.TeamMember{TeamID: team.ID, UserID: leader.ID, Role: domain.RoleLeader})
	require.NoError(t, err)

	room, err := store.Chat().CreateRoom(ctx, &domain.ChatRoom{Name: team.Name, Type: domain.RoomTeam, RelatedID: &team.ID})
	require.NoError(t, err)

	_, err = service.Send(ctx, room.ID, leader.ID, "squad up", "")
	assert.NoError(t, err)

	_, err = service.Send(ctx, room.ID, outsider.ID, "let me in", "")
	assert.ErrorIs(t, err, ErrNotTeamMember)
}

func TestMessagePagination(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	user, err := store.Users().Create(ctx, &domain.User{Username: "talker"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := service.Send(ctx, 1, user.ID, "msg", "")
		require.NoError(t, err)
	}

	page, err := service.Messages(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := service.Messages(ctx, 1, 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
