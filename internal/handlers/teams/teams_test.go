package teams

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/firestorm-arena/firestorm/internal/service/teamservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*TeamHandler, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	service := teamservice.New(store.Teams(), store.Users(), store.Chat(), store.TxManager())
	return New(service), store
}

func joinRequest(teamID, userID int) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/teams/"+strconv.Itoa(teamID)+"/join", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", strconv.Itoa(teamID))
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, auth.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestJoinHandler(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()

	leader, err := store.Users().Create(ctx, &domain.User{Username: "leader"})
	require.NoError(t, err)
	second, err := store.Users().Create(ctx, &domain.User{Username: "second"})
	require.NoError(t, err)
	third, err := store.Users().Create(ctx, &domain.User{Username: "third"})
	require.NoError(t, err)

	service := teamservice.New(store.Teams(), store.Users(), store.Chat(), store.TxManager())
	team, err := service.Create(ctx, leader.ID, &domain.Team{Name: "Duo Squad", MaxMembers: 2})
	require.NoError(t, err)

	t.Run("joins a team with a free slot", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Join(w, joinRequest(team.ID, second.ID))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("full team conflicts", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Join(w, joinRequest(team.ID, third.ID))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "team is full")
	})

	t.Run("joining twice conflicts", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Join(w, joinRequest(team.ID, second.ID))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown team is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Join(w, joinRequest(99, third.ID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/teams/abc/join", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "abc")
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
		ctx = context.WithValue(ctx, auth.UserIDKey, third.ID)
		w := httptest.NewRecorder()

		handler.Join(w, r.WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
