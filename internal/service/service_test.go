package service

import (
	"testing"

	"github.com/firestorm-arena/firestorm/internal/repo"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	store := memstore.New()
	services := New(repo.NewMemory(store), store.TxManager())

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.WalletService)
	assert.NotNil(t, services.TournamentService)
	assert.NotNil(t, services.ReferralService)
	assert.NotNil(t, services.LeaderboardService)
	assert.NotNil(t, services.TeamService)
	assert.NotNil(t, services.ChatService)
	assert.NotNil(t, services.MarketplaceService)
}
