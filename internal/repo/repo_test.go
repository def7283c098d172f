package repo

import (
	"testing"

	chatrepo "github.com/firestorm-arena/firestorm/internal/repo/chat-repo"
	leaderboardrepo "github.com/firestorm-arena/firestorm/internal/repo/leaderboard-repo"
	marketrepo "github.com/firestorm-arena/firestorm/internal/repo/market-repo"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	referralrepo "github.com/firestorm-arena/firestorm/internal/repo/referral-repo"
	teamrepo "github.com/firestorm-arena/firestorm/internal/repo/team-repo"
	tournamentrepo "github.com/firestorm-arena/firestorm/internal/repo/tournament-repo"
	transactionrepo "github.com/firestorm-arena/firestorm/internal/repo/transaction-repo"
	userrepo "github.com/firestorm-arena/firestorm/internal/repo/user-repo"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repo := New(mockDB)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &tournamentrepo.Repository{}, repo.TournamentRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &leaderboardrepo.Repository{}, repo.LeaderboardRepo)
	assert.IsType(t, &referralrepo.Repository{}, repo.ReferralRepo)
	assert.IsType(t, &teamrepo.Repository{}, repo.TeamRepo)
	assert.IsType(t, &chatrepo.Repository{}, repo.ChatRepo)
	assert.IsType(t, &marketrepo.Repository{}, repo.MarketRepo)

	if err := mockDB.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}

func TestNewMemory(t *testing.T) {
	repo := NewMemory(memstore.New())

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.TournamentRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.LeaderboardRepo)
	assert.NotNil(t, repo.ReferralRepo)
	assert.NotNil(t, repo.TeamRepo)
	assert.NotNil(t, repo.ChatRepo)
	assert.NotNil(t, repo.MarketRepo)
}
