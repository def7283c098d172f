package repo

import (
	"context"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	chatrepo "github.com/firestorm-arena/firestorm/internal/repo/chat-repo"
	leaderboardrepo "github.com/firestorm-arena/firestorm/internal/repo/leaderboard-repo"
	marketrepo "github.com/firestorm-arena/firestorm/internal/repo/market-repo"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	referralrepo "github.com/firestorm-arena/firestorm/internal/repo/referral-repo"
	teamrepo "github.com/firestorm-arena/firestorm/internal/repo/team-repo"
	tournamentrepo "github.com/firestorm-arena/firestorm/internal/repo/tournament-repo"
	transactionrepo "github.com/firestorm-arena/firestorm/internal/repo/transaction-repo"
	userrepo "github.com/firestorm-arena/firestorm/internal/repo/user-repo"
	"github.com/firestorm-arena/firestorm/internal/service/leaderboardservice"
	"github.com/firestorm-arena/firestorm/internal/service/marketservice"
	"github.com/firestorm-arena/firestorm/internal/service/referralservice"
	"github.com/firestorm-arena/firestorm/internal/service/teamservice"
	"github.com/firestorm-arena/firestorm/internal/service/tournamentservice"
)

// The combined repository interfaces union every method a service asks of the
// same store, so one concrete repository can back them all.
type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ApplyBalanceDelta(ctx context.Context, userID int, delta float64) (float64, error)
	SetReferredBy(ctx context.Context, userID, referrerID int) error
	SetTeam(ctx context.Context, userID int, teamID *int) error
	Count(ctx context.Context) (int, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error)
	FindPendingWithdrawals(ctx context.Context, limit uint32) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	SumByTypeBetween(ctx context.Context, txType string, from, to time.Time) (float64, error)
}

type ChatRepository interface {
	ListRooms(ctx context.Context) ([]domain.ChatRoom, error)
	FindRoom(ctx context.Context, id int) (*domain.ChatRoom, error)
	CreateRoom(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error)
	ListMessages(ctx context.Context, roomID, limit, offset int) ([]domain.ChatMessage, error)
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error)
}

type Repositories struct {
	UserRepo        UserRepository
	TournamentRepo  tournamentservice.TournamentRepo
	TransactionRepo TransactionRepository
	LeaderboardRepo leaderboardservice.Repo
	ReferralRepo    referralservice.ReferralRepo
	TeamRepo        teamservice.TeamRepo
	ChatRepo        ChatRepository
	MarketRepo      marketservice.Repo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		TournamentRepo:  tournamentrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		LeaderboardRepo: leaderboardrepo.New(conn),
		ReferralRepo:    referralrepo.New(conn),
		TeamRepo:        teamrepo.New(conn),
		ChatRepo:        chatrepo.New(conn),
		MarketRepo:      marketrepo.New(conn),
	}
}

// NewMemory backs every repository with the same in-memory store.
func NewMemory(store *memstore.Store) *Repositories {
	return &Repositories{
		UserRepo:        store.Users(),
		TournamentRepo:  store.Tournaments(),
		TransactionRepo: store.Transactions(),
		LeaderboardRepo: store.Leaderboard(),
		ReferralRepo:    store.Referrals(),
		TeamRepo:        store.Teams(),
		ChatRepo:        store.Chat(),
		MarketRepo:      store.Market(),
	}
}
