package service

import (
	"github.com/firestorm-arena/firestorm/internal/handlers/auth"
	"github.com/firestorm-arena/firestorm/internal/handlers/chat"
	"github.com/firestorm-arena/firestorm/internal/handlers/leaderboard"
	"github.com/firestorm-arena/firestorm/internal/handlers/marketplace"
	"github.com/firestorm-arena/firestorm/internal/handlers/referrals"
	"github.com/firestorm-arena/firestorm/internal/handlers/teams"
	"github.com/firestorm-arena/firestorm/internal/handlers/tournaments"

	pkgauth "github.com/firestorm-arena/firestorm/pkg/auth"

	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/firestorm-arena/firestorm/internal/repo"
	"github.com/firestorm-arena/firestorm/internal/service/authservice"
	"github.com/firestorm-arena/firestorm/internal/service/chatservice"
	"github.com/firestorm-arena/firestorm/internal/service/leaderboardservice"
	"github.com/firestorm-arena/firestorm/internal/service/marketservice"
	"github.com/firestorm-arena/firestorm/internal/service/referralservice"
	"github.com/firestorm-arena/firestorm/internal/service/teamservice"
	"github.com/firestorm-arena/firestorm/internal/service/tournamentservice"
	"github.com/firestorm-arena/firestorm/internal/service/walletservice"
)

type Services struct {
	AuthService        auth.Service
	WalletService      *walletservice.Service
	TournamentService  tournaments.Service
	ReferralService    referrals.Service
	LeaderboardService leaderboard.Service
	TeamService        teams.Service
	ChatService        chat.Service
	MarketplaceService marketplace.Service
}

func New(repo *repo.Repositories, txm pg.TXManager) *Services {
	walletService := walletservice.New(repo.TransactionRepo, repo.UserRepo, txm)
	tournamentService := tournamentservice.New(repo.TournamentRepo, repo.UserRepo, repo.TransactionRepo, repo.ChatRepo, walletService, txm)
	referralService := referralservice.New(repo.UserRepo, repo.ReferralRepo, walletService, txm)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	leaderboardService := leaderboardservice.New(repo.LeaderboardRepo, repo.UserRepo)
	teamService := teamservice.New(repo.TeamRepo, repo.UserRepo, repo.ChatRepo, txm)
	chatService := chatservice.New(repo.ChatRepo, repo.UserRepo, repo.TeamRepo, repo.TournamentRepo)
	marketService := marketservice.New(repo.MarketRepo, repo.UserRepo)

	return &Services{
		AuthService:        authService,
		WalletService:      walletService,
		TournamentService:  tournamentService,
		ReferralService:    referralService,
		LeaderboardService: leaderboardService,
		TeamService:        teamService,
		ChatService:        chatService,
		MarketplaceService: marketService,
	}
}
