package handlers

import (
	"net/http"

	_ "github.com/firestorm-arena/firestorm/docs"
	"github.com/firestorm-arena/firestorm/internal/config"
	authhandlers "github.com/firestorm-arena/firestorm/internal/handlers/auth"
	chathandlers "github.com/firestorm-arena/firestorm/internal/handlers/chat"
	leaderboardhandlers "github.com/firestorm-arena/firestorm/internal/handlers/leaderboard"
	marketplacehandlers "github.com/firestorm-arena/firestorm/internal/handlers/marketplace"
	referralhandlers "github.com/firestorm-arena/firestorm/internal/handlers/referrals"
	teamhandlers "github.com/firestorm-arena/firestorm/internal/handlers/teams"
	tournamenthandlers "github.com/firestorm-arena/firestorm/internal/handlers/tournaments"
	wallethandlers "github.com/firestorm-arena/firestorm/internal/handlers/wallet"
	"github.com/firestorm-arena/firestorm/internal/metrics"
	"github.com/firestorm-arena/firestorm/internal/service"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetWallet(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
}

type TournamentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Participants(w http.ResponseWriter, r *http.Request)
	Join(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
}

type LeaderboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type TeamHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Members(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Join(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
	Invite(w http.ResponseWriter, r *http.Request)
	Invites(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
}

type ChatHandler interface {
	Rooms(w http.ResponseWriter, r *http.Request)
	Messages(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
}

type MarketplaceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	WalletHandler      WalletHandler
	TournamentHandler  TournamentHandler
	ReferralHandler    ReferralHandler
	LeaderboardHandler LeaderboardHandler
	TeamHandler        TeamHandler
	ChatHandler        ChatHandler
	MarketplaceHandler MarketplaceHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		WalletHandler:      wallethandlers.New(s.WalletService),
		TournamentHandler:  tournamenthandlers.New(s.TournamentService),
		ReferralHandler:    referralhandlers.New(s.ReferralService),
		LeaderboardHandler: leaderboardhandlers.New(s.LeaderboardService),
		TeamHandler:        teamhandlers.New(s.TeamService),
		ChatHandler:        chathandlers.New(s.ChatService),
		MarketplaceHandler: marketplacehandlers.New(s.MarketplaceService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router, cfg *config.Config) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
		cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.AuthHandler.Register)
		r.Post("/auth/login", h.AuthHandler.Login)

		r.Get("/stats", h.TournamentHandler.Stats)
		r.Get("/leaderboard", h.LeaderboardHandler.Get)
		r.Get("/leaderboard/{period}", h.LeaderboardHandler.Get)

		r.Get("/tournaments", h.TournamentHandler.List)
		r.Get("/tournaments/{id}", h.TournamentHandler.Get)
		r.Get("/tournaments/{id}/participants", h.TournamentHandler.Participants)

		r.Get("/teams", h.TeamHandler.List)

		r.Get("/marketplace", h.MarketplaceHandler.List)
		r.Get("/marketplace/{id}", h.MarketplaceHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", h.WalletHandler.GetWallet)
				r.Post("/deposit", h.WalletHandler.Deposit)
				r.Post("/withdraw", h.WalletHandler.Withdraw)
			})

			r.Post("/tournaments", h.TournamentHandler.Create)
			r.Post("/tournaments/{id}/join", h.TournamentHandler.Join)
			r.Post("/tournaments/{id}/withdraw", h.TournamentHandler.Withdraw)

			r.Route("/referrals", func(r chi.Router) {
				r.Get("/", h.ReferralHandler.Get)
				r.Post("/apply", h.ReferralHandler.Apply)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Post("/", h.TeamHandler.Create)
				r.Get("/invites", h.TeamHandler.Invites)
				r.Post("/invites/{id}", h.TeamHandler.Respond)
				r.Get("/{id}", h.TeamHandler.Get)
				r.Patch("/{id}", h.TeamHandler.Update)
				r.Get("/{id}/members", h.TeamHandler.Members)
				r.Post("/{id}/join", h.TeamHandler.Join)
				r.Post("/{id}/leave", h.TeamHandler.Leave)
				r.Patch("/{id}/members/{userId}/role", h.TeamHandler.ChangeRole)
				r.Post("/{id}/invites", h.TeamHandler.Invite)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Get("/rooms", h.ChatHandler.Rooms)
				r.Get("/rooms/{id}/messages", h.ChatHandler.Messages)
				r.Post("/rooms/{id}/messages", h.ChatHandler.Send)
			})

			r.Post("/marketplace", h.MarketplaceHandler.Create)
		})
	})

	return r
}
