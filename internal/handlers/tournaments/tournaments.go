package tournaments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/tournamentservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	List(ctx context.Context) ([]domain.Tournament, error)
	Get(ctx context.Context, id int) (*domain.Tournament, error)
	Create(ctx context.Context, t *domain.Tournament) (*domain.Tournament, error)
	Participants(ctx context.Context, tournamentID int) ([]domain.TournamentParticipant, error)
	Join(ctx context.Context, tournamentID, userID int) (*domain.TournamentParticipant, error)
	Withdraw(ctx context.Context, tournamentID, userID int) error
	PlatformStats(ctx context.Context) (*tournamentservice.Stats, error)
}

type TournamentHandler struct {
	tournamentService Service
}

func New(tournamentService Service) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

func toTournamentDTO(t domain.Tournament) dto.TournamentDTO {
	return dto.TournamentDTO{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		StartTime:     t.StartTime,
		EntryFee:      t.EntryFee,
		PrizePool:     t.PrizePool,
		PerKillReward: t.PerKillReward,
		MaxPlayers:    t.MaxPlayers,
		Mode:          t.Mode,
		Map:           t.Map,
		Status:        t.Status,
		Rules:         t.Rules,
		Image:         t.Image,
		RoomID:        t.RoomID,
		RoomPassword:  t.RoomPassword,
		CreatedAt:     t.CreatedAt,
	}
}

func toParticipantDTO(p domain.TournamentParticipant) dto.ParticipantDTO {
	return dto.ParticipantDTO{
		ID:           p.ID,
		TournamentID: p.TournamentID,
		UserID:       p.UserID,
		TeamID:       p.TeamID,
		Kills:        p.Kills,
		Rank:         p.Rank,
		Status:       p.Status,
		JoinedAt:     p.JoinedAt,
	}
}

func tournamentID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// List godoc
//
//	@Summary		List tournaments
//	@Description	All tournaments ordered by start time.
//	@Tags			Tournaments
//	@Produce		json
//	@Success		200	{array}		dto.TournamentDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.TournamentDTO, len(tournaments))
	for i, t := range tournaments {
		response[i] = toTournamentDTO(t)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get tournament
//	@Tags			Tournaments
//	@Produce		json
//	@Param			id	path		int	true	"Tournament ID"
//	@Success		200	{object}	dto.TournamentDTO
//	@Failure		404	{object}	utils.Response	"Tournament not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tournaments/{id} [get]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tournament ID")
		return
	}
	t, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, tournamentservice.ErrTournamentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTournamentDTO(*t))
}

// Create godoc
//
//	@Summary		Create tournament
//	@Tags			Tournaments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTournamentRequestDTO	true	"Tournament definition"
//	@Success		201		{object}	dto.TournamentDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateTournamentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Map == "" || req.StartTime.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, map and start time are required")
		return
	}
	if req.MaxPlayers < 2 {
		utils.RespondWithError(w, http.StatusBadRequest, "Tournament needs at least two players")
		return
	}
	switch req.Mode {
	case "solo", "duo", "squad":
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Mode must be solo, duo or squad")
		return
	}

	t, err := h.tournamentService.Create(r.Context(), &domain.Tournament{
		Name:          req.Name,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EntryFee:      req.EntryFee,
		PrizePool:     req.PrizePool,
		PerKillReward: req.PerKillReward,
		MaxPlayers:    req.MaxPlayers,
		Mode:          req.Mode,
		Map:           req.Map,
		Rules:         req.Rules,
		Image:         req.Image,
		RoomID:        req.RoomID,
		RoomPassword:  req.RoomPassword,
		OrganizerID:   &userID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toTournamentDTO(*t))
}

// Participants godoc
//
//	@Summary		List tournament participants
//	@Tags			Tournaments
//	@Produce		json
//	@Param			id	path		int	true	"Tournament ID"
//	@Success		200	{array}		dto.ParticipantDTO
//	@Failure		404	{object}	utils.Response	"Tournament not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tournaments/{id}/participants [get]
func (h *TournamentHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tournament ID")
		return
	}
	participants, err := h.tournamentService.Participants(r.Context(), id)
	if err != nil {
		if errors.Is(err, tournamentservice.ErrTournamentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.ParticipantDTO, len(participants))
	for i, p := range participants {
		response[i] = toParticipantDTO(p)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Join godoc
//
//	@Summary		Join tournament
//	@Description	Register for a tournament. The entry fee is debited from the wallet in the same operation.
//	@Tags			Tournaments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Tournament ID"
//	@Success		200	{object}	dto.ParticipantDTO
//	@Failure		400	{object}	utils.Response	"Invalid tournament ID"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		404	{object}	utils.Response	"Tournament not found"
//	@Failure		409	{object}	utils.Response	"Already registered or tournament full"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tournaments/{id}/join [post]
func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := tournamentID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	participant, err := h.tournamentService.Join(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, tournamentservice.ErrTournamentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, tournamentservice.ErrAlreadyRegistered),
			errors.Is(err, tournamentservice.ErrTournamentFull):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, tournamentservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toParticipantDTO(*participant))
}

// Withdraw godoc
//
//	@Summary		Withdraw from tournament
//	@Description	Leave a tournament that has not started. The entry fee is refunded to the wallet.
//	@Tags			Tournaments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Tournament ID"
//	@Success		200	{object}	dto.MessageResponseDTO
//	@Failure		400	{object}	utils.Response	"Tournament already started"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Not registered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tournaments/{id}/withdraw [post]
func (h *TournamentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := tournamentID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	if err := h.tournamentService.Withdraw(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, tournamentservice.ErrTournamentNotFound),
			errors.Is(err, tournamentservice.ErrNotRegistered):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, tournamentservice.ErrAlreadyStarted):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{
		Message: "Successfully withdrew from tournament",
	})
}

// Stats godoc
//
//	@Summary		Platform statistics
//	@Description	Public landing-page numbers: registered players, total prize pool, tournaments today and yesterday's payouts.
//	@Tags			Tournaments
//	@Produce		json
//	@Success		200	{object}	dto.StatsResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/stats [get]
func (h *TournamentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tournamentService.PlatformStats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.StatsResponseDTO{
		TotalPrizePool:   stats.TotalPrizePool,
		ActivePlayers:    stats.TotalUsers,
		DailyTournaments: stats.TournamentsToday,
		YesterdayPayout:  stats.PaidOutYesterday,
	})
}
