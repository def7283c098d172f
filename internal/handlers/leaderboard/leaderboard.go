package leaderboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/leaderboardservice"
	"github.com/firestorm-arena/firestorm/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Get(ctx context.Context, period string) ([]leaderboardservice.RankedEntry, error)
}

type LeaderboardHandler struct {
	leaderboardService Service
}

func New(leaderboardService Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

type rankedEntryDTO struct {
	Rank int             `json:"rank"`
	User *dto.UserSummaryDTO `json:"user,omitempty"`
	dto.LeaderboardEntryDTO
}

// Get godoc
//
//	@Summary		Get leaderboard
//	@Description	Ranked entries for a period, ordered by kills then wins. Defaults to weekly when no period is given.
//	@Tags			Leaderboard
//	@Produce		json
//	@Param			period	path		string	true	"Leaderboard period"	Enums(daily, weekly, monthly, all-time)
//	@Success		200		{array}		dto.LeaderboardEntryDTO
//	@Failure		400		{object}	utils.Response	"Invalid period"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/leaderboard/{period} [get]
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")
	if period == "" {
		period = leaderboardservice.PeriodWeekly
	}

	entries, err := h.leaderboardService.Get(r.Context(), period)
	if err != nil {
		if errors.Is(err, leaderboardservice.ErrInvalidPeriod) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]rankedEntryDTO, len(entries))
	for i, ranked := range entries {
		response[i] = rankedEntryDTO{
			Rank: ranked.Rank,
			LeaderboardEntryDTO: dto.LeaderboardEntryDTO{
				UserID:          ranked.Entry.UserID,
				Kills:           ranked.Entry.Kills,
				Wins:            ranked.Entry.Wins,
				Earnings:        ranked.Entry.Earnings,
				TournamentCount: ranked.Entry.TournamentCount,
				Period:          ranked.Entry.Period,
				UpdatedAt:       ranked.Entry.UpdatedAt,
			},
		}
		if ranked.User != nil {
			response[i].User = &dto.UserSummaryDTO{
				ID:       ranked.User.ID,
				Username: ranked.User.Username,
				Avatar:   ranked.User.Avatar,
			}
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
