package referrals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/referralservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/utils"
)

type Service interface {
	Apply(ctx context.Context, userID int, code string) (*domain.Referral, error)
	Get(ctx context.Context, userID int) (string, []domain.Referral, error)
}

type ReferralHandler struct {
	referralService Service
}

func New(referralService Service) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

func toReferralDTO(ref domain.Referral) dto.ReferralDTO {
	return dto.ReferralDTO{
		ID:         ref.ID,
		ReferrerID: ref.ReferrerID,
		ReferredID: ref.ReferredID,
		Status:     ref.Status,
		Reward:     ref.Reward,
		CreatedAt:  ref.CreatedAt,
	}
}

// Get godoc
//
//	@Summary		Get own referral code and referrals
//	@Tags			Referrals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReferralsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/referrals [get]
func (h *ReferralHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	code, referrals, err := h.referralService.Get(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := dto.ReferralsResponseDTO{
		ReferralCode: code,
		Referrals:    make([]dto.ReferralDTO, len(referrals)),
	}
	for i, ref := range referrals {
		response.Referrals[i] = toReferralDTO(ref)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Apply godoc
//
//	@Summary		Apply a referral code
//	@Description	Link the account to the code's owner and credit the reward to them. A code can be applied once per account.
//	@Tags			Referrals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ApplyReferralRequestDTO	true	"Referral code"
//	@Success		200		{object}	dto.ApplyReferralResponseDTO
//	@Failure		400		{object}	utils.Response	"Own code"
//	@Failure		409		{object}	utils.Response	"Code already applied"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Invalid referral code"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/referrals/apply [post]
func (h *ReferralHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.ApplyReferralRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ReferralCode == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Referral code is required")
		return
	}

	referral, err := h.referralService.Apply(r.Context(), userID, req.ReferralCode)
	if err != nil {
		switch {
		case errors.Is(err, referralservice.ErrInvalidCode):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, referralservice.ErrAlreadyApplied):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, referralservice.ErrSelfReferral):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ApplyReferralResponseDTO{
		Message:  "Referral code applied",
		Referral: toReferralDTO(*referral),
	})
}
