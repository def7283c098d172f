package teams

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/teamservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	List(ctx context.Context) ([]domain.Team, error)
	Get(ctx context.Context, id int) (*domain.Team, error)
	Members(ctx context.Context, teamID int) ([]domain.TeamMember, error)
	Create(ctx context.Context, userID int, team *domain.Team) (*domain.Team, error)
	Join(ctx context.Context, teamID, userID int) (*domain.TeamMember, error)
	Leave(ctx context.Context, teamID, userID int) error
	Update(ctx context.Context, teamID, userID int, params teamservice.UpdateParams) (*domain.Team, error)
	ChangeRole(ctx context.Context, teamID, targetUserID, actorID int, role string) (*domain.TeamMember, error)
	Invite(ctx context.Context, teamID, actorID int, username string) (*domain.TeamInvite, error)
	Invites(ctx context.Context, userID int) ([]teamservice.InviteDetails, error)
	Respond(ctx context.Context, inviteID, userID int, accept bool) (*domain.TeamMember, error)
}

type TeamHandler struct {
	teamService Service
}

func New(teamService Service) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

func toTeamDTO(t domain.Team) dto.TeamDTO {
	return dto.TeamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Tag:         t.Tag,
		Description: t.Description,
		Logo:        t.Logo,
		LeaderID:    t.LeaderID,
		MaxMembers:  t.MaxMembers,
		CreatedAt:   t.CreatedAt,
	}
}

func toMemberDTO(m domain.TeamMember) dto.TeamMemberDTO {
	return dto.TeamMemberDTO{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func teamID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func respondTeamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, teamservice.ErrTeamNotFound),
		errors.Is(err, teamservice.ErrUserNotFound),
		errors.Is(err, teamservice.ErrMemberNotFound),
		errors.Is(err, teamservice.ErrInviteNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, teamservice.ErrNotLeader),
		errors.Is(err, teamservice.ErrNotOfficer),
		errors.Is(err, teamservice.ErrNotYourInvite):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, teamservice.ErrAlreadyInTeam),
		errors.Is(err, teamservice.ErrAlreadyInvited),
		errors.Is(err, teamservice.ErrTeamFull):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, teamservice.ErrNotInTeam),
		errors.Is(err, teamservice.ErrSelfRole),
		errors.Is(err, teamservice.ErrInvalidRole),
		errors.Is(err, teamservice.ErrInviteExpired):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// List godoc
//
//	@Summary	List teams
//	@Tags		Teams
//	@Produce	json
//	@Success	200	{array}		dto.TeamDTO
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/teams [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.TeamDTO, len(teams))
	for i, t := range teams {
		response[i] = toTeamDTO(t)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary	Get team
//	@Tags		Teams
//	@Produce	json
//	@Param		id	path		int	true	"Team ID"
//	@Success	200	{object}	dto.TeamDTO
//	@Failure	404	{object}	utils.Response	"Team not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/teams/{id} [get]
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	team, err := h.teamService.Get(r.Context(), id)
	if err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTeamDTO(*team))
}

// Members godoc
//
//	@Summary	List team members
//	@Tags		Teams
//	@Produce	json
//	@Param		id	path		int	true	"Team ID"
//	@Success	200	{array}		dto.TeamMemberDTO
//	@Failure	404	{object}	utils.Response	"Team not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/teams/{id}/members [get]
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	members, err := h.teamService.Members(r.Context(), id)
	if err != nil {
		respondTeamError(w, err)
		return
	}
	response := make([]dto.TeamMemberDTO, len(members))
	for i, m := range members {
		response[i] = toMemberDTO(m)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Create godoc
//
//	@Summary		Create team
//	@Description	Found a team with the caller as leader. One team per user.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTeamRequestDTO	true	"Team definition"
//	@Success		201		{object}	dto.TeamDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		409		{object}	utils.Response	"Already in a team"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/teams [post]
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateTeamRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Name) < 3 || len(req.Name) > 30 {
		utils.RespondWithError(w, http.StatusBadRequest, "Team name must be between 3 and 30 characters")
		return
	}
	if len(req.Tag) > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Team tag must be at most 5 characters")
		return
	}

	team, err := h.teamService.Create(r.Context(), userID, &domain.Team{
		Name:        req.Name,
		Tag:         req.Tag,
		Description: req.Description,
		Logo:        req.Logo,
		MaxMembers:  req.MaxMembers,
	})
	if err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toTeamDTO(*team))
}

// Update godoc
//
//	@Summary	Update team profile
//	@Tags		Teams
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Team ID"
//	@Param		request	body		dto.UpdateTeamRequestDTO	true	"Fields to change"
//	@Success	200		{object}	dto.TeamDTO
//	@Failure	401		{object}	utils.Response	"User not authorized"
//	@Failure	403		{object}	utils.Response	"Not the team leader"
//	@Failure	404		{object}	utils.Response	"Team not found"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/teams/{id} [patch]
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req dto.UpdateTeamRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := h.teamService.Update(r.Context(), id, userID, teamservice.UpdateParams{
		Name:        req.Name,
		Tag:         req.Tag,
		Description: req.Description,
		Logo:        req.Logo,
	})
	if err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTeamDTO(*team))
}

// Join godoc
//
//	@Summary	Join team
//	@Tags		Teams
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Team ID"
//	@Success	200	{object}	dto.TeamMemberDTO
//	@Failure	400	{object}	utils.Response	"Invalid team ID"
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	404	{object}	utils.Response	"Team not found"
//	@Failure	409	{object}	utils.Response	"Already in a team or team full"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/teams/{id}/join [post]
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	member, err := h.teamService.Join(r.Context(), id, userID)
	if err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toMemberDTO(*member))
}

// Leave godoc
//
//	@Summary		Leave team
//	@Description	A departing leader hands the team to the longest-serving co-leader; without one the team disbands.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Team ID"
//	@Success		200	{object}	dto.MessageResponseDTO
//	@Failure		400	{object}	utils.Response	"Not a member"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Team not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/teams/{id}/leave [post]
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	if err := h.teamService.Leave(r.Context(), id, userID); err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Left the team"})
}

// ChangeRole godoc
//
//	@Summary		Change a member's role
//	@Description	Leader only. Promoting a member to leader demotes the current leader to co-leader.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Team ID"
//	@Param			userId	path		int						true	"Target user ID"
//	@Param			request	body		dto.ChangeRoleRequestDTO	true	"New role"
//	@Success		200		{object}	dto.TeamMemberDTO
//	@Failure		400		{object}	utils.Response	"Invalid role"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not the team leader"
//	@Failure		404		{object}	utils.Response	"Member not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/teams/{id}/members/{userId}/role [patch]
func (h *TeamHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actorID := r.Context().Value(auth.UserIDKey).(int)

	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}
	targetID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req dto.ChangeRoleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.teamService.ChangeRole(r.Context(), id, targetID, actorID, req.Role)
	if err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toMemberDTO(*member))
}

// Invite godoc
//
//	@Summary		Invite a user to the team
//	@Description	Leader or co-leader only. The invite expires after seven days.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Team ID"
//	@Param			request	body		dto.InviteUserRequestDTO	true	"Username to invite"
//	@Success		201		{object}	dto.TeamInviteDTO
//	@Failure		400		{object}	utils.Response	"Team full"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not a leader or co-leader"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		409		{object}	utils.Response	"Already invited or already in a team"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/teams/{id}/invites [post]
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	actorID := r.Context().Value(auth.UserIDKey).(int)

	id, err := teamID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req dto.InviteUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username is required")
		return
	}

	invite, err := h.teamService.Invite(r.Context(), id, actorID, req.Username)
	if err != nil {
		respondTeamError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.TeamInviteDTO{
		ID:        invite.ID,
		TeamID:    invite.TeamID,
		UserID:    invite.UserID,
		InvitedBy: invite.InvitedBy,
		Status:    invite.Status,
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	})
}

// Invites godoc
//
//	@Summary	List own pending invites
//	@Tags		Teams
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.TeamInviteDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/teams/invites [get]
func (h *TeamHandler) Invites(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	invites, err := h.teamService.Invites(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.TeamInviteDTO, len(invites))
	for i, details := range invites {
		inv := details.Invite
		response[i] = dto.TeamInviteDTO{
			ID:        inv.ID,
			TeamID:    inv.TeamID,
			UserID:    inv.UserID,
			InvitedBy: inv.InvitedBy,
			Status:    inv.Status,
			ExpiresAt: inv.ExpiresAt,
			CreatedAt: inv.CreatedAt,
		}
		if details.Team != nil {
			team := toTeamDTO(*details.Team)
			response[i].Team = &team
		}
		if details.Inviter != nil {
			response[i].Inviter = &dto.UserSummaryDTO{
				ID:       details.Inviter.ID,
				Username: details.Inviter.Username,
				Avatar:   details.Inviter.Avatar,
			}
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Respond godoc
//
//	@Summary	Accept or decline an invite
//	@Tags		Teams
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Invite ID"
//	@Param		request	body		dto.RespondInviteRequestDTO	true	"Accept or decline"
//	@Success	200		{object}	dto.MessageResponseDTO
//	@Failure	400		{object}	utils.Response	"Invite expired or team full"
//	@Failure	401		{object}	utils.Response	"User not authorized"
//	@Failure	403		{object}	utils.Response	"Invite belongs to another user"
//	@Failure	404		{object}	utils.Response	"Invite not found"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/teams/invites/{id} [post]
func (h *TeamHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	inviteID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invite ID")
		return
	}

	var req dto.RespondInviteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.teamService.Respond(r.Context(), inviteID, userID, req.Accept); err != nil {
		respondTeamError(w, err)
		return
	}
	message := "Invite declined"
	if req.Accept {
		message = "Invite accepted"
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: message})
}
