package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/chatservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Rooms(ctx context.Context) ([]domain.ChatRoom, error)
	Messages(ctx context.Context, roomID, limit, offset int) ([]chatservice.MessageDetails, error)
	Send(ctx context.Context, roomID, userID int, message, attachment string) (*chatservice.MessageDetails, error)
}

type ChatHandler struct {
	chatService Service
}

func New(chatService Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func toMessageDTO(details chatservice.MessageDetails) dto.ChatMessageDTO {
	msg := dto.ChatMessageDTO{
		ID:         details.Message.ID,
		RoomID:     details.Message.RoomID,
		UserID:     details.Message.UserID,
		Message:    details.Message.Message,
		Attachment: details.Message.Attachment,
		CreatedAt:  details.Message.CreatedAt,
	}
	if details.User != nil {
		msg.User = &dto.UserSummaryDTO{
			ID:       details.User.ID,
			Username: details.User.Username,
			Avatar:   details.User.Avatar,
		}
	}
	return msg
}

// Rooms godoc
//
//	@Summary	List chat rooms
//	@Tags		Chat
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.ChatRoomDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/chat/rooms [get]
func (h *ChatHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chatService.Rooms(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.ChatRoomDTO, len(rooms))
	for i, room := range rooms {
		response[i] = dto.ChatRoomDTO{
			ID:        room.ID,
			Name:      room.Name,
			Type:      room.Type,
			RelatedID: room.RelatedID,
			CreatedAt: room.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Messages godoc
//
//	@Summary		Get room messages
//	@Description	Messages newest first. Supports limit and offset query parameters.
//	@Tags			Chat
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		int	true	"Room ID"
//	@Param			limit	query		int	false	"Page size (default 50)"
//	@Param			offset	query		int	false	"Offset"
//	@Success		200		{array}		dto.ChatMessageDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Room not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/chat/rooms/{id}/messages [get]
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.chatService.Messages(r.Context(), roomID, limit, offset)
	if err != nil {
		if errors.Is(err, chatservice.ErrRoomNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.ChatMessageDTO, len(messages))
	for i, details := range messages {
		response[i] = toMessageDTO(details)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Send godoc
//
//	@Summary		Send a message
//	@Description	Post to a room. Team rooms require membership, tournament rooms require registration.
//	@Tags			Chat
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Room ID"
//	@Param			request	body		dto.SendMessageRequestDTO	true	"Message"
//	@Success		201		{object}	dto.ChatMessageDTO
//	@Failure		400		{object}	utils.Response	"Invalid message"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"No access to this room"
//	@Failure		404		{object}	utils.Response	"Room not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/chat/rooms/{id}/messages [post]
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	roomID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req dto.SendMessageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}
	if len(req.Message) > 500 {
		utils.RespondWithError(w, http.StatusBadRequest, "Message must be at most 500 characters")
		return
	}

	details, err := h.chatService.Send(r.Context(), roomID, userID, req.Message, req.Attachment)
	if err != nil {
		switch {
		case errors.Is(err, chatservice.ErrRoomNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, chatservice.ErrNotTeamMember),
			errors.Is(err, chatservice.ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toMessageDTO(*details))
}
