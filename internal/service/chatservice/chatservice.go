package chatservice

import (
	"context"
	"errors"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	ListRooms(ctx context.Context) ([]domain.ChatRoom, error)
	FindRoom(ctx context.Context, id int) (*domain.ChatRoom, error)
	ListMessages(ctx context.Context, roomID, limit, offset int) ([]domain.ChatMessage, error)
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type TeamRepo interface {
	FindMember(ctx context.Context, teamID, userID int) (*domain.TeamMember, error)
}

type TournamentRepo interface {
	FindParticipant(ctx context.Context, tournamentID, userID int) (*domain.TournamentParticipant, error)
}

var (
	ErrRoomNotFound   = errors.New("chat room not found")
	ErrNotTeamMember  = errors.New("not a member of this team")
	ErrNotParticipant = errors.New("not a participant of this tournament")
)

const defaultMessageLimit = 50

type MessageDetails struct {
	Message domain.ChatMessage
	User    *domain.User
}

type Service struct {
	chatRepo       Repo
	userRepo       UserRepo
	teamRepo       TeamRepo
	tournamentRepo TournamentRepo
}

func New(chatRepo Repo, userRepo UserRepo, teamRepo TeamRepo, tournamentRepo TournamentRepo) *Service {
	return &Service{
		chatRepo:       chatRepo,
		userRepo:       userRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *Service) Rooms(ctx context.Context) ([]domain.ChatRoom, error) {
	return s.chatRepo.ListRooms(ctx)
}

func (s *Service) Messages(ctx context.Context, roomID, limit, offset int) ([]MessageDetails, error) {
	room, err := s.chatRepo.FindRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}
	messages, err := s.chatRepo.ListMessages(ctx, roomID, limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]MessageDetails, 0, len(messages))
	for _, msg := range messages {
		user, err := s.userRepo.FindByID(ctx, msg.UserID)
		if err != nil {
			return nil, err
		}
		details = append(details, MessageDetails{Message: msg, User: user})
	}
	return details, nil
}

// Send posts a message after checking the room's access rule: team rooms
// require membership, tournament rooms require registration.
func (s *Service) Send(ctx context.Context, roomID, userID int, message, attachment string) (*MessageDetails, error) {
	room, err := s.chatRepo.FindRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	switch room.Type {
	case domain.RoomTeam:
		if room.RelatedID != nil {
			member, err := s.teamRepo.FindMember(ctx, *room.RelatedID, userID)
			if err != nil {
				return nil, err
			}
			if member == nil {
				return nil, ErrNotTeamMember
			}
		}
	case domain.RoomTournament:
		if room.RelatedID != nil {
			participant, err := s.tournamentRepo.FindParticipant(ctx, *room.RelatedID, userID)
			if err != nil {
				return nil, err
			}
			if participant == nil {
				return nil, ErrNotParticipant
			}
		}
	}

	msg, err := s.chatRepo.CreateMessage(ctx, &domain.ChatMessage{
		RoomID:     roomID,
		UserID:     userID,
		Message:    message,
		Attachment: attachment,
	})
	if err != nil {
		zap.L().Error("failed to send message", zap.Error(err), zap.Int("roomID", roomID))
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MessageDetails{Message: *msg, User: user}, nil
}
