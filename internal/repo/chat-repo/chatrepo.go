package chatrepo

import (
	"context"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) ListRooms(ctx context.Context) ([]domain.ChatRoom, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, type, related_id, created_at FROM chat_rooms ORDER BY id`)
	if err != nil {
		zap.L().Error("can't list chat rooms", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.ChatRoom
	for rows.Next() {
		var room domain.ChatRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.Type, &room.RelatedID, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *Repository) FindRoom(ctx context.Context, id int) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.db.QueryRow(ctx,
		`SELECT id, name, type, related_id, created_at FROM chat_rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Name, &room.Type, &room.RelatedID, &room.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find chat room", zap.Error(err))
		return nil, err
	}
	return &room, nil
}

func (r *Repository) CreateRoom(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error) {
	query := `
		INSERT INTO chat_rooms (name, type, related_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, room.Name, room.Type, room.RelatedID).
		Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		zap.L().Error("can't create chat room", zap.Error(err))
		return nil, err
	}
	return room, nil
}

func (r *Repository) ListMessages(ctx context.Context, roomID, limit, offset int) ([]domain.ChatMessage, error) {
	query := `
		SELECT id, room_id, user_id, message, attachment, created_at
		FROM chat_messages
		WHERE room_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		zap.L().Error("can't list chat messages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.UserID, &msg.Message,
			&msg.Attachment, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *Repository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (room_id, user_id, message, attachment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, msg.RoomID, msg.UserID, msg.Message, msg.Attachment).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		zap.L().Error("can't create chat message", zap.Error(err))
		return nil, err
	}
	return msg, nil
}
