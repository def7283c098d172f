package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
)

type ChatRepo struct{ s *Store }

func (s *Store) Chat() *ChatRepo { return &ChatRepo{s: s} }

func (r *ChatRepo) ListRooms(_ context.Context) ([]domain.ChatRoom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rooms := make([]domain.ChatRoom, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		rooms = append(rooms, *room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r *ChatRepo) FindRoom(_ context.Context, id int) (*domain.ChatRoom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if room, ok := r.s.rooms[id]; ok {
		c := *room
		return &c, nil
	}
	return nil, nil
}

func (r *ChatRepo) CreateRoom(_ context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room.ID = r.s.next("room")
	room.CreatedAt = time.Now()
	c := *room
	r.s.rooms[room.ID] = &c
	return room, nil
}

func (r *ChatRepo) ListMessages(_ context.Context, roomID, limit, offset int) ([]domain.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var messages []domain.ChatMessage
	for _, msg := range r.s.messages {
		if msg.RoomID == roomID {
			messages = append(messages, *msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	if offset >= len(messages) {
		return nil, nil
	}
	messages = messages[offset:]
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (r *ChatRepo) CreateMessage(_ context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg.ID = r.s.next("message")
	msg.CreatedAt = time.Now()
	c := *msg
	r.s.messages[msg.ID] = &c
	return msg, nil
}

type MarketRepo struct{ s *Store }

func (s *Store) Market() *MarketRepo { return &MarketRepo{s: s} }

func (r *MarketRepo) List(_ context.Context) ([]domain.MarketplaceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]domain.MarketplaceItem, 0, len(r.s.items))
	for _, item := range r.s.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *MarketRepo) FindByID(_ context.Context, id int) (*domain.MarketplaceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if item, ok := r.s.items[id]; ok {
		c := *item
		return &c, nil
	}
	return nil, nil
}

func (r *MarketRepo) Create(_ context.Context, item *domain.MarketplaceItem) (*domain.MarketplaceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.next("item")
	item.CreatedAt = time.Now()
	c := *item
	r.s.items[item.ID] = &c
	return item, nil
}
