// Package memstore is the in-memory storage backend. It implements the same
// repository interfaces as the postgres packages with mutex-guarded maps, so
// the service can run without a database for local development and tests.
//
// Multi-step flows are serialized by the store-wide transaction manager; there
// is no rollback, matching the single-writer semantics of the original
// deployment this backend replaces.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users        map[int]*domain.User
	usersByCode  map[string]int
	tournaments  map[int]*domain.Tournament
	participants map[int]*domain.TournamentParticipant
	transactions map[int]*domain.Transaction
	leaderboard  map[int]*domain.LeaderboardEntry
	referrals    map[int]*domain.Referral
	teams        map[int]*domain.Team
	members      map[int]*domain.TeamMember
	invites      map[int]*domain.TeamInvite
	rooms        map[int]*domain.ChatRoom
	messages     map[int]*domain.ChatMessage
	items        map[int]*domain.MarketplaceItem

	nextID map[string]int
}

func New() *Store {
	s := &Store{
		users:        make(map[int]*domain.User),
		usersByCode:  make(map[string]int),
		tournaments:  make(map[int]*domain.Tournament),
		participants: make(map[int]*domain.TournamentParticipant),
		transactions: make(map[int]*domain.Transaction),
		leaderboard:  make(map[int]*domain.LeaderboardEntry),
		referrals:    make(map[int]*domain.Referral),
		teams:        make(map[int]*domain.Team),
		members:      make(map[int]*domain.TeamMember),
		invites:      make(map[int]*domain.TeamInvite),
		rooms:        make(map[int]*domain.ChatRoom),
		messages:     make(map[int]*domain.ChatMessage),
		items:        make(map[int]*domain.MarketplaceItem),
		nextID:       make(map[string]int),
	}
	// The one room every deployment has.
	room := &domain.ChatRoom{Name: "Global Lobby", Type: "global", CreatedAt: time.Now()}
	room.ID = s.next("room")
	s.rooms[room.ID] = room
	return s
}

func (s *Store) next(entity string) int {
	s.nextID[entity]++
	return s.nextID[entity]
}

// TxManager serializes multi-entity units against each other. Queries inside
// the callback still take the store lock per step.
type TxManager struct {
	store *Store
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func (m *TxManager) Begin(_ context.Context, fn func(ctx context.Context) error) error {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(context.Background())
}

// --- users ---

type UserRepo struct{ s *Store }

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *UserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByReferralCode(_ context.Context, code string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if id, ok := r.s.usersByCode[code]; ok {
		return cloneUser(r.s.users[id]), nil
	}
	return nil, nil
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.next("user")
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = cloneUser(user)
	// Codes are immutable after creation, so the index needs no upkeep.
	if user.ReferralCode != "" {
		r.s.usersByCode[user.ReferralCode] = user.ID
	}
	return user, nil
}

func (r *UserRepo) ApplyBalanceDelta(_ context.Context, userID int, delta float64) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return 0, ErrNotFound
	}
	u.Balance += delta
	return u.Balance, nil
}

func (r *UserRepo) SetReferredBy(_ context.Context, userID, referrerID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return ErrNotFound
	}
	ref := referrerID
	u.ReferredBy = &ref
	return nil
}

func (r *UserRepo) SetTeam(_ context.Context, userID int, teamID *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.TeamID = teamID
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

// --- tournaments and participants ---

type TournamentRepo struct{ s *Store }

func (s *Store) Tournaments() *TournamentRepo { return &TournamentRepo{s: s} }

func (r *TournamentRepo) List(_ context.Context) ([]domain.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tournaments := make([]domain.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		tournaments = append(tournaments, *t)
	}
	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].StartTime.Before(tournaments[j].StartTime)
	})
	return tournaments, nil
}

func (r *TournamentRepo) FindByID(_ context.Context, id int) (*domain.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.tournaments[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *TournamentRepo) Create(_ context.Context, t *domain.Tournament) (*domain.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.next("tournament")
	t.CreatedAt = time.Now()
	c := *t
	r.s.tournaments[t.ID] = &c
	return t, nil
}

func (r *TournamentRepo) Participants(_ context.Context, tournamentID int) ([]domain.TournamentParticipant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var participants []domain.TournamentParticipant
	for _, p := range r.s.participants {
		if p.TournamentID == tournamentID {
			participants = append(participants, *p)
		}
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})
	return participants, nil
}

func (r *TournamentRepo) FindParticipant(_ context.Context, tournamentID, userID int) (*domain.TournamentParticipant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.participants {
		if p.TournamentID == tournamentID && p.UserID == userID {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *TournamentRepo) CountParticipants(_ context.Context, tournamentID int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, p := range r.s.participants {
		if p.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (r *TournamentRepo) CreateParticipant(_ context.Context, p *domain.TournamentParticipant) (*domain.TournamentParticipant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.next("participant")
	p.JoinedAt = time.Now()
	c := *p
	r.s.participants[p.ID] = &c
	return p, nil
}

func (r *TournamentRepo) DeleteParticipant(_ context.Context, tournamentID, userID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.participants {
		if p.TournamentID == tournamentID && p.UserID == userID {
			delete(r.s.participants, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *TournamentRepo) TotalPrizePool(_ context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total float64
	for _, t := range r.s.tournaments {
		if t.Status == domain.TournamentUpcoming || t.Status == domain.TournamentOngoing {
			total += t.PrizePool
		}
	}
	return total, nil
}

func (r *TournamentRepo) CountStartedBetween(_ context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, t := range r.s.tournaments {
		if !t.StartTime.Before(from) && t.StartTime.Before(to) {
			count++
		}
	}
	return count, nil
}

// --- transactions ---

type TransactionRepo struct{ s *Store }

func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

func (r *TransactionRepo) Create(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx.ID = r.s.next("transaction")
	tx.CreatedAt = time.Now()
	c := *tx
	r.s.transactions[tx.ID] = &c
	return tx, nil
}

func (r *TransactionRepo) ListByUser(_ context.Context, userID int) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var transactions []domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.UserID == userID {
			transactions = append(transactions, *tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

func (r *TransactionRepo) FindPendingWithdrawals(_ context.Context, limit uint32) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var pending []domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.Type == domain.TxTypeWithdrawal && tx.Status == domain.TxStatusPending {
			pending = append(pending, *tx)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if uint32(len(pending)) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *TransactionRepo) UpdateStatus(_ context.Context, id int, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return ErrNotFound
	}
	tx.Status = status
	return nil
}

func (r *TransactionRepo) SumByTypeBetween(_ context.Context, txType string, from, to time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total float64
	for _, tx := range r.s.transactions {
		if tx.Type == txType && tx.Status == domain.TxStatusCompleted &&
			!tx.CreatedAt.Before(from) && tx.CreatedAt.Before(to) {
			total += tx.Amount
		}
	}
	return total, nil
}

// --- leaderboard ---

type LeaderboardRepo struct{ s *Store }

func (s *Store) Leaderboard() *LeaderboardRepo { return &LeaderboardRepo{s: s} }

func (r *LeaderboardRepo) ListByPeriod(_ context.Context, period string) ([]domain.LeaderboardEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var entries []domain.LeaderboardEntry
	for _, e := range r.s.leaderboard {
		if e.Period == period {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kills != entries[j].Kills {
			return entries[i].Kills > entries[j].Kills
		}
		return entries[i].Wins > entries[j].Wins
	})
	return entries, nil
}

func (r *LeaderboardRepo) Upsert(_ context.Context, entry *domain.LeaderboardEntry) (*domain.LeaderboardEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.leaderboard {
		if e.UserID == entry.UserID && e.Period == entry.Period {
			if entry.Kills != 0 {
				e.Kills = entry.Kills
			}
			if entry.Wins != 0 {
				e.Wins = entry.Wins
			}
			if entry.Earnings != 0 {
				e.Earnings = entry.Earnings
			}
			if entry.TournamentCount != 0 {
				e.TournamentCount = entry.TournamentCount
			}
			e.UpdatedAt = time.Now()
			c := *e
			return &c, nil
		}
	}
	entry.ID = r.s.next("leaderboard")
	entry.UpdatedAt = time.Now()
	c := *entry
	r.s.leaderboard[entry.ID] = &c
	return entry, nil
}

// --- referrals ---

type ReferralRepo struct{ s *Store }

func (s *Store) Referrals() *ReferralRepo { return &ReferralRepo{s: s} }

func (r *ReferralRepo) Create(_ context.Context, referral *domain.Referral) (*domain.Referral, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	referral.ID = r.s.next("referral")
	referral.CreatedAt = time.Now()
	c := *referral
	r.s.referrals[referral.ID] = &c
	return referral, nil
}

func (r *ReferralRepo) ListByReferrer(_ context.Context, referrerID int) ([]domain.Referral, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var referrals []domain.Referral
	for _, ref := range r.s.referrals {
		if ref.ReferrerID == referrerID {
			referrals = append(referrals, *ref)
		}
	}
	sort.Slice(referrals, func(i, j int) bool {
		return referrals[i].CreatedAt.After(referrals[j].CreatedAt)
	})
	return referrals, nil
}
