package memstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
)

var ErrNotFound = errors.New("memstore: not found")

type TeamRepo struct{ s *Store }

func (s *Store) Teams() *TeamRepo { return &TeamRepo{s: s} }

func (r *TeamRepo) List(_ context.Context) ([]domain.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	teams := make([]domain.Team, 0, len(r.s.teams))
	for _, t := range r.s.teams {
		teams = append(teams, *t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *TeamRepo) FindByID(_ context.Context, id int) (*domain.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.teams[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *TeamRepo) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.next("team")
	t.CreatedAt = time.Now()
	c := *t
	r.s.teams[t.ID] = &c
	return t, nil
}

func (r *TeamRepo) Update(_ context.Context, t *domain.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.teams[t.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = t.Name
	existing.Tag = t.Tag
	existing.Description = t.Description
	existing.Logo = t.Logo
	existing.LeaderID = t.LeaderID
	return nil
}

func (r *TeamRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.teams, id)
	for mid, m := range r.s.members {
		if m.TeamID == id {
			delete(r.s.members, mid)
		}
	}
	for iid, inv := range r.s.invites {
		if inv.TeamID == id {
			delete(r.s.invites, iid)
		}
	}
	return nil
}

func (r *TeamRepo) AddMember(_ context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.next("member")
	m.JoinedAt = time.Now()
	c := *m
	r.s.members[m.ID] = &c
	return m, nil
}

func (r *TeamRepo) Members(_ context.Context, teamID int) ([]domain.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var members []domain.TeamMember
	for _, m := range r.s.members {
		if m.TeamID == teamID {
			members = append(members, *m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *TeamRepo) FindMember(_ context.Context, teamID, userID int) (*domain.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.members {
		if m.TeamID == teamID && m.UserID == userID {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *TeamRepo) UpdateMemberRole(_ context.Context, memberID int, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[memberID]
	if !ok {
		return ErrNotFound
	}
	m.Role = role
	return nil
}

func (r *TeamRepo) RemoveMember(_ context.Context, teamID, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, m := range r.s.members {
		if m.TeamID == teamID && m.UserID == userID {
			delete(r.s.members, id)
			return nil
		}
	}
	return nil
}

func (r *TeamRepo) FindCoLeader(_ context.Context, teamID int) (*domain.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *domain.TeamMember
	for _, m := range r.s.members {
		if m.TeamID == teamID && m.Role == domain.RoleCoLeader {
			if best == nil || m.JoinedAt.Before(best.JoinedAt) {
				best = m
			}
		}
	}
	if best == nil {
		return nil, nil
	}
	c := *best
	return &c, nil
}

func (r *TeamRepo) CreateInvite(_ context.Context, inv *domain.TeamInvite) (*domain.TeamInvite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv.ID = r.s.next("invite")
	inv.CreatedAt = time.Now()
	c := *inv
	r.s.invites[inv.ID] = &c
	return inv, nil
}

func (r *TeamRepo) FindPendingInvite(_ context.Context, teamID, userID int) (*domain.TeamInvite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invites {
		if inv.TeamID == teamID && inv.UserID == userID && inv.Status == domain.InvitePending {
			c := *inv
			return &c, nil
		}
	}
	return nil, nil
}

func (r *TeamRepo) FindInviteByID(_ context.Context, id int) (*domain.TeamInvite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if inv, ok := r.s.invites[id]; ok {
		c := *inv
		return &c, nil
	}
	return nil, nil
}

func (r *TeamRepo) ListPendingInvitesByUser(_ context.Context, userID int) ([]domain.TeamInvite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var invites []domain.TeamInvite
	for _, inv := range r.s.invites {
		if inv.UserID == userID && inv.Status == domain.InvitePending {
			invites = append(invites, *inv)
		}
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].ID > invites[j].ID })
	return invites, nil
}

func (r *TeamRepo) UpdateInviteStatus(_ context.Context, id int, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invites[id]
	if !ok {
		return ErrNotFound
	}
	inv.Status = status
	return nil
}
