package leaderboardservice

import (
	"context"
	"errors"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	ListByPeriod(ctx context.Context, period string) ([]domain.LeaderboardEntry, error)
	Upsert(ctx context.Context, entry *domain.LeaderboardEntry) (*domain.LeaderboardEntry, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

var ErrInvalidPeriod = errors.New("invalid leaderboard period")

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all-time"
)

// Periods lists every tracked aggregation window.
var Periods = []string{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime}

type RankedEntry struct {
	Entry domain.LeaderboardEntry
	User  *domain.User
	Rank  int
}

type Service struct {
	leaderboardRepo Repo
	userRepo        UserRepo
}

func New(leaderboardRepo Repo, userRepo UserRepo) *Service {
	return &Service{
		leaderboardRepo: leaderboardRepo,
		userRepo:        userRepo,
	}
}

// Get returns entries for a period ordered by kills then wins, with ranks
// assigned by position.
func (s *Service) Get(ctx context.Context, period string) ([]RankedEntry, error) {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime:
	default:
		return nil, ErrInvalidPeriod
	}

	entries, err := s.leaderboardRepo.ListByPeriod(ctx, period)
	if err != nil {
		zap.L().Error("failed to fetch leaderboard", zap.Error(err), zap.String("period", period))
		return nil, err
	}

	ranked := make([]RankedEntry, 0, len(entries))
	for i, entry := range entries {
		user, err := s.userRepo.FindByID(ctx, entry.UserID)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedEntry{Entry: entry, User: user, Rank: i + 1})
	}
	return ranked, nil
}

// Record merges a result into the user's entry for every period at once, so
// all four boards stay in step.
func (s *Service) Record(ctx context.Context, entry domain.LeaderboardEntry) error {
	for _, period := range Periods {
		e := entry
		e.Period = period
		if _, err := s.leaderboardRepo.Upsert(ctx, &e); err != nil {
			zap.L().Error("failed to record leaderboard entry", zap.Error(err),
				zap.Int("userID", entry.UserID), zap.String("period", period))
			return err
		}
	}
	return nil
}
