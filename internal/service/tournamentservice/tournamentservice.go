package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"go.uber.org/zap"
)

type TournamentRepo interface {
	List(ctx context.Context) ([]domain.Tournament, error)
	FindByID(ctx context.Context, id int) (*domain.Tournament, error)
	Create(ctx context.Context, t *domain.Tournament) (*domain.Tournament, error)
	Participants(ctx context.Context, tournamentID int) ([]domain.TournamentParticipant, error)
	FindParticipant(ctx context.Context, tournamentID, userID int) (*domain.TournamentParticipant, error)
	CountParticipants(ctx context.Context, tournamentID int) (int, error)
	CreateParticipant(ctx context.Context, p *domain.TournamentParticipant) (*domain.TournamentParticipant, error)
	DeleteParticipant(ctx context.Context, tournamentID, userID int) (bool, error)
	TotalPrizePool(ctx context.Context) (float64, error)
	CountStartedBetween(ctx context.Context, from, to time.Time) (int, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}

type TransactionRepo interface {
	SumByTypeBetween(ctx context.Context, txType string, from, to time.Time) (float64, error)
}

type ChatRepo interface {
	CreateRoom(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error)
}

// Wallet is the slice of the wallet ledger tournaments need: entry fees and
// refunds go through it so the balance invariant lives in one place.
type Wallet interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

var (
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrAlreadyRegistered   = errors.New("already registered for this tournament")
	ErrTournamentFull      = errors.New("tournament is full")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotRegistered       = errors.New("not registered for this tournament")
	ErrAlreadyStarted      = errors.New("tournament has already started")
	ErrUserNotFound        = errors.New("user not found")
)

type Stats struct {
	TotalUsers       int
	TotalPrizePool   float64
	TournamentsToday int
	PaidOutYesterday float64
}

type Service struct {
	tournamentRepo  TournamentRepo
	userRepo        UserRepo
	transactionRepo TransactionRepo
	chatRepo        ChatRepo
	wallet          Wallet
	txm             pg.TXManager
}

func New(tournamentRepo TournamentRepo, userRepo UserRepo, transactionRepo TransactionRepo, chatRepo ChatRepo, wallet Wallet, txm pg.TXManager) *Service {
	return &Service{
		tournamentRepo:  tournamentRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		chatRepo:        chatRepo,
		wallet:          wallet,
		txm:             txm,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Tournament, error) {
	t, err := s.tournamentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

// Create opens a tournament together with its chat room.
func (s *Service) Create(ctx context.Context, t *domain.Tournament) (*domain.Tournament, error) {
	if t.Status == "" {
		t.Status = domain.TournamentUpcoming
	}
	err := s.txm.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.tournamentRepo.Create(ctx, t); err != nil {
			return err
		}
		_, err := s.chatRepo.CreateRoom(ctx, &domain.ChatRoom{
			Name:      t.Name,
			Type:      domain.RoomTournament,
			RelatedID: &t.ID,
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to create tournament", zap.Error(err))
		return nil, err
	}
	zap.L().Info("tournament created", zap.Int("tournamentID", t.ID), zap.String("name", t.Name))
	return t, nil
}

func (s *Service) Participants(ctx context.Context, tournamentID int) ([]domain.TournamentParticipant, error) {
	t, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTournamentNotFound
	}
	return s.tournamentRepo.Participants(ctx, tournamentID)
}

// Join registers a user into a tournament. The entry fee debit and the
// participant row are written in one transactional unit, so a failed insert
// never leaves the fee charged.
func (s *Service) Join(ctx context.Context, tournamentID, userID int) (*domain.TournamentParticipant, error) {
	var participant *domain.TournamentParticipant

	err := s.txm.Begin(ctx, func(ctx context.Context) error {
		t, err := s.tournamentRepo.FindByID(ctx, tournamentID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTournamentNotFound
		}

		existing, err := s.tournamentRepo.FindParticipant(ctx, tournamentID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyRegistered
		}

		count, err := s.tournamentRepo.CountParticipants(ctx, tournamentID)
		if err != nil {
			return err
		}
		if count >= t.MaxPlayers {
			return ErrTournamentFull
		}

		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if user.Balance < t.EntryFee {
			return ErrInsufficientBalance
		}

		if t.EntryFee > 0 {
			tx := &domain.Transaction{
				UserID:    userID,
				Amount:    t.EntryFee,
				Type:      domain.TxTypeTournamentEntry,
				Status:    domain.TxStatusCompleted,
				Reference: strconv.Itoa(tournamentID),
				Details:   fmt.Sprintf(`{"tournament":%q}`, t.Name),
			}
			if _, err := s.wallet.CreateTransaction(ctx, tx); err != nil {
				return err
			}
		}

		participant, err = s.tournamentRepo.CreateParticipant(ctx, &domain.TournamentParticipant{
			TournamentID: tournamentID,
			UserID:       userID,
			TeamID:       user.TeamID,
			Status:       domain.ParticipantRegistered,
		})
		return err
	})
	if err != nil {
		if !isJoinRejection(err) {
			zap.L().Error("failed to join tournament", zap.Error(err),
				zap.Int("tournamentID", tournamentID), zap.Int("userID", userID))
		}
		return nil, err
	}

	zap.L().Info("user joined tournament", zap.Int("tournamentID", tournamentID), zap.Int("userID", userID))
	return participant, nil
}

func isJoinRejection(err error) bool {
	return errors.Is(err, ErrTournamentNotFound) ||
		errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrTournamentFull) ||
		errors.Is(err, ErrInsufficientBalance)
}

// Withdraw removes a registration from a tournament that has not started and
// refunds the entry fee as an instantly-completed deposit.
func (s *Service) Withdraw(ctx context.Context, tournamentID, userID int) error {
	err := s.txm.Begin(ctx, func(ctx context.Context) error {
		t, err := s.tournamentRepo.FindByID(ctx, tournamentID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTournamentNotFound
		}

		existing, err := s.tournamentRepo.FindParticipant(ctx, tournamentID, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotRegistered
		}

		if t.Status != domain.TournamentUpcoming {
			return ErrAlreadyStarted
		}

		if t.EntryFee > 0 {
			tx := &domain.Transaction{
				UserID:    userID,
				Amount:    t.EntryFee,
				Type:      domain.TxTypeDeposit,
				Status:    domain.TxStatusCompleted,
				Reference: strconv.Itoa(tournamentID),
				Details:   fmt.Sprintf(`{"refund":%q}`, t.Name),
			}
			if _, err := s.wallet.CreateTransaction(ctx, tx); err != nil {
				return err
			}
		}

		deleted, err := s.tournamentRepo.DeleteParticipant(ctx, tournamentID, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrNotRegistered
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("user withdrew from tournament", zap.Int("tournamentID", tournamentID), zap.Int("userID", userID))
	return nil
}

// PlatformStats aggregates the public landing-page numbers.
func (s *Service) PlatformStats(ctx context.Context) (*Stats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	prizePool, err := s.tournamentRepo.TotalPrizePool(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.tournamentRepo.CountStartedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	paidOut, err := s.transactionRepo.SumByTypeBetween(ctx, domain.TxTypeTournamentWin, dayStart.AddDate(0, 0, -1), dayStart)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:       users,
		TotalPrizePool:   prizePool,
		TournamentsToday: today,
		PaidOutYesterday: paidOut,
	}, nil
}
