package referralservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/firestorm-arena/firestorm/pkg/validate"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	SetReferredBy(ctx context.Context, userID, referrerID int) error
}

type ReferralRepo interface {
	Create(ctx context.Context, ref *domain.Referral) (*domain.Referral, error)
	ListByReferrer(ctx context.Context, referrerID int) ([]domain.Referral, error)
}

type Wallet interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

var (
	ErrInvalidCode    = errors.New("invalid referral code")
	ErrAlreadyApplied = errors.New("referral code already applied")
	ErrSelfReferral   = errors.New("cannot use your own referral code")
	ErrUserNotFound   = errors.New("user not found")
)

// Reward credited to the referrer when a referred user applies their code.
const referralReward = 50

type Service struct {
	userRepo     UserRepo
	referralRepo ReferralRepo
	wallet       Wallet
	txm          pg.TXManager
}

func New(userRepo UserRepo, referralRepo ReferralRepo, wallet Wallet, txm pg.TXManager) *Service {
	return &Service{
		userRepo:     userRepo,
		referralRepo: referralRepo,
		wallet:       wallet,
		txm:          txm,
	}
}

// Apply links a user to the owner of a referral code and credits the reward
// to the referrer. A user can apply a code at most once, ever.
func (s *Service) Apply(ctx context.Context, userID int, code string) (*domain.Referral, error) {
	if !validate.IsReferralCode(code) {
		return nil, ErrInvalidCode
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.ReferredBy != nil {
		return nil, ErrAlreadyApplied
	}

	referrer, err := s.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		return nil, ErrInvalidCode
	}
	if referrer.ID == userID {
		return nil, ErrSelfReferral
	}

	var referral *domain.Referral
	err = s.txm.Begin(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SetReferredBy(ctx, userID, referrer.ID); err != nil {
			return err
		}
		referral, err = s.referralRepo.Create(ctx, &domain.Referral{
			ReferrerID: referrer.ID,
			ReferredID: userID,
			Status:     domain.TxStatusCompleted,
			Reward:     referralReward,
		})
		if err != nil {
			return err
		}
		_, err = s.wallet.CreateTransaction(ctx, &domain.Transaction{
			UserID:    referrer.ID,
			Amount:    referralReward,
			Type:      domain.TxTypeReferral,
			Status:    domain.TxStatusCompleted,
			Reference: strconv.Itoa(referral.ID),
			Details:   fmt.Sprintf(`{"referred":%q}`, user.Username),
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to apply referral code", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	zap.L().Info("referral code applied",
		zap.Int("referrerID", referrer.ID), zap.Int("referredID", userID))
	return referral, nil
}

// Get returns the user's own code and the referrals it produced.
func (s *Service) Get(ctx context.Context, userID int) (string, []domain.Referral, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}
	referrals, err := s.referralRepo.ListByReferrer(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	return user.ReferralCode, referrals, nil
}
