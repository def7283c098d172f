package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/firestorm-arena/firestorm/internal/config"
	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/metrics"
	"github.com/firestorm-arena/firestorm/pkg/clients"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// Payout system verdicts for a withdrawal reference.
const (
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusProcessing = "PROCESSING"
)

var processingPayouts sync.Map

type Response struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type TransactionRepo interface {
	FindPendingWithdrawals(ctx context.Context, limit uint32) ([]domain.Transaction, error)
}

// Settler resolves a pending withdrawal once the payout system has a verdict.
type Settler interface {
	SettleWithdrawal(ctx context.Context, tx domain.Transaction, approved bool) error
}

type Service struct {
	url             string
	transactionRepo TransactionRepo
	settler         Settler
	client          clients.HTTPClientI
	limit           uint32
	workerPool      WorkerPoolI
	updateInterval  time.Duration
}

func New(cfg *config.Config, transactionRepo TransactionRepo, settler Settler, client clients.HTTPClientI) *Service {
	return &Service{
		url:             cfg.PayoutAddress,
		transactionRepo: transactionRepo,
		settler:         settler,
		client:          client,
		limit:           1000,
		workerPool:      NewWorkerPool(10),
		updateInterval:  time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Payout service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payout service")
			return
		case <-ticker.C:
			s.processWithdrawals(ctx)
		}
	}
}

func (s *Service) processWithdrawals(ctx context.Context) {
	withdrawals, err := s.transactionRepo.FindPendingWithdrawals(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending withdrawals", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, tx := range withdrawals {
		tx := tx

		if _, loaded := processingPayouts.LoadOrStore(tx.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingPayouts.Delete(tx.ID)
				return s.handleWithdrawal(ctx, tx)
			})
			if err != nil {
				processingPayouts.Delete(tx.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing withdrawals", zap.Error(err))
	}
}

func (s *Service) handleWithdrawal(ctx context.Context, tx domain.Transaction) error {
	url := s.url + "/api/payouts/" + tx.Reference
	var err error
	var statusCode int
	var respBody []byte
	var respHeaders http.Header

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err = s.client.Get(url, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to check payout %s after %d retries: %w", tx.Reference, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				return s.handleRateLimit(tx, respHeaders, attempt)
			case http.StatusNoContent:
				// Not known to the payout system yet; pick it up next tick.
				zap.L().Info("Payout not registered yet", zap.String("reference", tx.Reference))
				return nil
			case http.StatusOK:
				return s.processVerdict(ctx, tx, respBody)
			default:
				zap.L().Error("Unexpected status code", zap.Int("status", statusCode), zap.String("reference", tx.Reference))
				return errors.New("unexpected status code")
			}
		}
	}
	return nil
}

func (s *Service) processVerdict(ctx context.Context, tx domain.Transaction, respBody []byte) error {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}

	if response.Reference != tx.Reference {
		return fmt.Errorf("reference mismatch: expected %s, got %s", tx.Reference, response.Reference)
	}

	switch response.Status {
	case StatusApproved:
		if err := s.settler.SettleWithdrawal(ctx, tx, true); err != nil {
			return fmt.Errorf("failed to settle withdrawal %d: %w", tx.ID, err)
		}
		metrics.PayoutSettlementsTotal.WithLabelValues("approved").Inc()
	case StatusRejected:
		if err := s.settler.SettleWithdrawal(ctx, tx, false); err != nil {
			return fmt.Errorf("failed to reject withdrawal %d: %w", tx.ID, err)
		}
		metrics.PayoutSettlementsTotal.WithLabelValues("rejected").Inc()
	case StatusProcessing:
		zap.L().Info("Payout still processing", zap.String("reference", tx.Reference))
	default:
		zap.L().Warn("Unrecognized payout status", zap.String("reference", tx.Reference), zap.String("status", response.Status))
	}
	return nil
}

func (s *Service) handleRateLimit(tx domain.Transaction, respHeaders http.Header, attempt int) error {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.String("reference", tx.Reference),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
	return nil
}
