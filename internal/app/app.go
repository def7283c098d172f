package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/firestorm-arena/firestorm/internal/config"
	"github.com/firestorm-arena/firestorm/internal/handlers"
	"github.com/firestorm-arena/firestorm/internal/payout"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/firestorm-arena/firestorm/internal/repo"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/firestorm-arena/firestorm/internal/service"
	"github.com/firestorm-arena/firestorm/pkg/clients"
	"github.com/firestorm-arena/firestorm/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	ext  *payout.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	repositories, txManager, err := buildStorage(ctx, cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.repo = repositories
	a.srv = service.New(a.repo, txManager)
	a.api = handlers.New(a.srv)
	a.ext = payout.New(cfg, a.repo.TransactionRepo, a.srv.WalletService, clients.NewHTTPClient())

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startPayoutService(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// buildStorage wires either the postgres-backed repositories or the in-memory
// store, per the STORAGE setting.
func buildStorage(ctx context.Context, cfg *config.Config) (*repo.Repositories, pg.TXManager, error) {
	if cfg.Storage == config.StorageMemory {
		zap.L().Info("using in-memory storage")
		store := memstore.New()
		return repo.NewMemory(store), store.TxManager(), nil
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return nil, nil, fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return nil, nil, fmt.Errorf("can't run migrations: %w", err)
	}
	return repo.New(pg.New(pool)), pg.NewTXManager(pool), nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router, a.cfg)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startPayoutService(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.ext.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
