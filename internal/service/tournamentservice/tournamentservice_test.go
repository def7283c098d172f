package tournamentservice

import (
	"context"
	"testing"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockTournamentRepo, *MockUserRepo, *MockTransactionRepo, *MockChatRepo, *MockWallet) {
	ctrl := gomock.NewController(t)
	tournamentRepo := NewMockTournamentRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)
	chatRepo := NewMockChatRepo(ctrl)
	wallet := NewMockWallet(ctrl)
	txm := pg.NewMockTXManager(ctrl)
	txm.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(tournamentRepo, userRepo, transactionRepo, chatRepo, wallet, txm)
	defer ctrl.Finish()
	return service, tournamentRepo, userRepo, transactionRepo, chatRepo, wallet
}

func upcomingTournament() *domain.Tournament {
	return &domain.Tournament{
		ID:         10,
		Name:       "Solo Clash",
		EntryFee:   50,
		PrizePool:  1000,
		MaxPlayers: 2,
		Mode:       "solo",
		Map:        "Bermuda",
		Status:     domain.TournamentUpcoming,
	}
}

func TestCreate(t *testing.T) {
	service, tournamentRepo, _, _, chatRepo, _ := NewMock(t)

	tournamentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tr *domain.Tournament) (*domain.Tournament, error) {
			assert.Equal(t, domain.TournamentUpcoming, tr.Status)
			tr.ID = 10
			return tr, nil
		},
	)
	chatRepo.EXPECT().CreateRoom(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error) {
			assert.Equal(t, domain.RoomTournament, room.Type)
			assert.Equal(t, "Solo Clash", room.Name)
			if assert.NotNil(t, room.RelatedID) {
				assert.Equal(t, 10, *room.RelatedID)
			}
			return room, nil
		},
	)

	created, err := service.Create(context.Background(), &domain.Tournament{Name: "Solo Clash", MaxPlayers: 2})
	assert.NoError(t, err)
	assert.Equal(t, 10, created.ID)
}

func TestJoin(t *testing.T) {
	service, tournamentRepo, userRepo, _, _, wallet := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Join debits entry fee and registers",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(upcomingTournament(), nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(nil, nil)
				tournamentRepo.EXPECT().CountParticipants(gomock.Any(), 10).Return(0, nil)
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 200}, nil)
				wallet.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TxTypeTournamentEntry, tx.Type)
						assert.Equal(t, domain.TxStatusCompleted, tx.Status)
						assert.Equal(t, 50.0, tx.Amount)
						return tx, nil
					},
				)
				tournamentRepo.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.TournamentParticipant) (*domain.TournamentParticipant, error) {
						assert.Equal(t, domain.ParticipantRegistered, p.Status)
						p.ID = 5
						return p, nil
					},
				)
			},
		},
		{
			name: "Free tournament skips the fee",
			prepareMock: func() {
				free := upcomingTournament()
				free.EntryFee = 0
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(free, nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(nil, nil)
				tournamentRepo.EXPECT().CountParticipants(gomock.Any(), 10).Return(0, nil)
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 0}, nil)
				tournamentRepo.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.TournamentParticipant) (*domain.TournamentParticipant, error) {
						return p, nil
					},
				)
			},
		},
		{
			name: "Unknown tournament",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(nil, nil)
			},
			expectedError: ErrTournamentNotFound,
		},
		{
			name: "Already registered",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(upcomingTournament(), nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(&domain.TournamentParticipant{ID: 5}, nil)
			},
			expectedError: ErrAlreadyRegistered,
		},
		{
			name: "Tournament full",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(upcomingTournament(), nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(nil, nil)
				tournamentRepo.EXPECT().CountParticipants(gomock.Any(), 10).Return(2, nil)
			},
			expectedError: ErrTournamentFull,
		},
		{
			name: "Insufficient balance",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(upcomingTournament(), nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(nil, nil)
				tournamentRepo.EXPECT().CountParticipants(gomock.Any(), 10).Return(0, nil)
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 10}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			participant, err := service.Join(context.Background(), 10, 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 10, participant.TournamentID)
				assert.Equal(t, 1, participant.UserID)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	service, tournamentRepo, _, _, _, wallet := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Withdraw refunds the fee",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(upcomingTournament(), nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(&domain.TournamentParticipant{ID: 5}, nil)
				wallet.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TxTypeDeposit, tx.Type)
						assert.Equal(t, 50.0, tx.Amount)
						return tx, nil
					},
				)
				tournamentRepo.EXPECT().DeleteParticipant(gomock.Any(), 10, 1).Return(true, nil)
			},
		},
		{
			name: "Not registered",
			prepareMock: func() {
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(upcomingTournament(), nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(nil, nil)
			},
			expectedError: ErrNotRegistered,
		},
		{
			name: "Started tournament locks registration",
			prepareMock: func() {
				started := upcomingTournament()
				started.Status = domain.TournamentOngoing
				tournamentRepo.EXPECT().FindByID(gomock.Any(), 10).Return(started, nil)
				tournamentRepo.EXPECT().FindParticipant(gomock.Any(), 10, 1).Return(&domain.TournamentParticipant{ID: 5}, nil)
			},
			expectedError: ErrAlreadyStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.Withdraw(context.Background(), 10, 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlatformStats(t *testing.T) {
	service, tournamentRepo, userRepo, transactionRepo, _, _ := NewMock(t)

	userRepo.EXPECT().Count(gomock.Any()).Return(120, nil)
	tournamentRepo.EXPECT().TotalPrizePool(gomock.Any()).Return(28500.0, nil)
	tournamentRepo.EXPECT().CountStartedBetween(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, from, to time.Time) (int, error) {
			assert.Equal(t, 24*time.Hour, to.Sub(from))
			return 4, nil
		},
	)
	transactionRepo.EXPECT().SumByTypeBetween(gomock.Any(), domain.TxTypeTournamentWin, gomock.Any(), gomock.Any()).Return(15000.0, nil)

	stats, err := service.PlatformStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 120, stats.TotalUsers)
	assert.Equal(t, 28500.0, stats.TotalPrizePool)
	assert.Equal(t, 4, stats.TournamentsToday)
	assert.Equal(t, 15000.0, stats.PaidOutYesterday)
}
