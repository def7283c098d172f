package tournaments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/tournamentservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*TournamentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

// withChiParam routes the {id} URL parameter the way the real router would.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func authedCtx() context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, 1)
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Existing tournament",
			id:   "10",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), 10).
					Return(&domain.Tournament{ID: 10, Name: "Solo Clash", MaxPlayers: 48}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown tournament",
			id:   "99",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), 99).
					Return(nil, tournamentservice.ErrTournamentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Invalid tournament ID",
			id:           "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/tournaments/"+tt.id, nil)
			r = withChiParam(r, "id", tt.id)
			w := httptest.NewRecorder()

			handler.Get(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.TournamentDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 10, body.ID)
				assert.Equal(t, "Solo Clash", body.Name)
			}
		})
	}
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)
	startTime := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful creation",
			body: `{"name":"Solo Clash","map":"Bermuda","mode":"solo","maxPlayers":48,"entryFee":50,"startTime":"` + startTime + `"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tr *domain.Tournament) (*domain.Tournament, error) {
						assert.Equal(t, "Solo Clash", tr.Name)
						if assert.NotNil(t, tr.OrganizerID) {
							assert.Equal(t, 1, *tr.OrganizerID)
						}
						tr.ID = 10
						return tr, nil
					},
				)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Missing required fields",
			body:          `{"mode":"solo","maxPlayers":48}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Name, map and start time are required",
		},
		{
			name:          "Too few players",
			body:          `{"name":"Solo Clash","map":"Bermuda","mode":"solo","maxPlayers":1,"startTime":"` + startTime + `"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "at least two players",
		},
		{
			name:          "Unknown mode",
			body:          `{"name":"Solo Clash","map":"Bermuda","mode":"royale","maxPlayers":48,"startTime":"` + startTime + `"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Mode must be solo, duo or squad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/tournaments", bytes.NewBufferString(tt.body))
			r = r.WithContext(authedCtx())
			w := httptest.NewRecorder()

			handler.Create(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestJoinHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful registration",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 10, 1).
					Return(&domain.TournamentParticipant{ID: 5, TournamentID: 10, UserID: 1, Status: domain.ParticipantRegistered}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown tournament",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 10, 1).
					Return(nil, tournamentservice.ErrTournamentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Already registered",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 10, 1).
					Return(nil, tournamentservice.ErrAlreadyRegistered)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Tournament full",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 10, 1).
					Return(nil, tournamentservice.ErrTournamentFull)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Insufficient balance",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 10, 1).
					Return(nil, tournamentservice.ErrInsufficientBalance)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().Join(gomock.Any(), 10, 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/tournaments/10/join", nil)
			r = r.WithContext(authedCtx())
			r = withChiParam(r, "id", "10")
			w := httptest.NewRecorder()

			handler.Join(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.ParticipantDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 10, body.TournamentID)
				assert.Equal(t, domain.ParticipantRegistered, body.Status)
			}
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful withdrawal",
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 10, 1).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Not registered",
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 10, 1).
					Return(tournamentservice.ErrNotRegistered)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Already started",
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 10, 1).
					Return(tournamentservice.ErrAlreadyStarted)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/tournaments/10/withdraw", nil)
			r = r.WithContext(authedCtx())
			r = withChiParam(r, "id", "10")
			w := httptest.NewRecorder()

			handler.Withdraw(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestStatsHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().PlatformStats(gomock.Any()).Return(&tournamentservice.Stats{
		TotalUsers:       1200,
		TotalPrizePool:   28500,
		TournamentsToday: 4,
		PaidOutYesterday: 15000,
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.StatsResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Equal(t, 1200, body.ActivePlayers)
	assert.Equal(t, 28500.0, body.TotalPrizePool)
	assert.Equal(t, 4, body.DailyTournaments)
	assert.Equal(t, 15000.0, body.YesterdayPayout)
}
