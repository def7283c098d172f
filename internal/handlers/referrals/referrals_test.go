package referrals

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/firestorm-arena/firestorm/internal/service/referralservice"
	"github.com/firestorm-arena/firestorm/internal/service/walletservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*ReferralHandler, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	wallet := walletservice.New(store.Transactions(), store.Users(), store.TxManager())
	service := referralservice.New(store.Users(), store.Referrals(), wallet, store.TxManager())
	return New(service), store
}

func applyRequest(userID int, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/referrals/apply", bytes.NewBufferString(body))
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func TestApplyHandler(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()

	code, err := validate.GenerateReferralCode()
	require.NoError(t, err)
	referrer, err := store.Users().Create(ctx, &domain.User{Username: "referrer", ReferralCode: code})
	require.NoError(t, err)
	referred, err := store.Users().Create(ctx, &domain.User{Username: "referred"})
	require.NoError(t, err)

	body := fmt.Sprintf(`{"referralCode":%q}`, code)

	t.Run("first application credits the referrer", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Apply(w, applyRequest(referred.ID, body))

		assert.Equal(t, http.StatusOK, w.Code)
		updated, err := store.Users().FindByID(ctx, referrer.ID)
		require.NoError(t, err)
		assert.Equal(t, 50.0, updated.Balance)
	})

	t.Run("second application conflicts", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Apply(w, applyRequest(referred.ID, body))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "referral code already applied")
	})

	t.Run("own code is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Apply(w, applyRequest(referrer.ID, body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed code is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Apply(w, applyRequest(referrer.ID, `{"referralCode":"not-a-code"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
