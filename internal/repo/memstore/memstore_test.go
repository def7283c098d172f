package memstore

import (
	"context"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByReferralCode(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.Users().Create(ctx, &domain.User{Username: "first", ReferralCode: "4539148803436467"})
	require.NoError(t, err)
	_, err = store.Users().Create(ctx, &domain.User{Username: "second", ReferralCode: "6011000990139424"})
	require.NoError(t, err)
	_, err = store.Users().Create(ctx, &domain.User{Username: "codeless"})
	require.NoError(t, err)

	found, err := store.Users().FindByReferralCode(ctx, "4539148803436467")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	missing, err := store.Users().FindByReferralCode(ctx, "0000000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := store.Users().FindByReferralCode(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}
