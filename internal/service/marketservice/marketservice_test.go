package marketservice

import (
	"context"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return New(store.Market(), store.Users()), store
}

func seedItems(t *testing.T, service *Service, store *memstore.Store) *domain.User {
	t.Helper()
	ctx := context.Background()
	seller, err := store.Users().Create(ctx, &domain.User{Username: "seller"})
	require.NoError(t, err)

	for _, item := range []*domain.MarketplaceItem{
		{Title: "Cobra Bundle", Category: "skins", Price: 300},
		{Title: "1000 Diamonds", Category: "diamonds", Price: 800},
		{Title: "Elite Pass", Category: "passes", Price: 500},
	} {
		_, err := service.Create(ctx, seller.ID, item)
		require.NoError(t, err)
	}
	return seller
}

func TestList(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	seller := seedItems(t, service, store)

	all, err := service.List(ctx, Filters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, seller.ID, all[0].Seller.ID)

	skins := "skins"
	byCategory, err := service.List(ctx, Filters{Category: &skins})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Cobra Bundle", byCategory[0].Item.Title)

	min, max := 400.0, 600.0
	byPrice, err := service.List(ctx, Filters{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, "Elite Pass", byPrice[0].Item.Title)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	seller := seedItems(t, service, store)

	details, err := service.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cobra Bundle", details.Item.Title)
	assert.Equal(t, seller.Username, details.Seller.Username)

	_, err = service.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)
	seller, err := store.Users().Create(ctx, &domain.User{Username: "seller"})
	require.NoError(t, err)

	item, err := service.Create(ctx, seller.ID, &domain.MarketplaceItem{Title: "Cobra Bundle", Category: "skins", Price: 300})
	require.NoError(t, err)
	assert.Equal(t, "active", item.Status)
	assert.Equal(t, seller.ID, item.SellerID)
}
