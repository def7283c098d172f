package marketservice

import (
	"context"
	"errors"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	List(ctx context.Context) ([]domain.MarketplaceItem, error)
	FindByID(ctx context.Context, id int) (*domain.MarketplaceItem, error)
	Create(ctx context.Context, item *domain.MarketplaceItem) (*domain.MarketplaceItem, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

var ErrItemNotFound = errors.New("item not found")

type Filters struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
}

type ItemDetails struct {
	Item   domain.MarketplaceItem
	Seller *domain.User
}

type Service struct {
	marketRepo Repo
	userRepo   UserRepo
}

func New(marketRepo Repo, userRepo UserRepo) *Service {
	return &Service{
		marketRepo: marketRepo,
		userRepo:   userRepo,
	}
}

func (s *Service) List(ctx context.Context, filters Filters) ([]ItemDetails, error) {
	items, err := s.marketRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]ItemDetails, 0, len(items))
	for _, item := range items {
		if filters.Category != nil && item.Category != *filters.Category {
			continue
		}
		if filters.MinPrice != nil && item.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && item.Price > *filters.MaxPrice {
			continue
		}
		seller, err := s.userRepo.FindByID(ctx, item.SellerID)
		if err != nil {
			return nil, err
		}
		details = append(details, ItemDetails{Item: item, Seller: seller})
	}
	return details, nil
}

func (s *Service) Get(ctx context.Context, id int) (*ItemDetails, error) {
	item, err := s.marketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	seller, err := s.userRepo.FindByID(ctx, item.SellerID)
	if err != nil {
		return nil, err
	}
	return &ItemDetails{Item: *item, Seller: seller}, nil
}

func (s *Service) Create(ctx context.Context, sellerID int, item *domain.MarketplaceItem) (*domain.MarketplaceItem, error) {
	item.SellerID = sellerID
	if item.Status == "" {
		item.Status = "active"
	}
	created, err := s.marketRepo.Create(ctx, item)
	if err != nil {
		zap.L().Error("failed to list item", zap.Error(err), zap.Int("sellerID", sellerID))
		return nil, err
	}
	return created, nil
}
