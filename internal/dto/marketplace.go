package dto

import "time"

type MarketplaceItemDTO struct {
	ID          int             `json:"id"`
	SellerID    int             `json:"sellerId"`
	Title       string          `json:"title" example:"Elite Pass Season 12"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category" example:"accounts"`
	Price       float64         `json:"price" example:"250"`
	Image       string          `json:"image,omitempty"`
	Status      string          `json:"status" example:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	Seller      *UserSummaryDTO `json:"seller,omitempty"`
}

type CreateMarketplaceItemRequestDTO struct {
	Title       string  `json:"title" validate:"required,min=3,max=80"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required,min=0"`
	Image       string  `json:"image"`
}
