package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/marketservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	List(ctx context.Context, filters marketservice.Filters) ([]marketservice.ItemDetails, error)
	Get(ctx context.Context, id int) (*marketservice.ItemDetails, error)
	Create(ctx context.Context, sellerID int, item *domain.MarketplaceItem) (*domain.MarketplaceItem, error)
}

type MarketplaceHandler struct {
	marketService Service
}

func New(marketService Service) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketService: marketService,
	}
}

func toItemDTO(details marketservice.ItemDetails) dto.MarketplaceItemDTO {
	item := dto.MarketplaceItemDTO{
		ID:          details.Item.ID,
		SellerID:    details.Item.SellerID,
		Title:       details.Item.Title,
		Description: details.Item.Description,
		Category:    details.Item.Category,
		Price:       details.Item.Price,
		Image:       details.Item.Image,
		Status:      details.Item.Status,
		CreatedAt:   details.Item.CreatedAt,
	}
	if details.Seller != nil {
		item.Seller = &dto.UserSummaryDTO{
			ID:       details.Seller.ID,
			Username: details.Seller.Username,
			Avatar:   details.Seller.Avatar,
		}
	}
	return item
}

// List godoc
//
//	@Summary		List marketplace items
//	@Description	Active listings, newest first. Supports category, minPrice and maxPrice filters.
//	@Tags			Marketplace
//	@Produce		json
//	@Param			category	query		string	false	"Category filter"
//	@Param			minPrice	query		number	false	"Minimum price"
//	@Param			maxPrice	query		number	false	"Maximum price"
//	@Success		200			{array}		dto.MarketplaceItemDTO
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/marketplace [get]
func (h *MarketplaceHandler) List(w http.ResponseWriter, r *http.Request) {
	var filters marketservice.Filters
	if category := r.URL.Query().Get("category"); category != "" {
		filters.Category = &category
	}
	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &v
		}
	}
	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &v
		}
	}

	items, err := h.marketService.List(r.Context(), filters)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.MarketplaceItemDTO, len(items))
	for i, details := range items {
		response[i] = toItemDTO(details)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary	Get marketplace item
//	@Tags		Marketplace
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	dto.MarketplaceItemDTO
//	@Failure	404	{object}	utils.Response	"Item not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/marketplace/{id} [get]
func (h *MarketplaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}
	details, err := h.marketService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, marketservice.ErrItemNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toItemDTO(*details))
}

// Create godoc
//
//	@Summary	List an item for sale
//	@Tags		Marketplace
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateMarketplaceItemRequestDTO	true	"Item definition"
//	@Success	201		{object}	dto.MarketplaceItemDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	401		{object}	utils.Response	"User not authorized"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/marketplace [post]
func (h *MarketplaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateMarketplaceItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Title) < 3 || len(req.Title) > 80 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title must be between 3 and 80 characters")
		return
	}
	if req.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category is required")
		return
	}
	if req.Price < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	item, err := h.marketService.Create(r.Context(), sellerID, &domain.MarketplaceItem{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toItemDTO(marketservice.ItemDetails{Item: *item}))
}
