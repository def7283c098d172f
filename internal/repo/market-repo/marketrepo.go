package marketrepo

import (
	"context"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const itemColumns = `id, seller_id, title, description, category, price, image, status, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanItem(row pg.Scanner) (*domain.MarketplaceItem, error) {
	var item domain.MarketplaceItem
	err := row.Scan(&item.ID, &item.SellerID, &item.Title, &item.Description,
		&item.Category, &item.Price, &item.Image, &item.Status, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.MarketplaceItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM marketplace_items ORDER BY created_at DESC`)
	if err != nil {
		zap.L().Error("can't list marketplace items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.MarketplaceItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.MarketplaceItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM marketplace_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find marketplace item", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *Repository) Create(ctx context.Context, item *domain.MarketplaceItem) (*domain.MarketplaceItem, error) {
	query := `
		INSERT INTO marketplace_items (seller_id, title, description, category, price, image, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, item.SellerID, item.Title, item.Description,
		item.Category, item.Price, item.Image, item.Status).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		zap.L().Error("can't create marketplace item", zap.Error(err))
		return nil, err
	}
	return item, nil
}
