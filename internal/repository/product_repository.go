package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/funify/funify-api/internal/domain"
)

const collectionSize = 6

// ProductFilter narrows a product listing.
type ProductFilter struct {
	UserID *string
}

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter, page domain.Page) ([]domain.Product, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id, ownerID string) error
	Meta(ctx context.Context) (*domain.ProductMeta, error)
	Collections(ctx context.Context) (*domain.ProductCollections, error)
}

const productColumns = `id::text, user_id, name, description, price, currency, image_url, is_digital, download_url, created_at, updated_at`

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.ImageURL,
		&p.IsDigital,
		&p.DownloadURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *productRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, mapError(rows.Err())
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, page domain.Page) ([]domain.Product, int64, error) {
	const where = ` WHERE ($1::text IS NULL OR user_id = $1)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, filter.UserID).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}
	products, err := r.query(ctx,
		`SELECT `+productColumns+` FROM products`+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		filter.UserID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	const query = `
        INSERT INTO products (user_id, name, description, price, currency, image_url, is_digital, download_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id::text, created_at, updated_at`

	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	err := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.Name,
		p.Description,
		p.Price,
		p.Currency,
		p.ImageURL,
		p.IsDigital,
		p.DownloadURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	const query = `
        UPDATE products SET name = $1, description = $2, price = $3, currency = $4, image_url = $5,
            is_digital = $6, download_url = $7, updated_at = NOW()
        WHERE id = $8 AND user_id = $9
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.Currency,
		p.ImageURL,
		p.IsDigital,
		p.DownloadURL,
		p.ID,
		p.UserID,
	).Scan(&p.UpdatedAt)
	return mapError(err)
}

func (r *productRepository) Delete(ctx context.Context, id, ownerID string) error {
	return execAffected(r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, ownerID))
}

// Meta reads the catalogue summary in one statement so the figures agree.
func (r *productRepository) Meta(ctx context.Context) (*domain.ProductMeta, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE is_digital),
            COALESCE(MIN(price), 0),
            COALESCE(MAX(price), 0),
            COUNT(*),
            COUNT(DISTINCT user_id),
            COALESCE(SUM(price), 0)
        FROM products`

	var meta domain.ProductMeta
	var digital int64
	if err := r.pool.QueryRow(ctx, query).Scan(
		&digital,
		&meta.MinPrice,
		&meta.MaxPrice,
		&meta.Total,
		&meta.Creators,
		&meta.TotalRevenue,
	); err != nil {
		return nil, mapError(err)
	}
	meta.Featured = digital
	meta.Types = []domain.ProductTypeCount{{Type: "DIGITAL", Count: digital}}
	return &meta, nil
}

func (r *productRepository) Collections(ctx context.Context) (*domain.ProductCollections, error) {
	var (
		out domain.ProductCollections
		err error
	)
	if out.Featured, err = r.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_digital ORDER BY created_at DESC LIMIT $1`, collectionSize); err != nil {
		return nil, err
	}
	if out.TopSelling, err = r.query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY price DESC LIMIT $1`, collectionSize); err != nil {
		return nil, err
	}
	if out.NewArrivals, err = r.query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1`, collectionSize); err != nil {
		return nil, err
	}
	return &out, nil
}
