package repositories

import (
	"context"
	"errors"
	"fmt"

	"vitalimes-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ProductRepository struct {
	db   DBTX
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: pool, pool: pool}
}

// RunInTx calls fn with a repository bound to a single transaction. Inside a
// transaction it calls fn with the receiver.
func (r *ProductRepository) RunInTx(ctx context.Context, fn func(*ProductRepository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&ProductRepository{db: tx})
	})
}

const productColumns = `id, title, description, category, hsn, status, units,
	image1, image2, image3, image4, image5, image6, video, created_at`

const variantColumns = `id, product_id, weight, price, sale_price, offer_percent, tax_percent, tax_amount, stock`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.HSN, &p.Status, &p.Units,
		&p.Slots.Images[0], &p.Slots.Images[1], &p.Slots.Images[2],
		&p.Slots.Images[3], &p.Slots.Images[4], &p.Slots.Images[5],
		&p.Slots.Video, &p.CreatedAt,
	)
	return p, err
}

// ListByStatus loads the headers, then the variants of each product in turn.
func (r *ProductRepository) ListByStatus(ctx context.Context, status models.ProductStatus) ([]models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE status = $1 ORDER BY created_at DESC, id DESC`,
		status)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	for i := range products {
		variants, err := r.ListVariants(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Variants = variants
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}

	p.Variants, err = r.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) InsertHeader(ctx context.Context, h models.ProductHeader, slots models.SlotState) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (title, description, category, hsn, status, units,
			image1, image2, image3, image4, image5, image6, video, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id`,
		h.Title, h.Description, h.Category, h.HSN, h.Status, h.Units,
		slots.Images[0], slots.Images[1], slots.Images[2],
		slots.Images[3], slots.Images[4], slots.Images[5],
		slots.Video,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

func (r *ProductRepository) UpdateHeader(ctx context.Context, id int, h models.ProductHeader, slots models.SlotState) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET
			title = $1, description = $2, category = $3, hsn = $4, status = $5, units = $6,
			image1 = $7, image2 = $8, image3 = $9, image4 = $10, image5 = $11, image6 = $12,
			video = $13
		WHERE id = $14`,
		h.Title, h.Description, h.Category, h.HSN, h.Status, h.Units,
		slots.Images[0], slots.Images[1], slots.Images[2],
		slots.Images[3], slots.Images[4], slots.Images[5],
		slots.Video, id,
	)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteHeader(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) ListVariants(ctx context.Context, productID int) ([]models.Variant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+variantColumns+` FROM product_variants WHERE product_id = $1 ORDER BY id`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("query variants of %d: %w", productID, err)
	}

	variants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Variant, error) {
		var v models.Variant
		err := row.Scan(&v.ID, &v.ProductID, &v.Weight, &v.Price, &v.SalePrice,
			&v.OfferPercent, &v.TaxPercent, &v.TaxAmount, &v.Stock)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan variants of %d: %w", productID, err)
	}
	return variants, nil
}

func (r *ProductRepository) DeleteVariants(ctx context.Context, productID int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete variants of %d: %w", productID, err)
	}
	return nil
}

// ReplaceVariants deletes every variant of the product, then inserts rows in order.
func (r *ProductRepository) ReplaceVariants(ctx context.Context, productID int, rows []models.Variant) error {
	if err := r.DeleteVariants(ctx, productID); err != nil {
		return err
	}

	for i, v := range rows {
		_, err := r.db.Exec(ctx, `
			INSERT INTO product_variants
				(product_id, weight, price, sale_price, offer_percent, tax_percent, tax_amount, stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			productID, v.Weight, v.Price, v.SalePrice, v.OfferPercent, v.TaxPercent, v.TaxAmount, v.Stock,
		)
		if err != nil {
			return fmt.Errorf("insert variant %d of %d: %w", i, productID, err)
		}
	}
	return nil
}
