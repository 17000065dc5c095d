package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists products in postgres. The stock mapping lives in a jsonb
// column and is written/read as a whole document.
type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, sku, name, sizes, image, category, description, price, stock, status, is_deleted, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Sizes, &p.Image, &p.Category,
		&p.Description, &p.Price, &p.Stock, &p.Status, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) InsertProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Stock == nil {
		p.Stock = map[string]int{}
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products (`+productCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,false,$11,$12)`,
		p.ID, p.SKU, p.Name, p.Sizes, p.Image, p.Category,
		p.Description, p.Price, p.Stock, p.Status, p.CreatedAt, p.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSKUTaken
	}
	return err
}

func (r *Repo) FindProductByID(ctx context.Context, id string) (*Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

// SaveProduct writes back every mutable field, stock mapping included.
func (r *Repo) SaveProduct(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now().UTC()
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET sku=$2, name=$3, sizes=$4, image=$5, category=$6, description=$7,
		    price=$8, stock=$9, status=$10, updated_at=$11
		WHERE id=$1`,
		p.ID, p.SKU, p.Name, p.Sizes, p.Image, p.Category, p.Description,
		p.Price, p.Stock, p.Status, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSKUTaken
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock subtracts qty from stock[size] only while the remaining
// stock covers it. Zero rows affected means the product vanished, the size
// does not exist, or a concurrent order got there first.
func (r *Repo) DecrementStock(ctx context.Context, id, size string, qty int) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET stock = jsonb_set(stock, ARRAY[$2], to_jsonb((stock->>$2)::int - $3)),
		    updated_at = now()
		WHERE id = $1 AND coalesce((stock->>$2)::int, -1) >= $3`,
		id, size, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *Repo) SoftDeleteProduct(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE products SET is_deleted=true, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListProducts returns one page of non-deleted products plus the total match
// count so handlers can compute totalPageNum.
func (r *Repo) ListProducts(ctx context.Context, q ListQuery) ([]Product, int, error) {
	if q.PageSize <= 0 {
		q.PageSize = 5
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	where := `is_deleted = false AND ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE `+where, q.Name).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT `+productCols+` FROM products
		WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		q.Name, q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}
