package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, user_id, order_num, items, total_price, ship_to, contact, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNum, &o.Items, &o.TotalPrice,
		&o.ShipTo, &o.Contact, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// NewOrder builds a fresh order record. Items are carried over exactly as
// submitted; they are not re-fetched or re-priced.
func NewOrder(userID string, shipTo, contact json.RawMessage, totalPrice int, items []LineItem) *Order {
	if items == nil {
		items = []LineItem{}
	}
	now := time.Now().UTC()
	return &Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		OrderNum:   GenerateOrderNumber(),
		Items:      items,
		TotalPrice: totalPrice,
		ShipTo:     shipTo,
		Contact:    contact,
		Status:     StatusPreparing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateOrder persists a new order with a fresh order number. This write has
// no transactional link to the stock deductions that preceded it.
func (r *Repo) CreateOrder(ctx context.Context, userID string, shipTo, contact json.RawMessage, totalPrice int, items []LineItem) (*Order, error) {
	o := NewOrder(userID, shipTo, contact, totalPrice, items)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO orders (`+orderCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.UserID, o.OrderNum, o.Items, o.TotalPrice, o.ShipTo, o.Contact,
		o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]Order, int, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectOrders(rows)
	return out, total, err
}

// List is the admin view over every order, optionally filtered by an order
// number fragment.
func (r *Repo) List(ctx context.Context, q ListQuery) ([]Order, int, error) {
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	where := `($1 = '' OR order_num ILIKE '%' || $1 || '%')`

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE `+where, q.OrderNum).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		q.OrderNum, q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectOrders(rows)
	return out, total, err
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE orders SET status=$2, updated_at=now()
		WHERE id=$1
		RETURNING `+orderCols, id, status)
	return scanOrder(row)
}

func (r *Repo) GetStatus(ctx context.Context, id string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}
