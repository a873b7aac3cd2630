package order

import (
	"context"

	"bookstore-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Append(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insert = `
INSERT INTO orders (name, email, phone, street, city, state, country, zipcode, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id::text, created_at
`
	if err := tx.QueryRow(ctx, insert,
		o.Name, o.Email, o.Phone,
		o.Address.Street, o.Address.City, o.Address.State, o.Address.Country, o.Address.Zipcode,
		o.TotalCents,
	).Scan(&o.ID, &o.CreatedAt); err != nil {
		return err
	}

	for pos, line := range o.Lines {
		const insertLine = `
INSERT INTO order_items (order_id, book_id, title, price_cents, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6)
`
		if _, err := tx.Exec(ctx, insertLine,
			o.ID, line.BookID, line.Title, line.PriceCents, line.Quantity, pos,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) FindByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	const q = `
SELECT id::text, name, email, phone, street, city, state, country, zipcode, total_cents, created_at
FROM orders
WHERE email = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := map[string]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Email, &o.Phone,
			&o.Address.Street, &o.Address.City, &o.Address.State, &o.Address.Country, &o.Address.Zipcode,
			&o.TotalCents, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Lines = []domain.OrderLine{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	const linesQuery = `
SELECT order_id::text, book_id::text, title, price_cents, quantity
FROM order_items
WHERE order_id = ANY($1::uuid[])
ORDER BY order_id, position ASC
`
	lineRows, err := r.pool.Query(ctx, linesQuery, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			orderID string
			line    domain.OrderLine
		)
		if err := lineRows.Scan(&orderID, &line.BookID, &line.Title, &line.PriceCents, &line.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
