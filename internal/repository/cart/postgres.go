package cart

import (
	"context"
	"errors"
	"fmt"

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

func ownerClause(owner domain.OwnerKey) (string, error) {
	switch owner.Kind {
	case domain.OwnerUser:
		return "user_id = $1", nil
	case domain.OwnerSession:
		return "session_id = $1", nil
	default:
		return "", fmt.Errorf("invalid owner kind %q", owner.Kind)
	}
}

func (r *postgresRepo) Load(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	clause, err := ownerClause(owner)
	if err != nil {
		return nil, err
	}
	q := `
SELECT id::text, user_id, session_id, created_at, updated_at
FROM carts
WHERE ` + clause

	var cart domain.Cart
	err = r.pool.QueryRow(ctx, q, owner.ID).Scan(
		&cart.ID, &cart.UserID, &cart.SessionID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT book_id::text, title, author, category, cover_image, price_cents, old_price_cents, quantity
FROM cart_items
WHERE cart_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.BookID, &item.Title, &item.Author, &item.Category,
			&item.CoverImage, &item.PriceCents, &item.OldPriceCents, &item.Quantity,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cart.Recompute()
	return &cart, nil
}

// Save writes the cart row and replaces its item set inside one transaction so
// a concurrent reader never observes a half-applied mutation.
func (r *postgresRepo) Save(ctx context.Context, cart *domain.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if cart.ID == "" {
		const insert = `
INSERT INTO carts (user_id, session_id)
VALUES ($1, $2)
RETURNING id::text, created_at, updated_at
`
		if err := tx.QueryRow(ctx, insert, cart.UserID, cart.SessionID).Scan(
			&cart.ID, &cart.CreatedAt, &cart.UpdatedAt,
		); err != nil {
			return err
		}
	} else {
		const touch = `
UPDATE carts
SET updated_at = now()
WHERE id = $1
RETURNING updated_at
`
		if err := tx.QueryRow(ctx, touch, cart.ID).Scan(&cart.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return err
	}

	for pos, item := range cart.Items {
		const insertItem = `
INSERT INTO cart_items (cart_id, book_id, title, author, category, cover_image, price_cents, old_price_cents, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
		if _, err := tx.Exec(ctx, insertItem,
			cart.ID, item.BookID, item.Title, item.Author, item.Category,
			item.CoverImage, item.PriceCents, item.OldPriceCents, item.Quantity, pos,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, owner domain.OwnerKey) error {
	clause, err := ownerClause(owner)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `DELETE FROM carts WHERE `+clause, owner.ID)
	return err
}
