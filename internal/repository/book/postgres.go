package book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"bookstore-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id::text, title, author, description, category, trending, cover_image, new_price_cents, old_price_cents, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (title, author, description, category, trending, cover_image, new_price_cents, old_price_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + bookColumns
	row := r.pool.QueryRow(ctx, q,
		book.Title, book.Author, book.Description, book.Category,
		book.Trending, book.CoverImage, book.NewPriceCents, book.OldPriceCents,
	)
	created, err := scanBook(row)
	if err != nil {
		r.logger.Printf("book repo: create title=%q error=%v", book.Title, err)
		return nil, err
	}
	r.logger.Printf("book repo: created id=%s title=%q", created.ID, created.Title)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	book, err := scanBook(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return book, nil
}

// GetByIDs resolves the given ids, preserving input order and silently
// omitting ids that no longer exist.
func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = ANY($1::uuid[])`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("book repo: get-by-ids error=%v", err)
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]domain.Book, len(ids))
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		byID[book.ID] = *book
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]domain.Book, 0, len(byID))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if book, ok := byID[id]; ok {
			result = append(result, book)
		}
	}
	return result, nil
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books`
	var (
		conds []string
		args  []interface{}
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Trending != nil {
		args = append(args, *filter.Trending)
		conds = append(conds, fmt.Sprintf("trending = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("book repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, book domain.Book) (*domain.Book, error) {
	const q = `
UPDATE books
SET title = $2, author = $3, description = $4, category = $5, trending = $6,
    cover_image = $7, new_price_cents = $8, old_price_cents = $9
WHERE id = $1
RETURNING ` + bookColumns
	row := r.pool.QueryRow(ctx, q,
		book.ID, book.Title, book.Author, book.Description, book.Category,
		book.Trending, book.CoverImage, book.NewPriceCents, book.OldPriceCents,
	)
	updated, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: update id=%s error=%v", book.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("book repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserts a book keeping a caller-provided id, or updates the existing
// row. Used by the seeder and the CSV importer.
func (r *postgresRepo) Upsert(ctx context.Context, book domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (id, title, author, description, category, trending, cover_image, new_price_cents, old_price_cents)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    author = EXCLUDED.author,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    trending = EXCLUDED.trending,
    cover_image = EXCLUDED.cover_image,
    new_price_cents = EXCLUDED.new_price_cents,
    old_price_cents = EXCLUDED.old_price_cents
RETURNING ` + bookColumns
	row := r.pool.QueryRow(ctx, q,
		book.ID, book.Title, book.Author, book.Description, book.Category,
		book.Trending, book.CoverImage, book.NewPriceCents, book.OldPriceCents,
	)
	upserted, err := scanBook(row)
	if err != nil {
		r.logger.Printf("book repo: upsert title=%q error=%v", book.Title, err)
		return nil, err
	}
	return upserted, nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Category,
		&b.Trending, &b.CoverImage, &b.NewPriceCents, &b.OldPriceCents, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
