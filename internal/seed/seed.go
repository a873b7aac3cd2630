package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type bookSeed struct {
	ID            string
	Title         string
	Author        string
	Description   string
	Category      string
	Trending      bool
	CoverImage    string
	NewPriceCents int64
	OldPriceCents int64
}

// Apply inserts basic catalog data for manual testing. Idempotent via upsert
// on fixed ids.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	books := []bookSeed{
		{
			ID:            "6d1f0a3e-8f1e-4a7b-9a6e-0c9b5b7a0001",
			Title:         "How to Grow Your Online Store",
			Author:        "Alex Morgan",
			Description:   "Practical playbook for scaling a small storefront",
			Category:      "business",
			Trending:      true,
			CoverImage:    "book-1.png",
			NewPriceCents: 2999,
			OldPriceCents: 3999,
		},
		{
			ID:            "6d1f0a3e-8f1e-4a7b-9a6e-0c9b5b7a0002",
			Title:         "The Midnight Library",
			Author:        "Casey Lin",
			Description:   "A novel about the lives we might have lived",
			Category:      "fiction",
			Trending:      true,
			CoverImage:    "book-2.png",
			NewPriceCents: 1599,
			OldPriceCents: 2199,
		},
		{
			ID:            "6d1f0a3e-8f1e-4a7b-9a6e-0c9b5b7a0003",
			Title:         "Cooking for One",
			Author:        "Priya Nair",
			Description:   "Weeknight recipes that scale down, not up",
			Category:      "cooking",
			Trending:      false,
			CoverImage:    "book-3.png",
			NewPriceCents: 1299,
			OldPriceCents: 0,
		},
	}

	for _, b := range books {
		if err := upsertBook(ctx, pool, b); err != nil {
			return fmt.Errorf("upsert book %q: %w", b.Title, err)
		}
	}

	return nil
}

func upsertBook(ctx context.Context, pool *pgxpool.Pool, b bookSeed) error {
	const q = `
INSERT INTO books (id, title, author, description, category, trending, cover_image, new_price_cents, old_price_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    author = EXCLUDED.author,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    trending = EXCLUDED.trending,
    cover_image = EXCLUDED.cover_image,
    new_price_cents = EXCLUDED.new_price_cents,
    old_price_cents = EXCLUDED.old_price_cents
`
	_, err := pool.Exec(ctx, q,
		b.ID, b.Title, b.Author, b.Description, b.Category,
		b.Trending, b.CoverImage, b.NewPriceCents, b.OldPriceCents,
	)
	return err
}
