package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview

	const totals = `
SELECT
    (SELECT COUNT(*) FROM orders),
    (SELECT COALESCE(SUM(total_cents), 0) FROM orders),
    (SELECT COUNT(*) FROM books WHERE trending),
    (SELECT COUNT(*) FROM books)
`
	if err := r.pool.QueryRow(ctx, totals).Scan(
		&ov.TotalOrders, &ov.TotalSalesCents, &ov.TrendingBooks, &ov.TotalBooks,
	); err != nil {
		return nil, err
	}

	const monthly = `
SELECT to_char(created_at, 'YYYY-MM') AS month,
       COALESCE(SUM(total_cents), 0),
       COUNT(*)
FROM orders
GROUP BY month
ORDER BY month ASC
`
	rows, err := r.pool.Query(ctx, monthly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.TotalSalesCents, &m.TotalOrders); err != nil {
			return nil, err
		}
		ov.MonthlySales = append(ov.MonthlySales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ov, nil
}
