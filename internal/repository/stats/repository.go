package stats

import "context"

// Overview aggregates storefront-wide figures for the admin dashboard.
type Overview struct {
	TotalOrders     int64          `json:"totalOrders"`
	TotalSalesCents int64          `json:"totalSalesCents"`
	TrendingBooks   int64          `json:"trendingBooks"`
	TotalBooks      int64          `json:"totalBooks"`
	MonthlySales    []MonthlySales `json:"monthlySales"`
}

// MonthlySales is one month's order count and revenue, keyed "YYYY-MM".
type MonthlySales struct {
	Month           string `json:"month"`
	TotalSalesCents int64  `json:"totalSalesCents"`
	TotalOrders     int64  `json:"totalOrders"`
}

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}
