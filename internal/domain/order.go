package domain

import "time"

// Order is an immutable snapshot of a checkout. It is never mutated or deleted
// after creation, and is associated to a shopper by email rather than a user
// foreign key.
type Order struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    Address     `json:"address"`
	Lines      []OrderLine `json:"lines"`
	TotalCents int64       `json:"totalCents"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

// OrderLine snapshots the book reference, the unit price the shopper saw, and
// the quantity ordered.
type OrderLine struct {
	BookID     string `json:"bookId"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// ProductIDs returns the flat list of book references, one entry per line.
func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		ids = append(ids, line.BookID)
	}
	return ids
}
