package domain

import "time"

// Quantity bounds for a single cart line. Out-of-range requests are clamped,
// never rejected.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ClampQuantity constrains q into [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

type Cart struct {
	ID         string     `json:"id"`
	UserID     *string    `json:"userId,omitempty"`
	SessionID  *string    `json:"-"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalCents int64      `json:"totalCents"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem is a denormalized snapshot of catalog fields taken when the book was
// added. Cart views render the snapshot and do not re-read the catalog, so the
// price a shopper saw at add time is the price used for totals.
type CartItem struct {
	BookID        string `json:"bookId"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	Category      string `json:"category,omitempty"`
	CoverImage    string `json:"coverImage,omitempty"`
	PriceCents    int64  `json:"priceCents"`
	OldPriceCents int64  `json:"oldPriceCents,omitempty"`
	Quantity      int    `json:"quantity"`
}

// NewCart returns an empty, not-yet-persisted cart for the given owner.
func NewCart(owner OwnerKey) *Cart {
	cart := &Cart{Items: []CartItem{}}
	switch owner.Kind {
	case OwnerUser:
		id := owner.ID
		cart.UserID = &id
	case OwnerSession:
		id := owner.ID
		cart.SessionID = &id
	}
	return cart
}

// Owner returns the key this cart belongs to.
func (c *Cart) Owner() OwnerKey {
	if c.UserID != nil {
		return UserKey(*c.UserID)
	}
	if c.SessionID != nil {
		return SessionKey(*c.SessionID)
	}
	return OwnerKey{}
}

// SnapshotItem copies catalog fields into a line item by value. The clamp on
// quantity applies here so a fresh line always lands in [1, 99].
func SnapshotItem(book Book, quantity int) CartItem {
	return CartItem{
		BookID:        book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Category:      book.Category,
		CoverImage:    book.CoverImage,
		PriceCents:    book.NewPriceCents,
		OldPriceCents: book.OldPriceCents,
		Quantity:      ClampQuantity(quantity),
	}
}

// Add appends the item, or if a line for the same book exists, adds the
// quantities capped at MaxQuantity. Insertion order of distinct books is
// preserved.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].BookID == item.BookID {
			q := c.Items[i].Quantity + item.Quantity
			if q > MaxQuantity {
				q = MaxQuantity
			}
			c.Items[i].Quantity = q
			c.Recompute()
			return
		}
	}
	item.Quantity = ClampQuantity(item.Quantity)
	c.Items = append(c.Items, item)
	c.Recompute()
}

// SetQuantity clamps the requested quantity into [1, 99] for an existing line.
// Returns ErrNotFound if the book is not in the cart.
func (c *Cart) SetQuantity(bookID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity = ClampQuantity(quantity)
			c.Recompute()
			return nil
		}
	}
	return ErrNotFound
}

// Remove drops the line for bookID. Removing an absent book is a no-op.
func (c *Cart) Remove(bookID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.BookID != bookID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.Recompute()
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recompute()
}

// Recompute refreshes the derived totals from the current lines. Every
// mutation calls it; the persistence layer calls it after loading so totals
// are never trusted as stored state.
func (c *Cart) Recompute() {
	totalItems := 0
	var totalCents int64
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalCents += item.PriceCents * int64(item.Quantity)
	}
	c.TotalItems = totalItems
	c.TotalCents = totalCents
}
