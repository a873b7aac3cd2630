package domain

import "testing"

func bookA() Book {
	return Book{ID: "a", Title: "Book A", Author: "Author A", Category: "fiction", NewPriceCents: 1000, OldPriceCents: 1500}
}

func bookB() Book {
	return Book{ID: "b", Title: "Book B", Category: "business", NewPriceCents: 500}
}

func TestClampQuantity(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 1},
		{0, 1},
		{1, 1},
		{50, 50},
		{99, 99},
		{100, 99},
		{150, 99},
	}
	for _, tc := range cases {
		if got := ClampQuantity(tc.in); got != tc.want {
			t.Fatalf("ClampQuantity(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSnapshotItemCopiesCatalogFields(t *testing.T) {
	item := SnapshotItem(bookA(), 2)
	if item.BookID != "a" || item.Title != "Book A" || item.Author != "Author A" {
		t.Fatalf("unexpected snapshot %+v", item)
	}
	if item.PriceCents != 1000 || item.OldPriceCents != 1500 {
		t.Fatalf("unexpected snapshot prices %+v", item)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
}

func TestSnapshotItemClampsQuantity(t *testing.T) {
	if got := SnapshotItem(bookA(), 0).Quantity; got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
	if got := SnapshotItem(bookA(), 500).Quantity; got != 99 {
		t.Fatalf("expected clamp to 99, got %d", got)
	}
}

func TestAddNewLine(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	cart.Add(SnapshotItem(bookA(), 2))
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.TotalItems != 2 || cart.TotalCents != 2000 {
		t.Fatalf("unexpected totals %d/%d", cart.TotalItems, cart.TotalCents)
	}
}

func TestAddSameBookIncrementsQuantity(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	cart.Add(SnapshotItem(bookA(), 2))
	cart.Add(SnapshotItem(bookA(), 3))
	if len(cart.Items) != 1 {
		t.Fatalf("expected single line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.TotalCents != 5*1000 {
		t.Fatalf("expected total 5000, got %d", cart.TotalCents)
	}
}

func TestAddSumIsOrderIndependentUpToCap(t *testing.T) {
	quantities := []int{40, 35, 50}
	forward := NewCart(UserKey("u1"))
	reversed := NewCart(UserKey("u1"))
	for _, q := range quantities {
		forward.Add(SnapshotItem(bookA(), q))
	}
	for i := len(quantities) - 1; i >= 0; i-- {
		reversed.Add(SnapshotItem(bookA(), quantities[i]))
	}
	if forward.Items[0].Quantity != 99 || reversed.Items[0].Quantity != 99 {
		t.Fatalf("expected both capped at 99, got %d and %d", forward.Items[0].Quantity, reversed.Items[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	cart := NewCart(SessionKey("s1"))
	cart.Add(SnapshotItem(bookA(), 1))
	cart.Add(SnapshotItem(bookB(), 1))
	cart.Add(SnapshotItem(bookA(), 1))
	if cart.Items[0].BookID != "a" || cart.Items[1].BookID != "b" {
		t.Fatalf("insertion order not preserved: %+v", cart.Items)
	}
}

func TestSetQuantityClamps(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	cart.Add(SnapshotItem(bookA(), 1))

	if err := cart.SetQuantity("a", 150); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 99 {
		t.Fatalf("expected clamp to 99, got %d", cart.Items[0].Quantity)
	}

	if err := cart.SetQuantity("a", -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", cart.Items[0].Quantity)
	}
}

func TestSetQuantityMissingLine(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	if err := cart.SetQuantity("missing", 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	cart.Add(SnapshotItem(bookA(), 2))
	before := *cart

	cart.Remove("missing")

	if len(cart.Items) != 1 || cart.TotalItems != before.TotalItems || cart.TotalCents != before.TotalCents {
		t.Fatalf("remove of absent item changed the cart: %+v", cart)
	}
}

func TestRemoveDropsLine(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	cart.Add(SnapshotItem(bookA(), 2))
	cart.Add(SnapshotItem(bookB(), 1))

	cart.Remove("a")

	if len(cart.Items) != 1 || cart.Items[0].BookID != "b" {
		t.Fatalf("unexpected items after remove: %+v", cart.Items)
	}
	if cart.TotalItems != 1 || cart.TotalCents != 500 {
		t.Fatalf("totals not recomputed: %d/%d", cart.TotalItems, cart.TotalCents)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	cart := NewCart(SessionKey("s1"))
	cart.Add(SnapshotItem(bookA(), 3))

	cart.Clear()
	cart.Clear()

	if len(cart.Items) != 0 || cart.TotalItems != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestTotalsAlwaysMatchLines(t *testing.T) {
	cart := NewCart(UserKey("u1"))
	cart.Add(SnapshotItem(bookA(), 2))
	cart.Add(SnapshotItem(bookB(), 4))
	cart.SetQuantity("b", 1)
	cart.Remove("a")
	cart.Add(SnapshotItem(bookA(), 7))

	wantItems := 0
	var wantCents int64
	for _, item := range cart.Items {
		wantItems += item.Quantity
		wantCents += item.PriceCents * int64(item.Quantity)
	}
	if cart.TotalItems != wantItems || cart.TotalCents != wantCents {
		t.Fatalf("derived totals drifted: %d/%d want %d/%d", cart.TotalItems, cart.TotalCents, wantItems, wantCents)
	}
}

func TestOwnerKey(t *testing.T) {
	user := NewCart(UserKey("u1"))
	if got := user.Owner(); got.Kind != OwnerUser || got.ID != "u1" {
		t.Fatalf("unexpected owner %+v", got)
	}
	guest := NewCart(SessionKey("s1"))
	if got := guest.Owner(); got.Kind != OwnerSession || got.ID != "s1" {
		t.Fatalf("unexpected owner %+v", got)
	}
	if guest.UserID != nil {
		t.Fatalf("guest cart must not carry a user id")
	}
}
