package cart

import (
	"context"
	"errors"
	"testing"

	"bookstore-api/internal/domain"
)

type stubCartStore struct {
	carts       map[string]*domain.Cart
	loadErr     error
	saveErr     error
	deleteErr   error
	saveCalls   int
	deleteCalls int
	lastDeleted domain.OwnerKey
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: map[string]*domain.Cart{}}
}

func storeKey(owner domain.OwnerKey) string {
	return string(owner.Kind) + ":" + owner.ID
}

func (s *stubCartStore) Load(_ context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	cart, ok := s.carts[storeKey(owner)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem{}, cart.Items...)
	return &copied, nil
}

func (s *stubCartStore) Save(_ context.Context, cart *domain.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saveCalls++
	if cart.ID == "" {
		cart.ID = "cart-1"
	}
	copied := *cart
	copied.Items = append([]domain.CartItem{}, cart.Items...)
	s.carts[storeKey(cart.Owner())] = &copied
	return nil
}

func (s *stubCartStore) Delete(_ context.Context, owner domain.OwnerKey) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleteCalls++
	s.lastDeleted = owner
	delete(s.carts, storeKey(owner))
	return nil
}

type stubCatalog struct {
	books map[string]domain.Book
	err   error
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

func catalogWith(books ...domain.Book) *stubCatalog {
	m := make(map[string]domain.Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return &stubCatalog{books: m}
}

func bookA() domain.Book {
	return domain.Book{ID: "a", Title: "Book A", NewPriceCents: 1000}
}

func bookB() domain.Book {
	return domain.Book{ID: "b", Title: "Book B", NewPriceCents: 500}
}

func TestLoadAbsentReturnsEmptyCart(t *testing.T) {
	svc := &Service{carts: newStubCartStore(), books: catalogWith()}
	cart, err := svc.Load(context.Background(), domain.UserKey("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "" || len(cart.Items) != 0 {
		t.Fatalf("expected fresh unsaved cart, got %+v", cart)
	}
	if cart.Owner() != domain.UserKey("u1") {
		t.Fatalf("unexpected owner %+v", cart.Owner())
	}
}

func TestLoadStoreFailureIsTransient(t *testing.T) {
	store := newStubCartStore()
	store.loadErr = errors.New("connection refused")
	svc := &Service{carts: store, books: catalogWith()}
	_, err := svc.Load(context.Background(), domain.UserKey("u1"))
	if !errors.Is(err, domain.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestAddItemUnknownBook(t *testing.T) {
	svc := &Service{carts: newStubCartStore(), books: catalogWith()}
	_, err := svc.AddItem(context.Background(), domain.UserKey("u1"), "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemCatalogFailureIsTransient(t *testing.T) {
	svc := &Service{carts: newStubCartStore(), books: &stubCatalog{err: errors.New("timeout")}}
	_, err := svc.AddItem(context.Background(), domain.UserKey("u1"), "a", 1)
	if !errors.Is(err, domain.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("catalog timeout must not look like not-found")
	}
}

func TestAddItemSnapshotsCatalogPrice(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA())}

	cart, err := svc.AddItem(context.Background(), domain.SessionKey("s1"), "a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].PriceCents != 1000 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", cart)
	}
	if cart.TotalItems != 2 || cart.TotalCents != 2000 {
		t.Fatalf("unexpected totals %d/%d", cart.TotalItems, cart.TotalCents)
	}
	if store.saveCalls != 1 {
		t.Fatalf("expected one save, got %d", store.saveCalls)
	}
}

func TestAddItemTwiceMergesLine(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA())}
	owner := domain.UserKey("u1")

	if _, err := svc.AddItem(context.Background(), owner, "a", 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := svc.AddItem(context.Background(), owner, "a", 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Fatalf("expected single line qty 5, got %+v", cart.Items)
	}
	if cart.TotalCents != 5000 {
		t.Fatalf("expected total 5000, got %d", cart.TotalCents)
	}
}

func TestAddItemKeepsSnapshotWhenCatalogPriceChanges(t *testing.T) {
	store := newStubCartStore()
	catalog := catalogWith(bookA())
	svc := &Service{carts: store, books: catalog}
	owner := domain.UserKey("u1")

	if _, err := svc.AddItem(context.Background(), owner, "a", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Catalog price changes after the item was added.
	changed := bookA()
	changed.NewPriceCents = 9999
	catalog.books["a"] = changed

	cart, err := svc.Load(context.Background(), owner)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cart.Items[0].PriceCents != 1000 {
		t.Fatalf("snapshot price not preserved: %d", cart.Items[0].PriceCents)
	}
}

func TestUpdateQuantityClamps(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA())}
	owner := domain.UserKey("u1")

	if _, err := svc.AddItem(context.Background(), owner, "a", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.UpdateQuantity(context.Background(), owner, "a", 150)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cart.Items[0].Quantity != 99 {
		t.Fatalf("expected clamp to 99, got %d", cart.Items[0].Quantity)
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc := &Service{carts: newStubCartStore(), books: catalogWith(bookA())}
	_, err := svc.UpdateQuantity(context.Background(), domain.UserKey("u1"), "a", 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA())}
	owner := domain.UserKey("u1")

	if _, err := svc.AddItem(context.Background(), owner, "a", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	before, _ := svc.Load(context.Background(), owner)

	cart, err := svc.RemoveItem(context.Background(), owner, "missing")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(cart.Items) != len(before.Items) || cart.TotalCents != before.TotalCents {
		t.Fatalf("remove of absent item changed the cart")
	}
}

func TestRemoveItemOnAbsentCartDoesNotPersist(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith()}

	cart, err := svc.RemoveItem(context.Background(), domain.SessionKey("s1"), "a")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cart.ID != "" || store.saveCalls != 0 {
		t.Fatalf("absent cart should stay lazy, got id=%q saves=%d", cart.ID, store.saveCalls)
	}
}

func TestClearIdempotent(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA())}
	owner := domain.UserKey("u1")

	if _, err := svc.AddItem(context.Background(), owner, "a", 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Clear(context.Background(), owner); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	cart, err := svc.Clear(context.Background(), owner)
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalItems != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestMergeAddsGuestItemsAndDeletesGuestCart(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA(), bookB())}

	guestCart, _ := svc.AddItem(context.Background(), domain.SessionKey("s1"), "a", 2)
	if guestCart.TotalItems != 2 {
		t.Fatalf("guest cart setup failed: %+v", guestCart)
	}

	cart, err := svc.Merge(context.Background(), "u1", "s1", []MergeItem{
		{BookID: "a", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected merged cart %+v", cart.Items)
	}
	if store.deleteCalls != 1 || store.lastDeleted != domain.SessionKey("s1") {
		t.Fatalf("guest cart not deleted: calls=%d key=%+v", store.deleteCalls, store.lastDeleted)
	}
}

func TestMergeCapsConflictingQuantities(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookB())}
	owner := domain.UserKey("u1")

	if _, err := svc.AddItem(context.Background(), owner, "b", 99); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.Merge(context.Background(), "u1", "s1", []MergeItem{
		{BookID: "b", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if cart.Items[0].Quantity != 99 {
		t.Fatalf("expected cap at 99, got %d", cart.Items[0].Quantity)
	}
}

func TestMergeSkipsVanishedBooks(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA(), bookB())}

	cart, err := svc.Merge(context.Background(), "u1", "s1", []MergeItem{
		{BookID: "a", Quantity: 1},
		{BookID: "gone", Quantity: 5},
		{BookID: "b", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines after skipping vanished book, got %d", len(cart.Items))
	}
	if cart.Items[0].BookID != "a" || cart.Items[1].BookID != "b" {
		t.Fatalf("unexpected lines %+v", cart.Items)
	}
}

func TestMergeTwiceWithoutResetStacksUpToCap(t *testing.T) {
	store := newStubCartStore()
	svc := &Service{carts: store, books: catalogWith(bookA())}
	snapshot := []MergeItem{{BookID: "a", Quantity: 60}}

	first, err := svc.Merge(context.Background(), "u1", "s1", snapshot)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if first.Items[0].Quantity != 60 {
		t.Fatalf("expected 60 after first merge, got %d", first.Items[0].Quantity)
	}

	// Replaying the same snapshot into the already-merged cart is additive,
	// bounded by the per-line cap.
	second, err := svc.Merge(context.Background(), "u1", "s1", snapshot)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if second.Items[0].Quantity != 99 {
		t.Fatalf("expected cap at 99 after replay, got %d", second.Items[0].Quantity)
	}
}

func TestMergeIntoFreshCartMatchesSingleMerge(t *testing.T) {
	snapshot := []MergeItem{{BookID: "a", Quantity: 60}, {BookID: "b", Quantity: 2}}

	runMerge := func() *domain.Cart {
		svc := &Service{carts: newStubCartStore(), books: catalogWith(bookA(), bookB())}
		cart, err := svc.Merge(context.Background(), "u1", "s1", snapshot)
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		return cart
	}

	once := runMerge()
	again := runMerge()
	if len(once.Items) != len(again.Items) {
		t.Fatalf("merge into a fresh cart is not repeatable")
	}
	for i := range once.Items {
		if once.Items[i].Quantity != again.Items[i].Quantity {
			t.Fatalf("line %d differs: %d vs %d", i, once.Items[i].Quantity, again.Items[i].Quantity)
		}
	}
}

func TestMergeTransientOnGuestDeleteFailure(t *testing.T) {
	store := newStubCartStore()
	store.deleteErr = errors.New("db down")
	svc := &Service{carts: store, books: catalogWith(bookA())}

	_, err := svc.Merge(context.Background(), "u1", "s1", []MergeItem{{BookID: "a", Quantity: 1}})
	if !errors.Is(err, domain.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
