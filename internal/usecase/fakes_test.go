package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

// memStore is an in-memory stand-in for the MySQL layer. It implements
// every repo port plus CheckoutStore, and WithinTx restores a snapshot on
// error so rollback behavior can be asserted.
type memStore struct {
	mu sync.Mutex

	collections map[int64]domain.Collection
	products    map[int64]domain.Product
	customers   map[int64]domain.Customer
	carts       map[uuid.UUID]domain.Cart
	cartItems   map[uuid.UUID][]domain.CartItem
	orders      map[int64]domain.Order
	orderItems  map[int64][]domain.OrderItem
	outbox      []usecase.OutboxMessage

	nextID int64

	// failOn forces an error from the named tx method, to exercise rollback.
	failOn string
}

func newMemStore() *memStore {
	return &memStore{
		collections: map[int64]domain.Collection{},
		products:    map[int64]domain.Product{},
		customers:   map[int64]domain.Customer{},
		carts:       map[uuid.UUID]domain.Cart{},
		cartItems:   map[uuid.UUID][]domain.CartItem{},
		orders:      map[int64]domain.Order{},
		orderItems:  map[int64][]domain.OrderItem{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// --- seeding helpers ---

func (s *memStore) seedCollection(title string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.collections[id] = domain.Collection{ID: id, Title: title}
	return id
}

func (s *memStore) seedProduct(title, price string, collectionID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.products[id] = domain.Product{
		ID:           id,
		Title:        title,
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    10,
		CollectionID: collectionID,
	}
	return id
}

func (s *memStore) seedCustomer(first, last string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.customers[id] = domain.Customer{ID: id, FirstName: first, LastName: last, Email: first + "@example.com"}
	return id
}

func (s *memStore) seedCart() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.carts[id] = domain.Cart{ID: id, CreatedAt: time.Now().UTC()}
	return id
}

// --- CollectionRepo ---

func (s *memStore) Create(ctx context.Context, c *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.collections[c.ID] = *c
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) List(ctx context.Context) ([]domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, c)
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, c *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[c.ID]; !ok {
		return usecase.ErrNotFound
	}
	s.collections[c.ID] = *c
	return nil
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(s.collections, id)
	return nil
}

func (s *memStore) ProductCount(ctx context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.products {
		if p.CollectionID == id {
			n++
		}
	}
	return n, nil
}

// productRepo wraps memStore so ProductRepo's CRUD does not collide with
// CollectionRepo's method set.
type productRepo struct{ s *memStore }

func (r productRepo) Create(ctx context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &p, nil
}

func (r productRepo) List(ctx context.Context, f usecase.ProductFilter) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Product
	for _, p := range r.s.products {
		if f.CollectionID != 0 && p.CollectionID != f.CollectionID {
			continue
		}
		if f.Search != "" && !strings.Contains(p.Title, f.Search) && !strings.Contains(p.Description, f.Search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r productRepo) Update(ctx context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return usecase.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r productRepo) Exists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.products[id]
	return ok, nil
}

func (r productRepo) OrderItemCount(ctx context.Context, productID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, items := range r.s.orderItems {
		for _, it := range items {
			if it.Product.ID == productID {
				n++
			}
		}
	}
	return n, nil
}

type customerRepo struct{ s *memStore }

func (r customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &c, nil
}

func (r customerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return usecase.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

func (r customerRepo) OrderCount(ctx context.Context, customerID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

type cartRepo struct{ s *memStore }

func (r cartRepo) Create(ctx context.Context, c *domain.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.carts[c.ID] = *c
	return nil
}

func (r cartRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.carts[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	c.Items = append([]domain.CartItem(nil), r.s.cartItems[id]...)
	return &c, nil
}

func (r cartRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.carts[id]
	return ok, nil
}

func (r cartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(r.s.carts, id)
	delete(r.s.cartItems, id)
	return nil
}

func (r cartRepo) CountItems(ctx context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.cartItems[id]), nil
}

func (r cartRepo) UpsertItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := r.s.cartItems[cartID]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity += quantity
			out := items[i]
			return &out, nil
		}
	}
	it := domain.CartItem{
		ID:       r.s.id(),
		CartID:   cartID,
		Product:  r.s.products[productID],
		Quantity: quantity,
	}
	r.s.cartItems[cartID] = append(items, it)
	return &it, nil
}

func (r cartRepo) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.cartItems[cartID] {
		if it.ID == itemID {
			return &it, nil
		}
	}
	return nil, usecase.ErrNotFound
}

func (r cartRepo) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := r.s.cartItems[cartID]
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (r cartRepo) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := r.s.cartItems[cartID]
	for i := range items {
		if items[i].ID == itemID {
			r.s.cartItems[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (r cartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]domain.CartItem(nil), r.s.cartItems[cartID]...), nil
}

type orderRepo struct{ s *memStore }

func (r orderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	o.Items = append([]domain.OrderItem(nil), r.s.orderItems[id]...)
	return &o, nil
}

func (r orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Order, 0, len(r.s.orders))
	for id, o := range r.s.orders {
		o.Items = append([]domain.OrderItem(nil), r.s.orderItems[id]...)
		out = append(out, o)
	}
	return out, nil
}

func (r orderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Order
	for id, o := range r.s.orders {
		if o.CustomerID != customerID {
			continue
		}
		o.Items = append([]domain.OrderItem(nil), r.s.orderItems[id]...)
		out = append(out, o)
	}
	return out, nil
}

func (r orderRepo) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return usecase.ErrNotFound
	}
	o.PaymentStatus = status
	r.s.orders[id] = o
	return nil
}

func (r orderRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(r.s.orders, id)
	delete(r.s.orderItems, id)
	return nil
}

func (r orderRepo) ItemCount(ctx context.Context, orderID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[orderID]; !ok {
		return 0, usecase.ErrNotFound
	}
	return len(r.s.orderItems[orderID]), nil
}

func (r orderRepo) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]domain.OrderItem(nil), r.s.orderItems[orderID]...), nil
}

// --- CheckoutStore ---

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	snap.nextID = s.nextID
	for k, v := range s.collections {
		snap.collections[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.carts {
		snap.carts[k] = v
	}
	for k, v := range s.cartItems {
		snap.cartItems[k] = append([]domain.CartItem(nil), v...)
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.orderItems {
		snap.orderItems[k] = append([]domain.OrderItem(nil), v...)
	}
	snap.outbox = append([]usecase.OutboxMessage(nil), s.outbox...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.nextID = snap.nextID
	s.collections = snap.collections
	s.products = snap.products
	s.customers = snap.customers
	s.carts = snap.carts
	s.cartItems = snap.cartItems
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.outbox = snap.outbox
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx usecase.CheckoutTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memTx struct{ s *memStore }

func (t memTx) LockCart(ctx context.Context, cartID uuid.UUID) (bool, error) {
	_, ok := t.s.carts[cartID]
	return ok, nil
}

func (t memTx) CartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	return append([]domain.CartItem(nil), t.s.cartItems[cartID]...), nil
}

func (t memTx) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	_, ok := t.s.customers[customerID]
	return ok, nil
}

func (t memTx) InsertOrder(ctx context.Context, customerID int64, status domain.PaymentStatus, placedAt time.Time) (int64, error) {
	id := t.s.id()
	t.s.orders[id] = domain.Order{ID: id, CustomerID: customerID, PaymentStatus: status, PlacedAt: placedAt}
	return id, nil
}

func (t memTx) InsertOrderItems(ctx context.Context, orderID int64, lines []domain.CartItem) ([]domain.OrderItem, error) {
	if t.s.failOn == "InsertOrderItems" {
		return nil, errors.New("forced insert failure")
	}
	out := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		it := domain.OrderItem{ID: t.s.id(), OrderID: orderID, Product: l.Product, Quantity: l.Quantity}
		t.s.orderItems[orderID] = append(t.s.orderItems[orderID], it)
		out = append(out, it)
	}
	return out, nil
}

func (t memTx) InsertOutbox(ctx context.Context, channel string, payload []byte) error {
	t.s.outbox = append(t.s.outbox, usecase.OutboxMessage{
		ID:      t.s.id(),
		Channel: channel,
		Payload: append([]byte(nil), payload...),
	})
	return nil
}

func (t memTx) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	delete(t.s.carts, cartID)
	delete(t.s.cartItems, cartID)
	return nil
}

// fakeCache records status writes for assertion.
type fakeCache struct {
	mu       sync.Mutex
	statuses map[int64]domain.PaymentStatus
}

func newFakeCache() *fakeCache {
	return &fakeCache{statuses: map[int64]domain.PaymentStatus{}}
}

func (c *fakeCache) SetStatus(ctx context.Context, orderID int64, status domain.PaymentStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[orderID] = status
	return nil
}

func (c *fakeCache) GetStatus(ctx context.Context, orderID int64) (domain.PaymentStatus, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.statuses[orderID]
	return st, ok, nil
}
