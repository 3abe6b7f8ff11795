package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
)

type CollectionRepo interface {
	Create(ctx context.Context, c *domain.Collection) error
	GetByID(ctx context.Context, id int64) (*domain.Collection, error)
	List(ctx context.Context) ([]domain.Collection, error)
	Update(ctx context.Context, c *domain.Collection) error
	Delete(ctx context.Context, id int64) error
	ProductCount(ctx context.Context, id int64) (int, error)
}

// ProductFilter narrows List: zero values mean "no filter".
type ProductFilter struct {
	CollectionID int64
	Search       string
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	OrderItemCount(ctx context.Context, productID int64) (int, error)
}

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	OrderCount(ctx context.Context, customerID int64) (int, error)
}

type CartRepo interface {
	Create(ctx context.Context, c *domain.Cart) error
	// GetByID resolves items and their products in a single joined read.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountItems(ctx context.Context, id uuid.UUID) (int, error)
	// UpsertItem merges quantity into an existing (cart, product) row or
	// inserts a new one, as a single guarded statement.
	UpsertItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*domain.CartItem, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
}

type OrderRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
	ItemCount(ctx context.Context, orderID int64) (int, error)
	ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

// CheckoutStore runs fn inside a single database transaction. A non-nil
// error from fn rolls back every write made through tx.
type CheckoutStore interface {
	WithinTx(ctx context.Context, fn func(tx CheckoutTx) error) error
}

type CheckoutTx interface {
	// LockCart takes a row lock on the cart for the duration of the
	// transaction. false means the cart no longer exists.
	LockCart(ctx context.Context, cartID uuid.UUID) (bool, error)
	CartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	InsertOrder(ctx context.Context, customerID int64, status domain.PaymentStatus, placedAt time.Time) (int64, error)
	InsertOrderItems(ctx context.Context, orderID int64, lines []domain.CartItem) ([]domain.OrderItem, error)
	InsertOutbox(ctx context.Context, channel string, payload []byte) error
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID int64, status domain.PaymentStatus) error
	GetStatus(ctx context.Context, orderID int64) (domain.PaymentStatus, bool, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OutboxMessage struct {
	ID         int64
	Channel    string
	Payload    []byte
	RetryCount int
}

// OutboxRepo is consumed by the publisher loop that drains committed
// events to the broker.
type OutboxRepo interface {
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, nextAttempt time.Time) error
}
