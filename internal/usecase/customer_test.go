package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

func TestCustomerService_DeleteGuard(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	order := placeOrder(t, s)
	svc := usecase.NewCustomerService(customerRepo{s: s})

	err := svc.Delete(ctx, order.CustomerID)
	var cerr *usecase.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, usecase.ReasonHasOrders, cerr.Reason)

	// A customer without orders deletes fine.
	other := s.seedCustomer("Bob", "Ray")
	require.NoError(t, svc.Delete(ctx, other))
}

func TestCustomerService_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	svc := usecase.NewCustomerService(customerRepo{s: s})

	err := svc.Update(ctx, &domain.Customer{ID: 999, FirstName: "Ghost"})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestCustomerService_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	svc := usecase.NewCustomerService(customerRepo{s: s})

	c := &domain.Customer{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"}
	require.NoError(t, svc.Create(ctx, c))
	require.NotZero(t, c.ID)

	c.Phone = "+123456789"
	require.NoError(t, svc.Update(ctx, c))

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "+123456789", got.Phone)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
