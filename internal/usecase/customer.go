package usecase

import (
	"context"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
)

type CustomerService struct {
	customers CustomerRepo
}

func NewCustomerService(customers CustomerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	return s.customers.Create(ctx, c)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, c *domain.Customer) error {
	if _, err := s.customers.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.customers.Update(ctx, c)
}

// Delete is rejected while orders still reference the customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	n, err := s.customers.OrderCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Reason: ReasonHasOrders}
	}
	return s.customers.Delete(ctx, id)
}
