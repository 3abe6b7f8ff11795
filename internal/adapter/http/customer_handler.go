package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type CustomerHandler struct {
	customers *usecase.CustomerService
}

func NewCustomerHandler(customers *usecase.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type customerReq struct {
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required,max=15"`
	Street    string `json:"street" binding:"required,max=150"`
	House     string `json:"house" binding:"required,max=40"`
	Korpus    string `json:"korpus" binding:"max=50"`
	Flat      string `json:"flat" binding:"required,max=50"`
}

func (r customerReq) toDomain(id int64) *domain.Customer {
	return &domain.Customer{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Street:    r.Street,
		House:     r.House,
		Korpus:    r.Korpus,
		Flat:      r.Flat,
	}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cust := req.toDomain(0)
	if err := h.customers.Create(ctx, cust); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResp(*cust))
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cust, err := h.customers.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResp(*cust))
}

func (h *CustomerHandler) List(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	customers, err := h.customers.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]customerResp, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toCustomerResp(cust))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	cust := req.toDomain(id)
	if err := h.customers.Update(ctx, cust); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResp(*cust))
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.customers.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
