package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type ProductHandler struct {
	catalog *usecase.CatalogService
}

func NewProductHandler(catalog *usecase.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type productReq struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	UnitPrice    string `json:"unit_price" binding:"required"`
	Inventory    int    `json:"inventory" binding:"gte=0"`
	CollectionID int64  `json:"collection_id" binding:"required"`
}

func (r productReq) toDomain(id int64) (*domain.Product, error) {
	price, err := decimal.NewFromString(r.UnitPrice)
	if err != nil {
		return nil, &usecase.ValidationError{Field: "unit_price", Reason: "invalid decimal"}
	}
	return &domain.Product{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		UnitPrice:    price,
		Inventory:    r.Inventory,
		CollectionID: r.CollectionID,
	}, nil
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	p, err := req.toDomain(0)
	if err != nil {
		writeError(c, err)
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.catalog.CreateProduct(ctx, p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResp(*p))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p))
}

// List supports ?collection_id=N and ?search=needle (title/description).
func (h *ProductHandler) List(c *gin.Context) {
	var filter usecase.ProductFilter
	if raw := c.Query("collection_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "field": "collection_id"})
			return
		}
		filter.CollectionID = id
	}
	filter.Search = c.Query("search")

	ctx, cancel := reqCtx(c)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]productResp, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResp(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	p, err := req.toDomain(id)
	if err != nil {
		writeError(c, err)
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.catalog.UpdateProduct(ctx, p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
