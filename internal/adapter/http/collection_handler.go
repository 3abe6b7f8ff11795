package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/RUstamdarvishY/Online-shop/internal/entity"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type CollectionHandler struct {
	catalog *usecase.CatalogService
}

func NewCollectionHandler(catalog *usecase.CatalogService) *CollectionHandler {
	return &CollectionHandler{catalog: catalog}
}

type collectionReq struct {
	Title             string `json:"title" binding:"required,max=200"`
	FeaturedProductID *int64 `json:"featured_product_id"`
}

func (h *CollectionHandler) Create(c *gin.Context) {
	var req collectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	col := &domain.Collection{Title: req.Title, FeaturedProductID: req.FeaturedProductID}
	if err := h.catalog.CreateCollection(ctx, col); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCollectionResp(*col))
}

func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	col, err := h.catalog.GetCollection(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionResp(*col))
}

func (h *CollectionHandler) List(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cols, err := h.catalog.ListCollections(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]collectionResp, 0, len(cols))
	for _, col := range cols {
		out = append(out, toCollectionResp(col))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req collectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	col := &domain.Collection{ID: id, Title: req.Title, FeaturedProductID: req.FeaturedProductID}
	if err := h.catalog.UpdateCollection(ctx, col); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionResp(*col))
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.catalog.DeleteCollection(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
