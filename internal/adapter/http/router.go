package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RUstamdarvishY/Online-shop/internal/adapter/http/middleware"
	"github.com/RUstamdarvishY/Online-shop/internal/logging"
)

type Handlers struct {
	Carts       *CartHandler
	Orders      *OrderHandler
	Collections *CollectionHandler
	Products    *ProductHandler
	Customers   *CustomerHandler
	Tokens      *TokenHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", h.Tokens.IssueToken)

	v1 := r.Group("/v1")
	{
		// Carts are anonymous: the unguessable cart id is the capability.
		carts := v1.Group("/carts")
		{
			carts.POST("", h.Carts.CreateCart)
			carts.GET("/:cart_id", h.Carts.GetCart)
			carts.DELETE("/:cart_id", h.Carts.DeleteCart)
			carts.GET("/:cart_id/items", h.Carts.ListItems)
			carts.POST("/:cart_id/items", h.Carts.AddItem)
			carts.PATCH("/:cart_id/items/:item_id", h.Carts.UpdateItem)
			carts.DELETE("/:cart_id/items/:item_id", h.Carts.RemoveItem)
		}

		// Catalog reads are public; writes are admin-only.
		v1.GET("/collections", h.Collections.List)
		v1.GET("/collections/:id", h.Collections.Get)
		v1.POST("/collections", authz.Require("catalog.write"), h.Collections.Create)
		v1.PUT("/collections/:id", authz.Require("catalog.write"), h.Collections.Update)
		v1.DELETE("/collections/:id", authz.Require("catalog.write"), h.Collections.Delete)

		v1.GET("/products", h.Products.List)
		v1.GET("/products/:id", h.Products.Get)
		v1.POST("/products", authz.Require("catalog.write"), h.Products.Create)
		v1.PUT("/products/:id", authz.Require("catalog.write"), h.Products.Update)
		v1.DELETE("/products/:id", authz.Require("catalog.write"), h.Products.Delete)

		v1.GET("/customers", authz.Require("customers.read"), h.Customers.List)
		v1.GET("/customers/:id", authz.Require("customers.read"), h.Customers.Get)
		v1.POST("/customers", authz.Require("customers.write"), h.Customers.Create)
		v1.PUT("/customers/:id", authz.Require("customers.write"), h.Customers.Update)
		v1.DELETE("/customers/:id", authz.Require("customers.write"), h.Customers.Delete)

		v1.POST("/orders", authz.Require("orders.write"), h.Orders.Checkout)
		v1.GET("/orders", authz.Require("orders.read"), h.Orders.ListOrders)
		v1.GET("/orders/:id", authz.Require("orders.read"), h.Orders.GetOrder)
		v1.GET("/orders/:id/items", authz.Require("orders.read"), h.Orders.ListOrderItems)
		v1.PATCH("/orders/:id", authz.Require("orders.manage"), h.Orders.UpdateOrderStatus)
		v1.DELETE("/orders/:id", authz.Require("orders.manage"), h.Orders.DeleteOrder)
	}

	return r
}
