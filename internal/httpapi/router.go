// Package httpapi exposes the storefront over HTTP.
package httpapi

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/bazarlab/chatshop/internal/model"
)

//go:embed web/index.html
var indexPage []byte

// OrderService is the order surface the handlers consume.
type OrderService interface {
	PlaceOrder(ctx context.Context, productName, user string) (*model.Order, string, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	List() []model.Order
}

// CatalogService is the catalog read surface.
type CatalogService interface {
	List() []model.Product
}

// ChatResponder classifies chat messages into replies.
type ChatResponder interface {
	Respond(ctx context.Context, message, user string) string
}

// NewRouter builds the gin engine with all storefront routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("chatshop"))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
	r.GET("/health", h.HealthCheck)

	r.POST("/login", h.Login)
	r.GET("/products", h.ListProducts)
	r.GET("/orders", h.ListOrders)
	r.POST("/chat", h.Chat)
	r.POST("/add_order", h.AddOrder)
	r.POST("/update_order", h.UpdateOrder)
	r.GET("/reports", h.Reports)
	r.GET("/invoices/:file", h.ServeInvoice)

	r.GET("/webhook/whatsapp", h.VerifyWebhook)
	r.POST("/webhook/whatsapp", h.ReceiveWebhook)

	return r
}
