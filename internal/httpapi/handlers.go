package httpapi

import (
	"errors"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bazarlab/chatshop/internal/chat"
	"github.com/bazarlab/chatshop/internal/report"
	"github.com/bazarlab/chatshop/internal/store"
	"github.com/bazarlab/chatshop/internal/whatsapp"
)

// LoginRequest is the credential payload for the hardcoded role check.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChatRequest is one storefront chat message.
type ChatRequest struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

// AddOrderRequest asks to purchase one unit by exact product name.
type AddOrderRequest struct {
	ProductName string `json:"product_name" binding:"required"`
	User        string `json:"user"`
}

// UpdateOrderRequest overwrites an order's status.
type UpdateOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// Handler contains the HTTP handlers.
type Handler struct {
	orders      OrderService
	catalog     CatalogService
	responder   ChatResponder
	wa          *whatsapp.Client
	verifyToken string
	invoiceDir  string
	tracer      trace.Tracer
}

// NewHandler creates a handler with its collaborators injected.
func NewHandler(orders OrderService, catalog CatalogService, responder ChatResponder, wa *whatsapp.Client, verifyToken, invoiceDir string, tracer trace.Tracer) *Handler {
	return &Handler{
		orders:      orders,
		catalog:     catalog,
		responder:   responder,
		wa:          wa,
		verifyToken: verifyToken,
		invoiceDir:  invoiceDir,
		tracer:      tracer,
	}
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "chatshop",
	})
}

// Login performs the storefront's hardcoded role check.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	user := strings.ToLower(strings.TrimSpace(req.Username))
	switch {
	case user == "admin" && req.Password == "1234":
		c.JSON(http.StatusOK, gin.H{"status": "success", "role": "admin"})
	case user == "staff" && req.Password == "1234":
		c.JSON(http.StatusOK, gin.H{"status": "success", "role": "staff"})
	case user != "":
		c.JSON(http.StatusOK, gin.H{"status": "success", "role": "guest"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "fail", "message": "❌ Invalid login"})
	}
}

// ListProducts returns the catalog in file order.
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// ListOrders returns every order in creation order.
func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.orders.List())
}

// Chat classifies a message and returns the reply. Classification never
// fails outward; every outcome is a reply string.
func (h *Handler) Chat(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "chat_respond")
	defer span.End()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := strings.TrimSpace(req.User)
	if user == "" {
		user = "guest"
	}
	span.SetAttributes(attribute.String("chat.user", user))

	reply := h.responder.Respond(ctx, req.Message, user)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// AddOrder places an order for one unit of the named product.
func (h *Handler) AddOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "place_order")
	defer span.End()

	var req AddOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	user := strings.TrimSpace(req.User)
	if user == "" {
		user = "guest"
	}
	span.SetAttributes(
		attribute.String("order.product", req.ProductName),
		attribute.String("order.user", user),
	)

	o, invoicePath, err := h.orders.PlaceOrder(ctx, strings.TrimSpace(req.ProductName), user)
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "Product not found"})
		return
	case errors.Is(err, store.ErrOutOfStock):
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "স্টক নেই"})
		return
	case err != nil:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("order.id", o.OrderID))
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"order_id": o.OrderID,
		"invoice":  path.Join("invoices", filepath.Base(invoicePath)),
	})
}

// UpdateOrder overwrites an order's status; any status text is accepted.
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	err := h.orders.UpdateStatus(c.Request.Context(), strings.TrimSpace(req.OrderID), strings.TrimSpace(req.Status))
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "fail", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Reports returns the sales aggregates as of now.
func (h *Handler) Reports(c *gin.Context) {
	s := report.Summarize(h.orders.List(), time.Now())
	c.JSON(http.StatusOK, gin.H{
		"today":      s.Today,
		"month":      s.Month,
		"year":       s.Year,
		"categories": s.Categories,
	})
}

// ServeInvoice serves a generated PDF by file name.
func (h *Handler) ServeInvoice(c *gin.Context) {
	name := filepath.Base(c.Param("file"))
	c.File(filepath.Join(h.invoiceDir, name))
}

// VerifyWebhook answers the provider's subscription handshake: echo the
// challenge when the verify token matches, 403 otherwise.
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")
	if mode == "subscribe" && token == h.verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "forbidden")
}

// ReceiveWebhook relays an inbound WhatsApp message through the chat
// responder and sends the flattened reply back. Always answers 200 "ok":
// the provider retries on anything else.
func (h *Handler) ReceiveWebhook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "whatsapp_relay")
	defer span.End()

	var env whatsapp.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		log.Printf("⚠️ WhatsApp webhook decode failed: %v", err)
		c.String(http.StatusOK, "ok")
		return
	}
	msg, ok := env.FirstMessage()
	if !ok {
		c.String(http.StatusOK, "ok")
		return
	}
	span.SetAttributes(attribute.String("whatsapp.from", msg.From))

	reply := h.responder.Respond(ctx, msg.Body(), "whatsapp:"+msg.From)
	text := whatsapp.StripHTML(reply)
	if text == "" {
		text = chat.DefaultReply
	}
	if err := h.wa.SendText(ctx, msg.From, text); err != nil {
		span.RecordError(err)
		log.Printf("⚠️ WhatsApp send failed: %v", err)
	}
	c.String(http.StatusOK, "ok")
}
