// Package order implements the purchase and status-update flows.
package order

import (
	"context"
	"fmt"
	"log"

	"github.com/bazarlab/chatshop/internal/model"
	"github.com/bazarlab/chatshop/internal/pricing"
	"github.com/bazarlab/chatshop/internal/store"
)

// InvoiceRenderer renders an order to a document and returns the path the
// HTTP surface serves it from. A render failure fails the purchase call.
type InvoiceRenderer interface {
	Render(o model.Order) (string, error)
}

// Notifier delivers a best-effort notification. Failures are logged and
// dropped, never surfaced to the purchase caller.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// UseCase contains the order business logic.
type UseCase struct {
	store    *store.Store
	invoices InvoiceRenderer
	notifier Notifier
	taxRate  float64
}

// NewUseCase creates an order use case with its collaborators injected.
func NewUseCase(s *store.Store, invoices InvoiceRenderer, notifier Notifier, taxRate float64) *UseCase {
	return &UseCase{
		store:    s,
		invoices: invoices,
		notifier: notifier,
		taxRate:  taxRate,
	}
}

// PlaceOrder purchases one unit of the exactly-named product for user.
// It returns the persisted order and the invoice path.
//
// Stock decrement, order numbering, and catalog persistence happen as one
// guarded step; if the order record itself cannot be persisted the
// decrement is compensated before the error returns.
func (uc *UseCase) PlaceOrder(ctx context.Context, productName, user string) (*model.Order, string, error) {
	product, orderID, err := uc.store.ReserveStock(productName)
	if err != nil {
		return nil, "", err
	}

	unit := pricing.Parse(product.Price)
	total := pricing.Total(unit, uc.taxRate)
	o := model.NewOrder(orderID, user, product, unit, total, uc.taxRate)

	if err := uc.store.AppendOrder(*o); err != nil {
		if rerr := uc.store.RestockProduct(productName); rerr != nil {
			log.Printf("⚠️ Failed to restock %q after order save failure: %v", productName, rerr)
		}
		return nil, "", fmt.Errorf("failed to persist order: %w", err)
	}

	log.Printf("🛒 Order placed | %s | %s | %s | total %d", o.OrderID, user, productName, o.Total)

	invoicePath, err := uc.invoices.Render(*o)
	if err != nil {
		// Order and stock are already persisted at this point; the
		// invoice failure still fails the call, matching the storefront
		// contract.
		return nil, "", fmt.Errorf("failed to render invoice: %w", err)
	}

	subject := fmt.Sprintf("New Order %s", o.OrderID)
	body := fmt.Sprintf("%s ordered %s. Total: %d", user, productName, o.Total)
	if err := uc.notifier.Send(ctx, subject, body); err != nil {
		log.Printf("⚠️ Email failed: %v", err)
	}

	return o, invoicePath, nil
}

// UpdateStatus overwrites an order's status. Any status text is accepted;
// the ID match is exact but case-insensitive.
func (uc *UseCase) UpdateStatus(ctx context.Context, orderID, status string) error {
	if err := uc.store.UpdateOrderStatus(orderID, status); err != nil {
		return err
	}
	log.Printf("📦 Order %s status -> %s", orderID, status)
	return nil
}

// Get finds an order by case-insensitive exact ID.
func (uc *UseCase) Get(orderID string) (model.Order, bool) {
	return uc.store.OrderByID(orderID)
}

// List returns all orders in creation order.
func (uc *UseCase) List() []model.Order {
	return uc.store.Orders()
}
