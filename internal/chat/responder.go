// Package chat classifies storefront messages and produces replies.
//
// Classification is an ordered rule table evaluated first-match-wins:
// order-status lookup, catalog listing, product card, generative
// fallback. The ordering is part of the contract — a message containing
// both an ORDER token and a product name must answer with the order
// status, never the product card.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazarlab/chatshop/internal/model"
)

// DefaultReply is sent whenever the generative fallback cannot produce
// text.
const DefaultReply = "🤖 আমি সাহায্য করতে প্রস্তুত! প্রোডাক্টের নাম বলুন।"

// emptyReply answers an empty message without touching the history.
const emptyReply = "🙂 কিছু লিখুন"

// OrderLookup finds an order by case-insensitive exact ID.
type OrderLookup interface {
	Get(orderID string) (model.Order, bool)
}

// Catalog is the read side of the product catalog.
type Catalog interface {
	List() []model.Product
	FindByText(text string) (model.Product, bool)
}

// TextGenerator produces free-form text for messages nothing else
// matched. Implementations may fail; the responder degrades to
// DefaultReply and never propagates the error.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HistorySink records chat exchanges.
type HistorySink interface {
	AppendHistory(e model.ChatEntry) error
}

// rule is one classification branch: match decides whether the rule
// fires, reply renders the answer. Rules are evaluated in table order.
type rule struct {
	name  string
	match func(msg string) bool
	reply func(ctx context.Context, msg string) string
}

// Responder classifies messages and appends every exchange to the
// history.
type Responder struct {
	rules     []rule
	orders    OrderLookup
	catalog   Catalog
	generator TextGenerator
	history   HistorySink
	lowStock  int
}

// NewResponder wires a responder. lowStock is the threshold at or below
// which product cards carry a low-stock badge.
func NewResponder(orders OrderLookup, catalog Catalog, generator TextGenerator, history HistorySink, lowStock int) *Responder {
	r := &Responder{
		orders:    orders,
		catalog:   catalog,
		generator: generator,
		history:   history,
		lowStock:  lowStock,
	}
	r.rules = []rule{
		{name: "order-status", match: r.matchOrderStatus, reply: r.replyOrderStatus},
		{name: "catalog-listing", match: r.matchListing, reply: r.replyListing},
		{name: "product-card", match: r.matchProduct, reply: r.replyProduct},
		{name: "generative-fallback", match: matchAlways, reply: r.replyGenerated},
	}
	return r
}

// Respond classifies message and returns the reply. Every non-empty
// exchange is appended to the history, whichever rule fired.
func (r *Responder) Respond(ctx context.Context, message, user string) string {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return emptyReply
	}

	var reply string
	for _, rl := range r.rules {
		if rl.match(msg) {
			reply = rl.reply(ctx, msg)
			break
		}
	}

	entry := model.ChatEntry{
		ID:      uuid.New().String(),
		Time:    time.Now().Format(model.TimeLayout),
		User:    user,
		Message: msg,
		Reply:   reply,
	}
	if err := r.history.AppendHistory(entry); err != nil {
		log.Printf("⚠️ Failed to record chat history: %v", err)
	}
	return reply
}

func matchAlways(string) bool { return true }

func (r *Responder) matchOrderStatus(msg string) bool {
	return strings.Contains(strings.ToUpper(msg), "ORDER")
}

func (r *Responder) replyOrderStatus(_ context.Context, msg string) string {
	var oid string
	for _, tok := range strings.Fields(strings.ToUpper(msg)) {
		if strings.HasPrefix(tok, "ORDER") {
			oid = tok
			break
		}
	}
	if o, ok := r.orders.Get(oid); ok {
		return o.Status
	}
	return "❌ এই অর্ডার আইডি পাওয়া যায়নি।"
}

func (r *Responder) matchListing(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(msg, "লিস্ট") || strings.Contains(lower, "list") || strings.Contains(msg, "কি কি")
}

func (r *Responder) replyListing(context.Context, string) string {
	var items strings.Builder
	for _, p := range r.catalog.List() {
		fmt.Fprintf(&items, "<li>%s — <b>%s</b> (%s, স্টক: %d)</li>", p.Category, p.Name, p.Price, p.Stock)
	}
	listed := items.String()
	if listed == "" {
		listed = "<li>ফাঁকা</li>"
	}
	return fmt.Sprintf("<b>আমাদের প্রোডাক্ট লিস্ট:</b><ul class='m-0'>%s</ul>", listed)
}

func (r *Responder) matchProduct(msg string) bool {
	_, ok := r.catalog.FindByText(msg)
	return ok
}

func (r *Responder) replyProduct(_ context.Context, msg string) string {
	p, ok := r.catalog.FindByText(msg)
	if !ok {
		return DefaultReply
	}
	low := ""
	if p.Stock <= r.lowStock {
		low = " <span class='badge badge-low ms-1'>Low</span>"
	}
	img := ""
	if p.Image != "" {
		img = fmt.Sprintf("<img src='/%s' class='mb-2' alt='%s'>", p.Image, p.Name)
	}
	return fmt.Sprintf(
		"<div class='product-card'>%s<b>%s</b>%s<br>💰 %s — 📦 %d স্টক<br>"+
			"<button class='btn btn-sm btn-accent mt-1' onclick=\"placeOrder('%s')\">🛒 Buy Now</button></div>",
		img, p.Name, low, p.Price, p.Stock, p.Name,
	)
}

func (r *Responder) replyGenerated(ctx context.Context, msg string) string {
	text, err := r.generator.Generate(ctx, msg)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("🤖 Text generation failed, using default reply: %v", err)
		}
		return DefaultReply
	}
	return text
}
