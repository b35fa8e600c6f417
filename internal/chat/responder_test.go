package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarlab/chatshop/internal/model"
)

type fakeOrders struct {
	orders map[string]model.Order
}

func (f *fakeOrders) Get(id string) (model.Order, bool) {
	o, ok := f.orders[strings.ToUpper(id)]
	return o, ok
}

type fakeCatalog struct {
	products []model.Product
}

func (f *fakeCatalog) List() []model.Product { return f.products }

func (f *fakeCatalog) FindByText(text string) (model.Product, bool) {
	lower := strings.ToLower(text)
	for _, p := range f.products {
		if strings.Contains(lower, strings.ToLower(p.Name)) || strings.Contains(lower, strings.ToLower(p.Category)) {
			return p, true
		}
	}
	return model.Product{}, false
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(context.Context, string) (string, error) { return f.text, f.err }

type fakeHistory struct {
	entries []model.ChatEntry
}

func (f *fakeHistory) AppendHistory(e model.ChatEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestResponder(gen TextGenerator) (*Responder, *fakeHistory) {
	orders := &fakeOrders{orders: map[string]model.Order{
		"ORDER1001": {OrderID: "ORDER1001", Status: model.OrderStatusConfirmed},
	}}
	cat := &fakeCatalog{products: []model.Product{
		{Category: "ল্যাপটপ", Name: "HP Pavilion 15", Price: "৳65,000", Stock: 5},
		{Category: "মোবাইল", Name: "Redmi Note 13", Price: "৳23,999", Stock: 2},
	}}
	hist := &fakeHistory{}
	return NewResponder(orders, cat, gen, hist, 3), hist
}

func TestOrderStatusBranch(t *testing.T) {
	r, _ := newTestResponder(&fakeGenerator{})

	reply := r.Respond(context.Background(), "ORDER1001", "guest")
	assert.Equal(t, model.OrderStatusConfirmed, reply)

	// Case-insensitive, embedded in a sentence.
	reply = r.Respond(context.Background(), "আমার order1001 কোথায়?", "guest")
	assert.Equal(t, model.OrderStatusConfirmed, reply)

	reply = r.Respond(context.Background(), "ORDER9999", "guest")
	assert.Equal(t, "❌ এই অর্ডার আইডি পাওয়া যায়নি।", reply)
}

func TestOrderBranchWinsOverProductBranch(t *testing.T) {
	r, _ := newTestResponder(&fakeGenerator{})

	// Contains both an ORDER token and a product name: rule 1 wins.
	reply := r.Respond(context.Background(), "ORDER1001 HP Pavilion 15", "guest")
	assert.Equal(t, model.OrderStatusConfirmed, reply)
	assert.NotContains(t, reply, "Buy Now")
}

func TestListingBranch(t *testing.T) {
	r, _ := newTestResponder(&fakeGenerator{})

	for _, msg := range []string{"লিস্ট", "product list please", "কি কি আছে"} {
		reply := r.Respond(context.Background(), msg, "guest")
		assert.Contains(t, reply, "আমাদের প্রোডাক্ট লিস্ট", "message %q", msg)
		// Both entries, catalog order.
		hp := strings.Index(reply, "HP Pavilion 15")
		redmi := strings.Index(reply, "Redmi Note 13")
		require.GreaterOrEqual(t, hp, 0)
		require.GreaterOrEqual(t, redmi, 0)
		assert.Less(t, hp, redmi)
	}
}

func TestProductCardBranch(t *testing.T) {
	r, _ := newTestResponder(&fakeGenerator{})

	reply := r.Respond(context.Background(), "hp pavilion 15 দাম কত", "guest")
	assert.Contains(t, reply, "HP Pavilion 15")
	assert.Contains(t, reply, "৳65,000")
	assert.Contains(t, reply, "Buy Now")
	assert.NotContains(t, reply, "badge-low")

	// Stock 2 <= threshold 3: low badge shows.
	reply = r.Respond(context.Background(), "redmi note 13", "guest")
	assert.Contains(t, reply, "badge-low")
}

func TestGenerativeFallback(t *testing.T) {
	r, _ := newTestResponder(&fakeGenerator{text: "হ্যালো! কেমন আছেন?"})
	reply := r.Respond(context.Background(), "কেমন আছো", "guest")
	assert.Equal(t, "হ্যালো! কেমন আছেন?", reply)
}

func TestGenerativeFallbackDegradesToDefault(t *testing.T) {
	r, _ := newTestResponder(&fakeGenerator{err: errors.New("connection refused")})
	reply := r.Respond(context.Background(), "কেমন আছো", "guest")
	assert.Equal(t, DefaultReply, reply)

	// Empty generations degrade too.
	r2, _ := newTestResponder(&fakeGenerator{text: "   "})
	reply = r2.Respond(context.Background(), "কেমন আছো", "guest")
	assert.Equal(t, DefaultReply, reply)
}

func TestEveryBranchRecordsHistory(t *testing.T) {
	r, hist := newTestResponder(&fakeGenerator{text: "ok"})

	msgs := []string{"ORDER1001", "লিস্ট", "hp pavilion 15", "just chatting"}
	for _, m := range msgs {
		r.Respond(context.Background(), m, "guest")
	}
	require.Len(t, hist.entries, len(msgs))
	for i, e := range hist.entries {
		assert.Equal(t, msgs[i], e.Message)
		assert.Equal(t, "guest", e.User)
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Time)
		assert.NotEmpty(t, e.Reply)
	}
}

func TestEmptyMessageSkipsHistory(t *testing.T) {
	r, hist := newTestResponder(&fakeGenerator{})
	reply := r.Respond(context.Background(), "   ", "guest")
	assert.Equal(t, "🙂 কিছু লিখুন", reply)
	assert.Empty(t, hist.entries)
}
