// Package catalog provides product lookup over the store.
package catalog

import (
	"strings"

	"github.com/bazarlab/chatshop/internal/model"
	"github.com/bazarlab/chatshop/internal/store"
)

// Service exposes read-only catalog lookups. Stock mutation happens only
// through the order flow.
type Service struct {
	store *store.Store
}

// NewService creates a catalog service over the given store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// List returns the catalog in file order.
func (s *Service) List() []model.Product {
	return s.store.Products()
}

// FindByText matches free text against the catalog: the first product
// whose name or category appears as a case-insensitive substring of the
// input wins, with catalog order as the tie-break. This is the chat
// lookup; the purchase path uses FindByName instead.
func (s *Service) FindByText(text string) (model.Product, bool) {
	lower := strings.ToLower(text)
	for _, p := range s.store.Products() {
		if p.Name != "" && strings.Contains(lower, strings.ToLower(p.Name)) {
			return p, true
		}
		if p.Category != "" && strings.Contains(lower, strings.ToLower(p.Category)) {
			return p, true
		}
	}
	return model.Product{}, false
}

// FindByName finds a product by exact name.
func (s *Service) FindByName(name string) (model.Product, bool) {
	return s.store.ProductByName(name)
}

// SeedDefaults writes the default catalog when the store is empty.
// Returns whether seeding happened.
func (s *Service) SeedDefaults() (bool, error) {
	return s.store.SeedProducts(model.DefaultProducts())
}
