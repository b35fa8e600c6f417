// Package store owns the three persisted collections (products, orders,
// chat history) and their whole-file JSON documents. Every
// read-modify-persist sequence runs under one lock, and every file write
// is atomic (temp file + rename), so concurrent purchases can neither
// drive stock negative nor double-issue order IDs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bazarlab/chatshop/internal/model"
)

// Sentinel errors for lookups and stock checks. Handlers map these to
// 404/400 responses.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOutOfStock      = errors.New("out of stock")
)

const (
	productsFile = "products.json"
	ordersFile   = "orders.json"
	historyFile  = "chat_history.json"

	// orderIDPrefix + sequence forms the human-readable order ID. The
	// sequence starts so the first order is ORDER1001.
	orderIDPrefix = "ORDER"
	orderSeqBase  = 1000
)

// Store holds the process-wide collections in memory and flushes the
// backing file of whatever a mutation touched.
type Store struct {
	mu  sync.RWMutex
	dir string

	products []model.Product
	orders   []model.Order
	history  []model.ChatEntry

	// nextSeq is the last issued order sequence number. Seeded from the
	// highest persisted ID at load so filtered or deleted orders can
	// never cause ID reuse.
	nextSeq int
}

// Open loads the collections from dir, creating it if needed. Missing or
// unreadable files load as empty collections, matching the original
// storefront's tolerant startup.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	s := &Store{dir: dir}
	s.loadLocked()
	return s, nil
}

// loadLocked reads all three files into memory and reseeds the order
// sequence. Callers hold the write lock (or own the store exclusively).
func (s *Store) loadLocked() {
	s.products = nil
	s.orders = nil
	s.history = nil
	loadJSON(filepath.Join(s.dir, productsFile), &s.products)
	loadJSON(filepath.Join(s.dir, ordersFile), &s.orders)
	loadJSON(filepath.Join(s.dir, historyFile), &s.history)

	s.nextSeq = orderSeqBase
	for _, o := range s.orders {
		if seq, ok := orderSeq(o.OrderID); ok && seq > s.nextSeq {
			s.nextSeq = seq
		}
	}
}

// orderSeq extracts the numeric suffix of an ORDERnnnn identifier.
func orderSeq(id string) (int, bool) {
	up := strings.ToUpper(strings.TrimSpace(id))
	if !strings.HasPrefix(up, orderIDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(up[len(orderIDPrefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}

func loadJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// A corrupt file is treated the same as a missing one.
	_ = json.Unmarshal(data, v)
}

// saveJSON writes v as indented JSON via a temp file in the same
// directory, then renames it into place.
func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) saveProductsLocked() error {
	return saveJSON(filepath.Join(s.dir, productsFile), s.products)
}

func (s *Store) saveOrdersLocked() error {
	return saveJSON(filepath.Join(s.dir, ordersFile), s.orders)
}

func (s *Store) saveHistoryLocked() error {
	return saveJSON(filepath.Join(s.dir, historyFile), s.history)
}

// Products returns a copy of the catalog in file order.
func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByName finds a product by exact name. The purchase path uses
// this, unlike the fuzzy chat lookup.
func (s *Store) ProductByName(name string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Name == name {
			return p, true
		}
	}
	return model.Product{}, false
}

// Orders returns a copy of all orders in creation order.
func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID finds an order by case-insensitive exact ID.
func (s *Store) OrderByID(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if strings.EqualFold(o.OrderID, id) {
			return o, true
		}
	}
	return model.Order{}, false
}

// History returns a copy of the chat log, oldest first.
func (s *Store) History() []model.ChatEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ChatEntry, len(s.history))
	copy(out, s.history)
	return out
}

// SeedProducts writes the given catalog if the store holds none. Returns
// whether seeding happened.
func (s *Store) SeedProducts(products []model.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) > 0 {
		return false, nil
	}
	s.products = append([]model.Product(nil), products...)
	if err := s.saveProductsLocked(); err != nil {
		s.loadLocked()
		return false, err
	}
	return true, nil
}

// ReserveStock decrements the named product's stock by one, persists the
// catalog, and issues the next order ID, all under one lock. Returns the
// product as it was before the decrement.
func (s *Store) ReserveStock(name string) (model.Product, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Name != name {
			continue
		}
		if s.products[i].Stock <= 0 {
			return model.Product{}, "", ErrOutOfStock
		}
		before := s.products[i]
		s.products[i].Stock--
		if err := s.saveProductsLocked(); err != nil {
			s.loadLocked()
			return model.Product{}, "", err
		}
		s.nextSeq++
		return before, fmt.Sprintf("%s%d", orderIDPrefix, s.nextSeq), nil
	}
	return model.Product{}, "", ErrProductNotFound
}

// RestockProduct puts one unit back. Compensating action for a purchase
// whose order record could not be persisted after the stock decrement.
func (s *Store) RestockProduct(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Name != name {
			continue
		}
		s.products[i].Stock++
		if err := s.saveProductsLocked(); err != nil {
			s.loadLocked()
			return err
		}
		return nil
	}
	return ErrProductNotFound
}

// AppendOrder persists a new order record.
func (s *Store) AppendOrder(o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	if err := s.saveOrdersLocked(); err != nil {
		s.loadLocked()
		return err
	}
	return nil
}

// UpdateOrderStatus overwrites the status of the order with the given ID
// (case-insensitive). Any status text is accepted.
func (s *Store) UpdateOrderStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if strings.EqualFold(s.orders[i].OrderID, id) {
			s.orders[i].Status = status
			if err := s.saveOrdersLocked(); err != nil {
				s.loadLocked()
				return err
			}
			return nil
		}
	}
	return ErrOrderNotFound
}

// AppendHistory records a chat exchange, keeping only the most recent
// model.HistoryLimit entries.
func (s *Store) AppendHistory(e model.ChatEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, e)
	if n := len(s.history); n > model.HistoryLimit {
		s.history = append([]model.ChatEntry(nil), s.history[n-model.HistoryLimit:]...)
	}
	if err := s.saveHistoryLocked(); err != nil {
		s.loadLocked()
		return err
	}
	return nil
}
