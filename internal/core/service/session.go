package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jerrymart/quickmart/internal/core/domain"
	"github.com/jerrymart/quickmart/internal/port"
)

// Artifact carries everything the persistence workers need after a
// completed sale: the transaction record, the rendered receipt, and the
// catalog text as it stood right after the stock decrement.
type Artifact struct {
	SessionID         string
	Transaction       domain.Transaction
	Receipt           string
	InventorySnapshot string
}

// Session is one register: it owns its inventory, the active cart, the
// customer-type flag and a reference to the shared sequence source, so
// nothing is ambient global state. Every operation runs to completion under
// the session lock; there is no interleaving of two checkouts.
type Session struct {
	id      string
	taxRate decimal.Decimal

	mu        sync.Mutex
	inventory *domain.Inventory
	cart      *domain.Cart
	isMember  bool

	seq   port.SequenceRepository
	codec port.CatalogCodec
	queue chan<- Artifact
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// IsMember reports the current customer type.
func (s *Session) IsMember() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isMember
}

// SetMember switches the customer type. Switching empties the cart, since
// the lines were priced for the previous customer type.
func (s *Session) SetMember(member bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member != s.isMember {
		s.isMember = member
		s.cart.Clear()
	}
}

// AvailableItems returns the in-stock catalog entries in catalog order.
func (s *Session) AvailableItems() []domain.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.AvailableItems()
}

// CartLines returns a copy of the active cart's lines.
func (s *Session) CartLines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Totals returns the cart subtotal, tax and grand total at the session's
// tax rate.
func (s *Session) Totals() (subtotal, tax, total decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal = s.cart.Subtotal()
	tax = s.cart.TaxAmount(s.taxRate)
	return subtotal, tax, subtotal.Add(tax)
}

// AddItem puts quantity units of the named catalog item in the cart at the
// price for the current customer type. The requested quantity plus whatever
// the cart already holds is bounded against quantity-on-hand here, since
// the cart itself performs no stock checks.
func (s *Session) AddItem(name string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		return fmt.Errorf("add %q: %w", name, domain.ErrInvalidQuantity)
	}
	stock, ok := s.inventory.Find(name)
	if !ok {
		return fmt.Errorf("add %q: %w", name, domain.ErrUnknownItem)
	}
	inCart := 0
	for _, l := range s.cart.Lines() {
		if l.Name == name {
			inCart = l.Quantity
			break
		}
	}
	if inCart+quantity > stock.Quantity {
		return fmt.Errorf("add %d x %q with %d on hand and %d in cart: %w",
			quantity, name, stock.Quantity, inCart, domain.ErrInsufficientStock)
	}
	return s.cart.AddLine(stock.Item, quantity, stock.Item.Price(s.isMember))
}

// RemoveItem drops the cart line for name; absent lines are a no-op.
func (s *Session) RemoveItem(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveLine(name)
}

// ClearCart empties the cart, e.g. when the clerk cancels the sale.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Checkout completes the sale for the tendered cash. An empty cart or
// insufficient cash aborts with nothing mutated and no sequence number
// consumed; the caller re-prompts or gives up. On success the stock is
// decremented, a transaction is recorded and enqueued for persistence, and
// the cart is reset.
func (s *Session) Checkout(ctx context.Context, cash decimal.Decimal) (domain.Transaction, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return domain.Transaction{}, "", ErrEmptyCart
	}
	total := s.cart.Subtotal().Add(s.cart.TaxAmount(s.taxRate))
	if cash.LessThan(total) {
		return domain.Transaction{}, "", fmt.Errorf("tendered $%s against total $%s: %w",
			cash.StringFixed(2), total.StringFixed(2), ErrInsufficientCash)
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		return domain.Transaction{}, "", fmt.Errorf("allocate sequence: %w", err)
	}

	// AddItem bounded every line against stock, so a decrement failure
	// means the catalog was swapped under an open cart; tolerate it and
	// flag the skew.
	for _, l := range s.cart.Lines() {
		if err := s.inventory.DecrementStock(l.Name, l.Quantity); err != nil {
			log.Printf("session %s: stock skew at checkout: %v", s.id, err)
		}
	}

	txn := domain.NewTransaction(seq, time.Now(), s.cart.Lines(), s.isMember, cash, s.taxRate)
	receipt := txn.Receipt(s.inventory)

	s.queue <- Artifact{
		SessionID:         s.id,
		Transaction:       txn,
		Receipt:           receipt,
		InventorySnapshot: s.codec.Encode(s.inventory),
	}

	s.cart.Clear()
	return txn, receipt, nil
}

// ReloadCatalog replaces the session's inventory from uploaded catalog
// text. The active cart is cleared as part of the reload: its price
// snapshots belong to the old catalog. Malformed text leaves everything
// untouched.
func (s *Session) ReloadCatalog(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, err := s.codec.Decode(text)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	s.inventory = inv
	s.cart.Clear()
	return nil
}

// InventoryText renders the session's current catalog, sold-out items
// included.
func (s *Session) InventoryText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codec.Encode(s.inventory)
}
