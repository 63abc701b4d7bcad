package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownItem is returned when an operation names an item the
	// inventory does not carry.
	ErrUnknownItem = errors.New("unknown item")

	// ErrInsufficientStock is returned when a decrement would drive
	// quantity-on-hand below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Stock is the mutable quantity-on-hand for one catalog item.
type Stock struct {
	Item     Item
	Quantity int
}

// Inventory holds the canonical catalog and its stock levels, one entry per
// distinct item name, in catalog order.
type Inventory struct {
	stocks []Stock
	index  map[string]int
}

// NewInventory builds an inventory from stocks in catalog order. A repeated
// item name keeps the first entry and drops the rest; decoders are expected
// to reject duplicates before this point.
func NewInventory(stocks []Stock) *Inventory {
	inv := &Inventory{index: make(map[string]int, len(stocks))}
	for _, s := range stocks {
		if _, ok := inv.index[s.Item.Name]; ok {
			continue
		}
		inv.index[s.Item.Name] = len(inv.stocks)
		inv.stocks = append(inv.stocks, s)
	}
	return inv
}

// AvailableItems returns the stocks with quantity above zero, in catalog
// order. The returned slice is a copy.
func (v *Inventory) AvailableItems() []Stock {
	var out []Stock
	for _, s := range v.stocks {
		if s.Quantity > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Stocks returns every entry, including sold-out ones, in catalog order.
// The returned slice is a copy.
func (v *Inventory) Stocks() []Stock {
	out := make([]Stock, len(v.stocks))
	copy(out, v.stocks)
	return out
}

// Find looks up a stock entry by exact item name.
func (v *Inventory) Find(name string) (Stock, bool) {
	i, ok := v.index[name]
	if !ok {
		return Stock{}, false
	}
	return v.stocks[i], true
}

// Len returns the number of distinct catalog entries.
func (v *Inventory) Len() int {
	return len(v.stocks)
}

// DecrementStock reduces the named item's quantity-on-hand. Unknown items
// and over-decrements are rejected with typed errors; the checkout flow is
// expected to bound quantities before calling, so either error indicates
// data skew worth logging.
func (v *Inventory) DecrementStock(name string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("decrement %q by %d: quantity must be positive", name, quantity)
	}
	i, ok := v.index[name]
	if !ok {
		return fmt.Errorf("decrement %q: %w", name, ErrUnknownItem)
	}
	if v.stocks[i].Quantity < quantity {
		return fmt.Errorf("decrement %q by %d with %d on hand: %w",
			name, quantity, v.stocks[i].Quantity, ErrInsufficientStock)
	}
	v.stocks[i].Quantity -= quantity
	return nil
}
