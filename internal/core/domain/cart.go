package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a cart mutation is given a quantity
// that is not a positive integer.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartLine is one row of an active cart: a distinct item with its quantity
// and the unit price and tax status snapshotted at add time, so later
// catalog edits do not change an open cart.
type CartLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Taxable   bool
}

// Total returns quantity times unit price.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of cart lines, at most one per item name.
// It performs no stock checks; bounding quantities against quantity-on-hand
// is the caller's concern.
type Cart struct {
	lines []CartLine
}

// AddLine merges quantity into the existing line for the item, keeping the
// first add's unit price, or appends a new line with price and tax status
// snapshotted from the item.
func (c *Cart) AddLine(item Item, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return fmt.Errorf("add %q: %w", item.Name, ErrInvalidQuantity)
	}
	for i := range c.lines {
		if c.lines[i].Name == item.Name {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{
		Name:      item.Name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Taxable:   item.Taxable(),
	})
	return nil
}

// RemoveLine deletes the line for name; removing an absent line is a no-op.
func (c *Cart) RemoveLine(name string) {
	for i := range c.lines {
		if c.lines[i].Name == name {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItemCount returns the sum of quantities across all lines.
func (c *Cart) TotalItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of line totals. Rounding is deferred to display.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// TaxAmount returns the tax over taxable lines only; non-taxable lines
// contribute nothing.
func (c *Cart) TaxAmount(taxRate decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		if l.Taxable {
			sum = sum.Add(l.Total().Mul(taxRate))
		}
	}
	return sum
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
