package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testItem(name, regular, member, status string) Item {
	return Item{
		Name:         name,
		RegularPrice: decimal.RequireFromString(regular),
		MemberPrice:  decimal.RequireFromString(member),
		TaxStatus:    status,
	}
}

func TestCartAddLine_MergesSameItem(t *testing.T) {
	cart := &Cart{}
	item := testItem("Cereal", "5.00", "4.25", "Taxable")

	if err := cart.AddLine(item, 2, decimal.RequireFromString("3.00")); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	// Re-adding merges quantity; the first add's unit price wins even if
	// a different price is passed.
	if err := cart.AddLine(item, 3, decimal.RequireFromString("9.99")); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if want := decimal.RequireFromString("3.00"); !lines[0].UnitPrice.Equal(want) {
		t.Errorf("expected unit price 3.00, got %s", lines[0].UnitPrice)
	}
	if want := decimal.RequireFromString("15.00"); !lines[0].Total().Equal(want) {
		t.Errorf("expected line total 15.00, got %s", lines[0].Total())
	}
}

func TestCartAddLine_InvalidQuantity(t *testing.T) {
	cart := &Cart{}
	item := testItem("Soda", "2.00", "1.75", "Taxable")

	for _, qty := range []int{0, -1} {
		if err := cart.AddLine(item, qty, item.RegularPrice); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if !cart.IsEmpty() {
		t.Error("rejected adds must not create lines")
	}
}

func TestCartTaxAmount_TaxableLinesOnly(t *testing.T) {
	cart := &Cart{}
	if err := cart.AddLine(testItem("Chips", "10.00", "10.00", "Taxable"), 2, decimal.RequireFromString("10.00")); err != nil {
		t.Fatal(err)
	}
	if err := cart.AddLine(testItem("Bread", "5.00", "5.00", "Tax-Exempt"), 1, decimal.RequireFromString("5.00")); err != nil {
		t.Fatal(err)
	}

	tax := cart.TaxAmount(decimal.RequireFromString("0.065"))
	if want := decimal.RequireFromString("1.30"); !tax.Equal(want) {
		t.Errorf("expected tax 1.30, got %s", tax)
	}
	if want := decimal.RequireFromString("25.00"); !cart.Subtotal().Equal(want) {
		t.Errorf("expected subtotal 25.00, got %s", cart.Subtotal())
	}
	if cart.TotalItemCount() != 3 {
		t.Errorf("expected 3 items, got %d", cart.TotalItemCount())
	}
}

func TestCartRemoveLine_MissingIsNoOp(t *testing.T) {
	cart := &Cart{}
	if err := cart.AddLine(testItem("Milk", "4.00", "3.00", "Tax-Exempt"), 1, decimal.RequireFromString("4.00")); err != nil {
		t.Fatal(err)
	}

	cart.RemoveLine("Nope")
	if len(cart.Lines()) != 1 {
		t.Error("removing an absent line must not change the cart")
	}

	cart.RemoveLine("Milk")
	if !cart.IsEmpty() {
		t.Error("expected empty cart after removing the only line")
	}
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	cart := &Cart{}
	names := []string{"Milk", "Chips", "Bread"}
	for _, n := range names {
		if err := cart.AddLine(testItem(n, "1.00", "1.00", "Taxable"), 1, decimal.RequireFromString("1.00")); err != nil {
			t.Fatal(err)
		}
	}
	for i, l := range cart.Lines() {
		if l.Name != names[i] {
			t.Errorf("line %d: expected %q, got %q", i, names[i], l.Name)
		}
	}
}

func TestCartClear(t *testing.T) {
	cart := &Cart{}
	if err := cart.AddLine(testItem("Milk", "4.00", "3.00", "Tax-Exempt"), 2, decimal.RequireFromString("4.00")); err != nil {
		t.Fatal(err)
	}
	cart.Clear()
	if !cart.IsEmpty() || cart.TotalItemCount() != 0 {
		t.Error("expected empty cart after Clear")
	}
	if !cart.Subtotal().IsZero() {
		t.Errorf("expected zero subtotal, got %s", cart.Subtotal())
	}
}
