package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func fixedDate() time.Time {
	return time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)
}

func memberLines() []CartLine {
	return []CartLine{
		{Name: "Milk", Quantity: 2, UnitPrice: decimal.RequireFromString("3.00"), Taxable: false},
		{Name: "Chips", Quantity: 1, UnitPrice: decimal.RequireFromString("2.00"), Taxable: true},
	}
}

func memberCatalog() *Inventory {
	return NewInventory([]Stock{
		{Item: testItem("Milk", "4.00", "3.00", "Tax-Exempt"), Quantity: 8},
		{Item: testItem("Chips", "3.00", "2.00", "Taxable"), Quantity: 9},
	})
}

func TestReceipt_MemberGolden(t *testing.T) {
	txn := NewTransaction(42, fixedDate(), memberLines(), true,
		decimal.RequireFromString("10.00"), decimal.RequireFromString("0.065"))

	want := strings.Join([]string{
		"June 15, 2025",
		"TRANSACTION: 000042",
		"CUSTOMER TYPE: MEMBER",
		"___________________________________________",
		"ITEM            QTY  UNIT PRICE TOTAL",
		"___________________________________________",
		"Milk            2    $3.00      $6.00",
		"Chips           1    $2.00      $2.00",
		"___________________________________________",
		"TOTAL NUMBER OF ITEMS SOLD: 3",
		"SUB-TOTAL: $8.00",
		"TAX (6.5%): $0.13",
		"TOTAL: $8.13",
		"CASH: $10.00",
		"CHANGE: $1.87",
		"********************************",
		"YOU SAVED: $3.00!",
	}, "\n")

	if got := txn.Receipt(memberCatalog()); got != want {
		t.Errorf("receipt mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestReceipt_NonMemberHasNoSavingsLine(t *testing.T) {
	lines := []CartLine{
		{Name: "Milk", Quantity: 2, UnitPrice: decimal.RequireFromString("4.00"), Taxable: false},
	}
	txn := NewTransaction(1, fixedDate(), lines, false,
		decimal.RequireFromString("8.00"), decimal.RequireFromString("0.065"))

	got := txn.Receipt(memberCatalog())
	if !strings.Contains(got, "CUSTOMER TYPE: NON-MEMBER") {
		t.Error("expected NON-MEMBER label")
	}
	if strings.Contains(got, "YOU SAVED") {
		t.Error("non-member receipt must not show a savings line")
	}
	if !strings.HasSuffix(got, "********************************") {
		t.Error("receipt must still end with the separator row")
	}
	if !strings.Contains(got, "CHANGE: $0.00") {
		t.Error("exact cash must yield change of $0.00")
	}
}

func TestSavings_MemberMilkCase(t *testing.T) {
	lines := []CartLine{
		{Name: "Milk", Quantity: 2, UnitPrice: decimal.RequireFromString("3.00"), Taxable: false},
	}
	txn := NewTransaction(7, fixedDate(), lines, true,
		decimal.RequireFromString("6.00"), decimal.RequireFromString("0.065"))

	saved := txn.Savings(memberCatalog())
	if want := decimal.RequireFromString("2.00"); !saved.Equal(want) {
		t.Errorf("expected savings 2.00, got %s", saved)
	}
}

// The savings figure reads the catalog as it stands at receipt time, not
// the frozen cart prices. A catalog edit between adding and printing shifts
// the figure; that is long-observed behavior, kept on purpose.
func TestSavings_ReadsCurrentCatalog(t *testing.T) {
	lines := []CartLine{
		{Name: "Milk", Quantity: 2, UnitPrice: decimal.RequireFromString("3.00"), Taxable: false},
	}
	txn := NewTransaction(8, fixedDate(), lines, true,
		decimal.RequireFromString("6.00"), decimal.RequireFromString("0.065"))

	repriced := NewInventory([]Stock{
		{Item: testItem("Milk", "5.50", "3.00", "Tax-Exempt"), Quantity: 8},
	})
	if saved, want := txn.Savings(repriced), decimal.RequireFromString("5.00"); !saved.Equal(want) {
		t.Errorf("expected savings 5.00 from repriced catalog, got %s", saved)
	}

	// Items gone from the catalog, or with no member discount, contribute
	// nothing; the line stays off the receipt when nothing was saved.
	flat := NewInventory([]Stock{
		{Item: testItem("Milk", "3.00", "3.00", "Tax-Exempt"), Quantity: 8},
	})
	if saved := txn.Savings(flat); !saved.IsZero() {
		t.Errorf("expected zero savings, got %s", saved)
	}
	if got := txn.Receipt(flat); strings.Contains(got, "YOU SAVED") {
		t.Error("zero savings must not print a savings line")
	}
}

func TestReceiptFilename(t *testing.T) {
	txn := NewTransaction(3, fixedDate(), nil, false,
		decimal.Zero, decimal.RequireFromString("0.065"))
	if got, want := txn.ReceiptFilename(), "transaction_000003_6152025.txt"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTransactionFreezesLines(t *testing.T) {
	lines := memberLines()
	txn := NewTransaction(9, fixedDate(), lines, true,
		decimal.RequireFromString("10.00"), decimal.RequireFromString("0.065"))

	lines[0].Quantity = 99
	if txn.Lines[0].Quantity != 2 {
		t.Error("mutating the source slice must not change the transaction")
	}
	if txn.ItemCount() != 3 {
		t.Errorf("expected 3 items, got %d", txn.ItemCount())
	}
}
