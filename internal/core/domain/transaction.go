package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	receiptRule  = "___________________________________________"
	receiptStars = "********************************"
)

// Transaction is the immutable record of one completed sale: a frozen view
// of the cart, the customer type, cash tendered, the tax rate in force, a
// timestamp and a monotonically increasing sequence number starting at 1.
// It is created only at successful checkout and never mutated.
type Transaction struct {
	Sequence int
	Date     time.Time
	Lines    []CartLine
	IsMember bool
	Cash     decimal.Decimal
	TaxRate  decimal.Decimal
}

// NewTransaction freezes the given cart lines into a transaction record.
func NewTransaction(seq int, date time.Time, lines []CartLine, isMember bool, cash, taxRate decimal.Decimal) Transaction {
	frozen := make([]CartLine, len(lines))
	copy(frozen, lines)
	return Transaction{
		Sequence: seq,
		Date:     date,
		Lines:    frozen,
		IsMember: isMember,
		Cash:     cash,
		TaxRate:  taxRate,
	}
}

// ItemCount returns the total number of units sold.
func (t Transaction) ItemCount() int {
	var n int
	for _, l := range t.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of line totals.
func (t Transaction) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Tax returns the tax over taxable lines at the transaction's rate.
func (t Transaction) Tax() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		if l.Taxable {
			sum = sum.Add(l.Total().Mul(t.TaxRate))
		}
	}
	return sum
}

// Total returns subtotal plus tax.
func (t Transaction) Total() decimal.Decimal {
	return t.Subtotal().Add(t.Tax())
}

// Change returns cash tendered minus total.
func (t Transaction) Change() decimal.Decimal {
	return t.Cash.Sub(t.Total())
}

// Savings returns how much a member saved against regular prices. It reads
// the CURRENT catalog, not the prices actually charged in the frozen lines;
// this is deliberate, long-observed behavior, so a catalog edit between add
// and receipt shifts the printed figure. Lines whose item has left the
// catalog, and items whose member price is not below regular, contribute
// nothing. Always zero for non-members.
func (t Transaction) Savings(catalog *Inventory) decimal.Decimal {
	saved := decimal.Zero
	if !t.IsMember || catalog == nil {
		return saved
	}
	for _, l := range t.Lines {
		s, ok := catalog.Find(l.Name)
		if !ok {
			continue
		}
		diff := s.Item.RegularPrice.Sub(s.Item.MemberPrice)
		if diff.IsPositive() {
			saved = saved.Add(diff.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
	}
	return saved
}

// Receipt renders the plain-text receipt. The catalog is consulted only for
// the member savings line, which is printed only when the saved amount is
// strictly positive.
func (t Transaction) Receipt(catalog *Inventory) string {
	customer := "NON-MEMBER"
	if t.IsMember {
		customer = "MEMBER"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Date.Format("January 2, 2006"))
	fmt.Fprintf(&b, "TRANSACTION: %06d\n", t.Sequence)
	fmt.Fprintf(&b, "CUSTOMER TYPE: %s\n", customer)
	b.WriteString(receiptRule + "\n")
	b.WriteString("ITEM            QTY  UNIT PRICE TOTAL\n")
	b.WriteString(receiptRule + "\n")
	for _, l := range t.Lines {
		fmt.Fprintf(&b, "%-15s %-4d $%-9s $%s\n",
			l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Total().StringFixed(2))
	}
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "TOTAL NUMBER OF ITEMS SOLD: %d\n", t.ItemCount())
	fmt.Fprintf(&b, "SUB-TOTAL: $%s\n", t.Subtotal().StringFixed(2))
	fmt.Fprintf(&b, "TAX (%s%%): $%s\n",
		t.TaxRate.Mul(decimal.NewFromInt(100)).StringFixed(1), t.Tax().StringFixed(2))
	fmt.Fprintf(&b, "TOTAL: $%s\n", t.Total().StringFixed(2))
	fmt.Fprintf(&b, "CASH: $%s\n", t.Cash.StringFixed(2))
	fmt.Fprintf(&b, "CHANGE: $%s\n", t.Change().StringFixed(2))
	b.WriteString(receiptStars)
	if saved := t.Savings(catalog); saved.IsPositive() {
		fmt.Fprintf(&b, "\nYOU SAVED: $%s!", saved.StringFixed(2))
	}
	return b.String()
}

// ReceiptFilename returns the archive filename for the receipt, e.g.
// transaction_000001_8312026.txt. Month and day are not zero-padded.
func (t Transaction) ReceiptFilename() string {
	return fmt.Sprintf("transaction_%06d_%d%d%d.txt",
		t.Sequence, int(t.Date.Month()), t.Date.Day(), t.Date.Year())
}
