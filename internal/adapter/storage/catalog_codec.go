package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jerrymart/quickmart/internal/core/domain"
)

// MalformedRecordError identifies exactly which catalog line failed to
// decode and why, instead of letting a bad record leak sentinel values into
// the inventory.
type MalformedRecordError struct {
	Line   int
	Record string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("catalog line %d: %s (%q)", e.Line, e.Reason, e.Record)
}

// TextCodec reads and writes the line-oriented catalog format:
//
//	name: quantity, $regularPrice, $memberPrice, taxStatus
//
// one record per line, catalog order preserved, sold-out items included.
type TextCodec struct{}

func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Decode parses catalog text into an inventory. Blank lines are skipped;
// anything else that does not match the schema fails with a
// MalformedRecordError and no partial inventory.
func (c *TextCodec) Decode(text string) (*domain.Inventory, error) {
	var stocks []domain.Stock
	seen := make(map[string]bool)

	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "missing ':' after item name"}
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "empty item name"}
		}
		if seen[name] {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "duplicate item name"}
		}

		fields := strings.Split(rest, ",")
		if len(fields) != 4 {
			return nil, &MalformedRecordError{Line: n, Record: line,
				Reason: fmt.Sprintf("expected 4 fields after name, got %d", len(fields))}
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || quantity < 0 {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "quantity is not a non-negative integer"}
		}
		regular, err := parsePrice(fields[1])
		if err != nil {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "regular price: " + err.Error()}
		}
		member, err := parsePrice(fields[2])
		if err != nil {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "member price: " + err.Error()}
		}
		status := strings.Join(strings.Fields(fields[3]), "")
		if status == "" {
			return nil, &MalformedRecordError{Line: n, Record: line, Reason: "empty tax status"}
		}

		seen[name] = true
		stocks = append(stocks, domain.Stock{
			Item: domain.Item{
				Name:         name,
				RegularPrice: regular,
				MemberPrice:  member,
				TaxStatus:    status,
			},
			Quantity: quantity,
		})
	}

	return domain.NewInventory(stocks), nil
}

// Encode renders the inventory back to catalog text, one line per item in
// catalog order, prices fixed to two decimals.
func (c *TextCodec) Encode(inv *domain.Inventory) string {
	var lines []string
	for _, s := range inv.Stocks() {
		lines = append(lines, fmt.Sprintf("%s: %d, $%s, $%s, %s",
			s.Item.Name, s.Quantity,
			s.Item.RegularPrice.StringFixed(2), s.Item.MemberPrice.StringFixed(2),
			s.Item.TaxStatus))
	}
	return strings.Join(lines, "\n")
}

// parsePrice accepts a decimal amount with an optional leading currency
// symbol, e.g. "$4.00" or "4".
func parsePrice(field string) (decimal.Decimal, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(field), "$")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal amount")
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount")
	}
	return d, nil
}
