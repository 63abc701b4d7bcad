package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is an immutable catalog entry. Name is the unique key within a
// catalog; MemberPrice is by convention not above RegularPrice but that is
// not enforced here.
type Item struct {
	Name         string
	RegularPrice decimal.Decimal
	MemberPrice  decimal.Decimal
	TaxStatus    string
}

// Price returns the member price for members, the regular price otherwise.
func (i Item) Price(isMember bool) decimal.Decimal {
	if isMember {
		return i.MemberPrice
	}
	return i.RegularPrice
}

// Taxable reports whether the item is subject to sales tax. Only the
// literal status "taxable" (case-insensitive) counts; any other value is
// non-taxable.
func (i Item) Taxable() bool {
	return strings.EqualFold(i.TaxStatus, "taxable")
}
