// Package pricing computes the order total breakdown from a cart snapshot.
// All arithmetic is done on decimals; float64 appears only at the JSON
// boundary.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/evergreenmarket/storefront-service-go/internal/cart"
)

// ErrNegativeInput is returned when an item carries a negative price or
// quantity. Upstream validation should make this unreachable.
var ErrNegativeInput = errors.New("pricing: negative price or quantity")

// Rules are the fixed business constants the breakdown is computed under.
type Rules struct {
	PromoRate             decimal.Decimal
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{
		PromoRate:             decimal.RequireFromString("0.10"),
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.RequireFromString("100"),
		FlatShippingFee:       decimal.RequireFromString("9.99"),
	}
}

// Breakdown is derived state; it is recomputed from the cart on every
// mutation and never stored.
type Breakdown struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	ShippingFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Compute derives the breakdown for the active items.
//
//   - subtotal is the sum of unitPrice x quantity, order independent
//   - discount is subtotal x PromoRate when the promo is applied
//   - the shipping fee is zero when the pre-discount subtotal strictly
//     exceeds the threshold (a subtotal of exactly 100 still pays), zero for
//     an empty cart, and the flat fee otherwise; feeOverride replaces the
//     threshold rule entirely and carries the checkout shipping method's fee
//   - tax applies to subtotal minus discount; shipping is not taxed
func Compute(items []cart.LineItem, promoApplied bool, feeOverride *decimal.Decimal, r Rules) (Breakdown, error) {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.UnitPrice < 0 || it.Quantity < 0 {
			return Breakdown{}, ErrNegativeInput
		}
		price := decimal.NewFromFloat(it.UnitPrice)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	discount := decimal.Zero
	if promoApplied {
		discount = subtotal.Mul(r.PromoRate)
	}

	var fee decimal.Decimal
	switch {
	case feeOverride != nil:
		fee = *feeOverride
	case len(items) == 0:
		fee = decimal.Zero
	case subtotal.GreaterThan(r.FreeShippingThreshold):
		fee = decimal.Zero
	default:
		fee = r.FlatShippingFee
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(r.TaxRate)

	return Breakdown{
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: fee,
		Tax:         tax,
		Total:       taxable.Add(fee).Add(tax),
	}, nil
}
