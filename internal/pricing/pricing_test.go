package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenmarket/storefront-service-go/internal/cart"
)

func line(price float64, qty int) cart.LineItem {
	return cart.LineItem{UnitPrice: price, Quantity: qty}
}

// eq compares decimals numerically; String() keeps exponent trailing zeros.
func eq(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestCompute_ScenarioNoPromo(t *testing.T) {
	// 99.99 x1 + 249.99 x2 = 599.97, over the free-shipping threshold
	items := []cart.LineItem{line(99.99, 1), line(249.99, 2)}

	b, err := Compute(items, false, nil, DefaultRules())
	require.NoError(t, err)

	eq(t, "599.97", b.Subtotal)
	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.ShippingFee.IsZero())
	eq(t, "47.9976", b.Tax)
	eq(t, "647.9676", b.Total)
	assert.Equal(t, 647.97, b.Total.Round(2).InexactFloat64())
}

func TestCompute_ScenarioWithPromo(t *testing.T) {
	items := []cart.LineItem{line(99.99, 1), line(249.99, 2)}

	b, err := Compute(items, true, nil, DefaultRules())
	require.NoError(t, err)

	eq(t, "59.997", b.Discount)
	eq(t, "43.19784", b.Tax)
	eq(t, "583.17084", b.Total)
	assert.Equal(t, 583.17, b.Total.Round(2).InexactFloat64())
}

func TestCompute_SubtotalIsOrderIndependent(t *testing.T) {
	forward := []cart.LineItem{line(12.34, 3), line(0.99, 7), line(199.95, 1)}
	reversed := []cart.LineItem{line(199.95, 1), line(0.99, 7), line(12.34, 3)}

	bf, err := Compute(forward, false, nil, DefaultRules())
	require.NoError(t, err)
	br, err := Compute(reversed, false, nil, DefaultRules())
	require.NoError(t, err)

	assert.True(t, bf.Subtotal.Equal(br.Subtotal))
	assert.True(t, bf.Total.Equal(br.Total))
}

func TestCompute_FreeShippingBoundary(t *testing.T) {
	rules := DefaultRules()

	// Exactly 100 still pays the flat fee.
	b, err := Compute([]cart.LineItem{line(50.00, 2)}, false, nil, rules)
	require.NoError(t, err)
	eq(t, "100", b.Subtotal)
	assert.True(t, b.ShippingFee.Equal(rules.FlatShippingFee))

	// One cent over is free.
	b, err = Compute([]cart.LineItem{line(100.01, 1)}, false, nil, rules)
	require.NoError(t, err)
	assert.True(t, b.ShippingFee.IsZero())
}

func TestCompute_DiscountDoesNotAffectShippingThreshold(t *testing.T) {
	// 105 pre-discount is over the threshold even though 10% off lands at
	// 94.50; the threshold check uses the pre-discount subtotal.
	b, err := Compute([]cart.LineItem{line(105.00, 1)}, true, nil, DefaultRules())
	require.NoError(t, err)
	assert.True(t, b.ShippingFee.IsZero())
}

func TestCompute_EmptyCart(t *testing.T) {
	b, err := Compute(nil, false, nil, DefaultRules())
	require.NoError(t, err)

	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.ShippingFee.IsZero(), "an empty cart pays no shipping")
	assert.True(t, b.Total.IsZero())
}

func TestCompute_MethodFeeOverridesThresholdRule(t *testing.T) {
	fee := decimal.RequireFromString("19.99")
	b, err := Compute([]cart.LineItem{line(99.99, 1), line(249.99, 2)}, false, &fee, DefaultRules())
	require.NoError(t, err)

	// Subtotal is far above the free-shipping threshold, but checkout uses
	// the selected method's fee.
	eq(t, "19.99", b.ShippingFee)
}

func TestCompute_TaxExcludesShipping(t *testing.T) {
	b, err := Compute([]cart.LineItem{line(10.00, 1)}, false, nil, DefaultRules())
	require.NoError(t, err)

	// 10.00 x 0.08, not (10.00 + 9.99) x 0.08.
	eq(t, "0.80", b.Tax)
	eq(t, "20.79", b.Total)
}

func TestCompute_TotalNeverBelowNetSubtotal(t *testing.T) {
	cases := [][]cart.LineItem{
		nil,
		{line(0.01, 1)},
		{line(99.99, 1), line(249.99, 2)},
		{line(100.01, 1)},
		{line(5.00, 20)},
	}
	for _, items := range cases {
		for _, promo := range []bool{false, true} {
			b, err := Compute(items, promo, nil, DefaultRules())
			require.NoError(t, err)
			net := b.Subtotal.Sub(b.Discount)
			assert.True(t, b.Total.GreaterThanOrEqual(net),
				"total %s < subtotal-discount %s", b.Total, net)
		}
	}
}

func TestCompute_NegativeInputsRejected(t *testing.T) {
	_, err := Compute([]cart.LineItem{line(-1.00, 1)}, false, nil, DefaultRules())
	assert.ErrorIs(t, err, ErrNegativeInput)

	_, err = Compute([]cart.LineItem{{UnitPrice: 1.00, Quantity: -2}}, false, nil, DefaultRules())
	assert.ErrorIs(t, err, ErrNegativeInput)
}
