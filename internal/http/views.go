package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/evergreenmarket/storefront-service-go/internal/cart"
	"github.com/evergreenmarket/storefront-service-go/internal/checkout"
	"github.com/evergreenmarket/storefront-service-go/internal/pricing"
	"github.com/evergreenmarket/storefront-service-go/internal/session"
)

// breakdownView rounds the exact breakdown to cents for display. The engine
// keeps full precision internally.
type breakdownView struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	ShippingFee float64 `json:"shippingFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

func toBreakdownView(b pricing.Breakdown) breakdownView {
	cents := func(d decimal.Decimal) float64 {
		return d.Round(2).InexactFloat64()
	}
	return breakdownView{
		Subtotal:    cents(b.Subtotal),
		Discount:    cents(b.Discount),
		ShippingFee: cents(b.ShippingFee),
		Tax:         cents(b.Tax),
		Total:       cents(b.Total),
	}
}

type cartView struct {
	SessionID     string          `json:"sessionId"`
	Active        []cart.LineItem `json:"active"`
	SavedForLater []cart.LineItem `json:"savedForLater"`
	Promo         cart.PromoCode  `json:"promo"`
	Breakdown     breakdownView   `json:"breakdown"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type checkoutView struct {
	Wizard    *checkout.Wizard          `json:"checkout"`
	Methods   []checkout.ShippingMethod `json:"methods"`
	Breakdown breakdownView             `json:"breakdown"`
}

// sessionBreakdown recomputes totals for the session. On the cart page the
// free-shipping threshold rule applies; once a checkout is underway the
// selected method's fee replaces it.
func sessionBreakdown(sess *session.Session, rules pricing.Rules) (pricing.Breakdown, error) {
	var feeOverride *decimal.Decimal
	if sess.Checkout != nil {
		fee := decimal.NewFromFloat(sess.Checkout.Method().Fee)
		feeOverride = &fee
	}
	return pricing.Compute(sess.Cart.Active, sess.Cart.Promo.Applied, feeOverride, rules)
}

func toCartView(sess *session.Session, b pricing.Breakdown) cartView {
	active := sess.Cart.Active
	if active == nil {
		active = []cart.LineItem{}
	}
	saved := sess.Cart.SavedForLater
	if saved == nil {
		saved = []cart.LineItem{}
	}
	return cartView{
		SessionID:     sess.ID,
		Active:        active,
		SavedForLater: saved,
		Promo:         sess.Cart.Promo,
		Breakdown:     toBreakdownView(b),
		UpdatedAt:     sess.Cart.UpdatedAt,
	}
}
