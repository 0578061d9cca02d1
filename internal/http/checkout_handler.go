package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/evergreenmarket/storefront-service-go/internal/checkout"
	"github.com/evergreenmarket/storefront-service-go/internal/contracts"
	"github.com/evergreenmarket/storefront-service-go/internal/session"
)

func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if len(sess.Cart.Active) == 0 {
		writeError(w, http.StatusConflict, "cart is empty")
		return
	}

	sess.StartCheckout()
	h.writeCheckout(w, sess)
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Checkout == nil {
		writeError(w, http.StatusNotFound, "no checkout in progress")
		return
	}
	h.writeCheckout(w, sess)
}

type continueRequest struct {
	ShippingAddress *checkout.Address `json:"shippingAddress,omitempty"`
	BillingAddress  *checkout.Address `json:"billingAddress,omitempty"`
	SameAsShipping  *bool             `json:"sameAsShipping,omitempty"`
	MethodID        string            `json:"methodId,omitempty"`
}

// ContinueCheckout runs the current step's continue action. The body carries
// whichever fields that step needs; everything else is ignored.
func (h *Handler) ContinueCheckout(w http.ResponseWriter, r *http.Request) {
	var body continueRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	wiz := sess.Checkout
	if wiz == nil {
		writeError(w, http.StatusNotFound, "no checkout in progress")
		return
	}

	var err error
	switch wiz.Step {
	case checkout.StepShipping:
		if body.ShippingAddress == nil {
			writeError(w, http.StatusBadRequest, "missing shippingAddress")
			return
		}
		err = wiz.ContinueShipping(*body.ShippingAddress)
	case checkout.StepBilling:
		same := wiz.SameAsShipping
		if body.SameAsShipping != nil {
			same = *body.SameAsShipping
		}
		var addr checkout.Address
		if body.BillingAddress != nil {
			addr = *body.BillingAddress
		}
		err = wiz.ContinueBilling(addr, same)
	case checkout.StepShippingMethod:
		err = wiz.ContinueShippingMethod(body.MethodID)
	case checkout.StepPayment:
		err = wiz.ContinuePayment()
	case checkout.StepReview:
		writeError(w, http.StatusConflict, "already at review; place the order or edit a step")
		return
	}

	if err != nil {
		var fields checkout.FieldErrors
		if errors.As(err, &fields) {
			writeFieldErrors(w, fields)
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	h.writeCheckout(w, sess)
}

func (h *Handler) EditCheckout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Step checkout.Step `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Checkout == nil {
		writeError(w, http.StatusNotFound, "no checkout in progress")
		return
	}

	if err := sess.Checkout.EditFromReview(body.Step); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.writeCheckout(w, sess)
}

// CancelCheckout abandons the flow; the cart is untouched.
func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sess.FinishCheckout()
	h.writeCart(w, sess)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	wiz := sess.Checkout
	if wiz == nil {
		writeError(w, http.StatusNotFound, "no checkout in progress")
		return
	}
	if wiz.Step != checkout.StepReview {
		writeError(w, http.StatusConflict, "order can only be placed from review")
		return
	}

	b, err := sessionBreakdown(sess, h.rules)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to price order")
		return
	}

	payload := buildOrderPayload(sess, toBreakdownView(b))

	if err := h.publisher.PublishOrderSubmitted(r.Context(), payload); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to submit order")
		return
	}

	// The session keeps its saved-for-later list; the order consumed the
	// active items and the promo, and the wizard is done.
	sess.Cart.Active = nil
	sess.Cart.ClearPromo()
	sess.FinishCheckout()

	writeJSON(w, http.StatusOK, map[string]any{
		"orderId": payload.OrderID,
		"status":  "submitted",
		"totals":  payload.Totals,
	})
}

func buildOrderPayload(sess *session.Session, totals breakdownView) contracts.OrderSubmittedPayload {
	wiz := sess.Checkout

	var lines []contracts.OrderLine
	for _, it := range sess.Cart.Active {
		lines = append(lines, contracts.OrderLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return contracts.OrderSubmittedPayload{
		OrderID:         uuid.NewString(),
		SessionID:       sess.ID,
		Items:           lines,
		ShippingAddress: wiz.ShippingAddress,
		BillingAddress:  wiz.BillingAddress,
		ShippingMethod:  wiz.MethodID,
		Totals: contracts.OrderTotals{
			Subtotal:    totals.Subtotal,
			Discount:    totals.Discount,
			ShippingFee: totals.ShippingFee,
			Tax:         totals.Tax,
			Total:       totals.Total,
		},
		Timestamp: time.Now().UTC(),
	}
}

func (h *Handler) writeCheckout(w http.ResponseWriter, sess *session.Session) {
	b, err := sessionBreakdown(sess, h.rules)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to price cart")
		return
	}
	writeJSON(w, http.StatusOK, checkoutView{
		Wizard:    sess.Checkout,
		Methods:   checkout.Methods(),
		Breakdown: toBreakdownView(b),
	})
}
