package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evergreenmarket/storefront-service-go/internal/contracts"
	"github.com/evergreenmarket/storefront-service-go/internal/pricing"
	"github.com/evergreenmarket/storefront-service-go/internal/session"
)

// OrderEventsPublisher hands completed orders to the external
// order-processing system.
type OrderEventsPublisher interface {
	PublishOrderSubmitted(ctx context.Context, payload contracts.OrderSubmittedPayload) error
}

type Handler struct {
	sessions  *session.Store
	rules     pricing.Rules
	publisher OrderEventsPublisher
}

func NewHandler(sessions *session.Store, rules pricing.Rules, publisher OrderEventsPublisher) *Handler {
	return &Handler{sessions: sessions, rules: rules, publisher: publisher}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()
	h.writeCart(w, sess)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unitPrice"`
		Quantity  int     `json:"quantity"`
		InStock   *bool   `json:"inStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" || body.Quantity < 1 || body.UnitPrice < 0 {
		writeError(w, http.StatusBadRequest, "productId, quantity >= 1 and unitPrice >= 0 are required")
		return
	}
	inStock := true
	if body.InStock != nil {
		inStock = *body.InStock
	}

	sess := h.sessions.GetOrCreate(chi.URLParam(r, "sessionId"))
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.AddItem(body.ProductID, body.Name, body.UnitPrice, body.Quantity, inStock)
	h.writeCart(w, sess)
}

func (h *Handler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
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

	// A result below 1 or an unknown line id is a silent no-op; the caller
	// gets the unchanged cart back.
	sess.Cart.AdjustQuantity(chi.URLParam(r, "lineId"), body.Delta)
	h.writeCart(w, sess)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Remove(chi.URLParam(r, "lineId"))
	h.writeCart(w, sess)
}

func (h *Handler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Cart.SaveForLater(chi.URLParam(r, "lineId"))
	h.writeCart(w, sess)
}

func (h *Handler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	lineID := chi.URLParam(r, "lineId")
	// The store only relocates; blocking out-of-stock moves is on us.
	if line, ok := sess.Cart.Find(lineID); ok && !line.InStock {
		writeError(w, http.StatusConflict, "item is out of stock")
		return
	}

	sess.Cart.MoveToCart(lineID)
	h.writeCart(w, sess)
}

func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Code == "" {
		writeFieldErrors(w, map[string]string{"code": "required"})
		return
	}

	sess := h.sessions.GetOrCreate(chi.URLParam(r, "sessionId"))
	sess.Lock()
	defer sess.Unlock()

	// Reapplying while a code is active is a no-op.
	sess.Cart.ApplyPromo(body.Code)
	h.writeCart(w, sess)
}

func (h *Handler) ClearPromo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Cart.ClearPromo()
	h.writeCart(w, sess)
}

// writeCart responds with the cart plus a freshly computed breakdown.
// Callers hold the session lock.
func (h *Handler) writeCart(w http.ResponseWriter, sess *session.Session) {
	b, err := sessionBreakdown(sess, h.rules)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to price cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartView(sess, b))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}
