package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api/sessions/{sessionId}", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{lineId}", h.AdjustQuantity)
			r.Delete("/items/{lineId}", h.RemoveItem)
			r.Post("/items/{lineId}/save", h.SaveForLater)
			r.Post("/items/{lineId}/move-to-cart", h.MoveToCart)
			r.Post("/promo", h.ApplyPromo)
			r.Delete("/promo", h.ClearPromo)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.StartCheckout)
			r.Get("/", h.GetCheckout)
			r.Delete("/", h.CancelCheckout)
			r.Post("/continue", h.ContinueCheckout)
			r.Post("/edit", h.EditCheckout)
			r.Post("/place-order", h.PlaceOrder)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "service": "storefront-service"}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
