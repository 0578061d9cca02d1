package cart

import "time"

// LineItem is one entry in the cart. LineID identifies the entry itself and
// is distinct from ProductID, so the same product can sit in the active list
// and the saved-for-later list under different line ids.
type LineItem struct {
	LineID    string  `json:"lineId"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	InStock   bool    `json:"inStock"`
}

// PromoCode holds the user-entered code and whether the discount is active.
type PromoCode struct {
	Code    string `json:"code"`
	Applied bool   `json:"applied"`
}

// Cart is the session's shopping cart: an ordered active list and a parallel
// saved-for-later list. A line id appears in at most one of the two lists.
type Cart struct {
	Active        []LineItem `json:"active"`
	SavedForLater []LineItem `json:"savedForLater"`
	Promo         PromoCode  `json:"promo"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
