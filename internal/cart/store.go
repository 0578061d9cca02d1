package cart

import (
	"time"

	"github.com/google/uuid"
)

func New() *Cart {
	return &Cart{UpdatedAt: time.Now().UTC()}
}

// AddItem merges the product into the active list: an existing active line
// for the same product gains the quantity (and takes the latest price),
// otherwise a new line is appended under a fresh line id. Returns the line
// that was created or updated.
func (c *Cart) AddItem(productID, name string, unitPrice float64, quantity int, inStock bool) LineItem {
	for i := range c.Active {
		if c.Active[i].ProductID == productID {
			c.Active[i].Quantity += quantity
			c.Active[i].UnitPrice = unitPrice
			c.Active[i].InStock = inStock
			c.touch()
			return c.Active[i]
		}
	}

	line := LineItem{
		LineID:    uuid.NewString(),
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		InStock:   inStock,
	}
	c.Active = append(c.Active, line)
	c.touch()
	return line
}

// AdjustQuantity applies a delta to the line's quantity. A result below 1 is
// rejected silently: the line keeps its current quantity. Unknown ids are
// no-ops. Reports whether the cart changed.
func (c *Cart) AdjustQuantity(lineID string, delta int) bool {
	for _, list := range [][]LineItem{c.Active, c.SavedForLater} {
		for i := range list {
			if list[i].LineID != lineID {
				continue
			}
			if list[i].Quantity+delta < 1 {
				return false
			}
			list[i].Quantity += delta
			c.touch()
			return true
		}
	}
	return false
}

// Remove deletes the line from whichever list contains it. Unknown ids are
// no-ops.
func (c *Cart) Remove(lineID string) bool {
	if i := indexOf(c.Active, lineID); i >= 0 {
		c.Active = append(c.Active[:i], c.Active[i+1:]...)
		c.touch()
		return true
	}
	if i := indexOf(c.SavedForLater, lineID); i >= 0 {
		c.SavedForLater = append(c.SavedForLater[:i], c.SavedForLater[i+1:]...)
		c.touch()
		return true
	}
	return false
}

// SaveForLater relocates an active line to the saved-for-later list,
// preserving every field. No-op if the id is not in the active list.
func (c *Cart) SaveForLater(lineID string) bool {
	i := indexOf(c.Active, lineID)
	if i < 0 {
		return false
	}
	line := c.Active[i]
	c.Active = append(c.Active[:i], c.Active[i+1:]...)
	c.SavedForLater = append(c.SavedForLater, line)
	c.touch()
	return true
}

// MoveToCart relocates a saved-for-later line back to the active list. Stock
// is advisory only; callers that want to block out-of-stock moves check the
// line's InStock flag themselves.
func (c *Cart) MoveToCart(lineID string) bool {
	i := indexOf(c.SavedForLater, lineID)
	if i < 0 {
		return false
	}
	line := c.SavedForLater[i]
	c.SavedForLater = append(c.SavedForLater[:i], c.SavedForLater[i+1:]...)
	c.Active = append(c.Active, line)
	c.touch()
	return true
}

// Find returns the line with the given id from either list.
func (c *Cart) Find(lineID string) (LineItem, bool) {
	if i := indexOf(c.Active, lineID); i >= 0 {
		return c.Active[i], true
	}
	if i := indexOf(c.SavedForLater, lineID); i >= 0 {
		return c.SavedForLater[i], true
	}
	return LineItem{}, false
}

// ApplyPromo activates the promo discount for a non-empty code. While a code
// is applied, reapplying is a no-op; the stored code does not change until
// ClearPromo. Reports whether the promo state changed.
func (c *Cart) ApplyPromo(code string) bool {
	if code == "" || c.Promo.Applied {
		return false
	}
	c.Promo = PromoCode{Code: code, Applied: true}
	c.touch()
	return true
}

func (c *Cart) ClearPromo() {
	if c.Promo.Applied || c.Promo.Code != "" {
		c.Promo = PromoCode{}
		c.touch()
	}
}

// Clear empties both lists and resets the promo, e.g. after checkout.
func (c *Cart) Clear() {
	c.Active = nil
	c.SavedForLater = nil
	c.Promo = PromoCode{}
	c.touch()
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

func indexOf(list []LineItem, lineID string) int {
	for i := range list {
		if list[i].LineID == lineID {
			return i
		}
	}
	return -1
}
