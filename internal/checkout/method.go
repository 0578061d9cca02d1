package checkout

// ShippingMethod is one of the three fixed delivery options. The fee
// replaces the cart page's free-shipping threshold rule once checkout is
// underway.
type ShippingMethod struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Fee      float64 `json:"fee"`
	LeadTime string  `json:"leadTime"`
}

const (
	MethodStandard  = "standard"
	MethodExpress   = "express"
	MethodOvernight = "overnight"
)

var shippingMethods = []ShippingMethod{
	{ID: MethodStandard, Label: "Standard Shipping", Fee: 9.99, LeadTime: "5-7 business days"},
	{ID: MethodExpress, Label: "Express Shipping", Fee: 19.99, LeadTime: "2-3 business days"},
	{ID: MethodOvernight, Label: "Overnight Shipping", Fee: 29.99, LeadTime: "Next business day"},
}

// Methods returns the fixed shipping method catalog in display order.
func Methods() []ShippingMethod {
	out := make([]ShippingMethod, len(shippingMethods))
	copy(out, shippingMethods)
	return out
}

func MethodByID(id string) (ShippingMethod, bool) {
	for _, m := range shippingMethods {
		if m.ID == id {
			return m, true
		}
	}
	return ShippingMethod{}, false
}
