package checkout

import "sort"

// Address is a plain value record with an explicit field list; copying
// shipping into billing is a whole-struct assignment, never a partial merge.
type Address struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// FieldErrors maps field names to step-local validation messages. A failed
// step keeps the user where they are; nothing aborts the flow.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msg := "invalid fields:"
	for _, k := range keys {
		msg += " " + k
	}
	return msg
}

// validate checks the required fields. Line2 is optional; email and phone
// format checks stay with the host's input controls, only presence is
// enforced here.
func (a Address) validate() FieldErrors {
	errs := FieldErrors{}
	required := map[string]string{
		"fullName":   a.FullName,
		"email":      a.Email,
		"phone":      a.Phone,
		"line1":      a.Line1,
		"city":       a.City,
		"state":      a.State,
		"postalCode": a.PostalCode,
		"country":    a.Country,
	}
	for field, v := range required {
		if v == "" {
			errs[field] = "required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
