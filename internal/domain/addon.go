package domain

type AddOn struct {
	ID            string `json:"_id"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Name          string `json:"name"`
	CostPrice     Amount `json:"costPrice"`
	SellingPrice  Amount `json:"sellingPrice"`
	OriginalPrice Amount `json:"originalPrice"`
	AddOn         bool   `json:"addOn"`
	SoftDelete    bool   `json:"softDelete"`
}

// Soft-deleted rows stay editable but can never be deleted again.
func (a AddOn) CanEdit() bool   { return true }
func (a AddOn) CanDelete() bool { return !a.SoftDelete }

// AddOnForm is the shared create/edit form, kept as raw strings so a failed
// submission can be re-rendered exactly as typed.
type AddOnForm struct {
	Image         string
	Category      string
	Name          string
	CostPrice     string
	SellingPrice  string
	OriginalPrice string
	AddOn         bool
}

func BlankAddOnForm() AddOnForm { return AddOnForm{AddOn: true} }

func (a AddOn) Form() AddOnForm {
	return AddOnForm{
		Image:         a.Image,
		Category:      a.Category,
		Name:          a.Name,
		CostPrice:     a.CostPrice.String(),
		SellingPrice:  a.SellingPrice.String(),
		OriginalPrice: a.OriginalPrice.String(),
		AddOn:         a.AddOn,
	}
}
