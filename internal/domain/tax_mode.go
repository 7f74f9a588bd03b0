package domain

// TaxMode tells whether an invoice is an intra-state supply (CGST + SGST) or
// an inter-state supply (IGST only). It is derived once per document load.
type TaxMode string

const (
	TaxModeIntraState TaxMode = "intra-state"
	TaxModeInterState TaxMode = "inter-state"
)

// TaxComponent names a tax column of the item table
type TaxComponent string

const (
	TaxComponentCGST TaxComponent = "CGST"
	TaxComponentSGST TaxComponent = "SGST"
	TaxComponentIGST TaxComponent = "IGST"
)

// DefaultGstRate is the rate given to newly added items
func (m TaxMode) DefaultGstRate() float64 {
	if m == TaxModeIntraState {
		return 5
	}
	return 18
}

// Components lists the tax columns populated under this mode
func (m TaxMode) Components() []TaxComponent {
	if m == TaxModeIntraState {
		return []TaxComponent{TaxComponentCGST, TaxComponentSGST}
	}
	return []TaxComponent{TaxComponentIGST}
}

// IsIntraState reports whether the mode splits tax into CGST and SGST
func (m TaxMode) IsIntraState() bool {
	return m == TaxModeIntraState
}

// TaxAmounts holds the three tax amounts of one line item
type TaxAmounts struct {
	Igst float64 `json:"igst"`
	Cgst float64 `json:"cgst"`
	Sgst float64 `json:"sgst"`
}

// Sum returns the total of all three components
func (t TaxAmounts) Sum() float64 {
	return t.Igst + t.Cgst + t.Sgst
}

// Amount returns the value of one component
func (t TaxAmounts) Amount(c TaxComponent) float64 {
	switch c {
	case TaxComponentCGST:
		return t.Cgst
	case TaxComponentSGST:
		return t.Sgst
	case TaxComponentIGST:
		return t.Igst
	}
	return 0
}

// Taxes returns the item's current tax amounts
func (li *LineItem) Taxes() TaxAmounts {
	return TaxAmounts{Igst: li.IgstAmt, Cgst: li.CgstAmt, Sgst: li.SgstAmt}
}

// SetTaxes overwrites the item's tax amounts
func (li *LineItem) SetTaxes(t TaxAmounts) {
	li.IgstAmt = t.Igst
	li.CgstAmt = t.Cgst
	li.SgstAmt = t.Sgst
}
