package engine

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/shopspring/decimal"
)

// tobaccoHsnCode is the tariff code of unmanufactured tobacco
const tobaccoHsnCode = "24011090"

var tobaccoDescriptions = []string{
	"asha jyoti mrp 4",
	"unmanufactured tobacco",
}

// IsTobaccoItem reports whether other charges are levied on the item
func IsTobaccoItem(item domain.LineItem) bool {
	if item.HsnCd == tobaccoHsnCode {
		return true
	}
	desc := strings.ToLower(item.PrdDesc)
	for _, s := range tobaccoDescriptions {
		if strings.Contains(desc, s) {
			return true
		}
	}
	return false
}

// AutoOtherCharges returns 18% of the taxable amount of all tobacco items
func AutoOtherCharges(items []domain.LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		if IsTobaccoItem(item) {
			sum = sum.Add(dec(item.AssAmt))
		}
	}
	return money(sum.Mul(otherChrgRatio))
}

// DetectTaxMode derives the tax mode from the seller and buyer state codes
func DetectTaxMode(inv *domain.Invoice) domain.TaxMode {
	if inv == nil {
		return domain.TaxModeInterState
	}
	seller := inv.SellerState()
	if seller != "" && seller == inv.BuyerState() {
		return domain.TaxModeIntraState
	}
	return domain.TaxModeInterState
}

// RecomputeItem derives the taxable amount and item total from quantity,
// price and discount. The given tax amounts replace whatever the item holds.
func RecomputeItem(item *domain.LineItem, taxes domain.TaxAmounts) {
	taxable := TaxableAmount(item.Qty, item.UnitPrice, item.Discount)
	item.SetTaxes(taxes)
	item.AssAmt = money(taxable)
	item.TotAmt = item.AssAmt
	item.TotItemVal = money(dec(item.AssAmt).Add(dec(taxes.Igst)).Add(dec(taxes.Cgst)).Add(dec(taxes.Sgst)))
}

// Recalculate rewrites the invoice's value details from its item list.
// OthChrg is recomputed unless manualOtherCharges is set; RndOffAmt passes
// through untouched.
func Recalculate(inv *domain.Invoice, manualOtherCharges bool) {
	if inv == nil {
		return
	}
	if inv.ValDtls == nil {
		inv.ValDtls = &domain.ValueDetails{}
	}

	var assVal, cgstVal, sgstVal, igstVal, itemVal decimal.Decimal
	for _, item := range inv.ItemList {
		assVal = assVal.Add(dec(item.AssAmt))
		cgstVal = cgstVal.Add(dec(item.CgstAmt))
		sgstVal = sgstVal.Add(dec(item.SgstAmt))
		igstVal = igstVal.Add(dec(item.IgstAmt))
		itemVal = itemVal.Add(dec(item.TotItemVal))
	}

	v := inv.ValDtls
	v.AssVal = money(assVal)
	v.CgstVal = money(cgstVal)
	v.SgstVal = money(sgstVal)
	v.IgstVal = money(igstVal)
	v.CesVal = 0
	v.Discount = 0

	if !manualOtherCharges {
		v.OthChrg = AutoOtherCharges(inv.ItemList)
	}

	v.TotInvVal = money(itemVal.Add(dec(v.OthChrg)).Add(dec(v.RndOffAmt)))
}

// ItemTotals is the grand total row of the item table
type ItemTotals struct {
	Amount    float64 `json:"amount"`
	Taxable   float64 `json:"taxable"`
	Cgst      float64 `json:"cgst"`
	Sgst      float64 `json:"sgst"`
	Igst      float64 `json:"igst"`
	ItemValue float64 `json:"item_value"`
}

// SumItems totals the item columns for display
func SumItems(items []domain.LineItem) ItemTotals {
	var amount, taxable, cgst, sgst, igst, itemVal decimal.Decimal
	for _, item := range items {
		amount = amount.Add(dec(item.TotAmt))
		taxable = taxable.Add(dec(item.AssAmt))
		cgst = cgst.Add(dec(item.CgstAmt))
		sgst = sgst.Add(dec(item.SgstAmt))
		igst = igst.Add(dec(item.IgstAmt))
		itemVal = itemVal.Add(dec(item.TotItemVal))
	}
	return ItemTotals{
		Amount:    money(amount),
		Taxable:   money(taxable),
		Cgst:      money(cgst),
		Sgst:      money(sgst),
		Igst:      money(igst),
		ItemValue: money(itemVal),
	}
}

// HasChanges reports whether two documents differ in any field. Documents
// that fail to encode are reported as changed.
func HasChanges(original, working *domain.Document) bool {
	a, err := json.Marshal(original)
	if err != nil {
		return true
	}
	b, err := json.Marshal(working)
	if err != nil {
		return true
	}
	return !bytes.Equal(a, b)
}

// CloneDocument returns a deep copy of the document
func CloneDocument(doc *domain.Document) (*domain.Document, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var clone domain.Document
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
