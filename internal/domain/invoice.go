package domain

// Document is the wire shape served by the remote file API. The invoice being
// viewed is the first element of Data.
type Document struct {
	Data []Invoice `json:"data"`

	raw members
}

// Invoice returns the first invoice of the document, or nil when the
// document carries none
func (d *Document) Invoice() *Invoice {
	if d == nil || len(d.Data) == 0 {
		return nil
	}
	return &d.Data[0]
}

// TransactionDetails holds the GST transaction classification
type TransactionDetails struct {
	TaxSch      string `json:"TaxSch,omitempty"`
	SupTyp      string `json:"SupTyp,omitempty"`
	RegRev      string `json:"RegRev,omitempty"`
	EcmGstin    string `json:"EcmGstin,omitempty"`
	IgstOnIntra string `json:"IgstOnIntra,omitempty"`

	raw members
}

// DocumentDetails identifies the invoice. Display only.
type DocumentDetails struct {
	Typ string `json:"Typ,omitempty"`
	No  string `json:"No,omitempty"`
	Dt  string `json:"Dt,omitempty"`

	raw members
}

// PartyDetails describes the seller or the buyer of an invoice
type PartyDetails struct {
	Gstin string `json:"Gstin,omitempty"`
	LglNm string `json:"LglNm,omitempty"`
	TrdNm string `json:"TrdNm,omitempty"`
	Pos   string `json:"Pos,omitempty"`
	Addr1 string `json:"Addr1,omitempty"`
	Addr2 string `json:"Addr2,omitempty"`
	Loc   string `json:"Loc,omitempty"`
	Pin   int    `json:"Pin,omitempty"`
	Stcd  string `json:"Stcd,omitempty"`
	Ph    string `json:"Ph,omitempty"`
	Em    string `json:"Em,omitempty"`

	raw members
}

// LineItem is a single row of an invoice's item list.
// SlNo is a 1-based sequence number kept contiguous across inserts and deletes.
type LineItem struct {
	SlNo          string  `json:"SlNo"`
	PrdDesc       string  `json:"PrdDesc"`
	IsServc       string  `json:"IsServc"`
	HsnCd         string  `json:"HsnCd"`
	Qty           float64 `json:"Qty"`
	FreeQty       float64 `json:"FreeQty"`
	Unit          string  `json:"Unit"`
	UnitPrice     float64 `json:"UnitPrice"`
	TotAmt        float64 `json:"TotAmt"`
	Discount      float64 `json:"Discount"`
	AssAmt        float64 `json:"AssAmt"`
	GstRt         float64 `json:"GstRt"`
	IgstAmt       float64 `json:"IgstAmt"`
	CgstAmt       float64 `json:"CgstAmt"`
	SgstAmt       float64 `json:"SgstAmt"`
	CesRt         float64 `json:"CesRt"`
	CesAmt        float64 `json:"CesAmt"`
	CesNonAdvlAmt float64 `json:"CesNonAdvlAmt"`
	TotItemVal    float64 `json:"TotItemVal"`

	raw members
}

// ValueDetails carries the document level aggregates. Everything except
// OthChrg and RndOffAmt is derived from the item list.
type ValueDetails struct {
	AssVal    float64 `json:"AssVal"`
	CgstVal   float64 `json:"CgstVal"`
	SgstVal   float64 `json:"SgstVal"`
	IgstVal   float64 `json:"IgstVal"`
	CesVal    float64 `json:"CesVal"`
	StCesVal  float64 `json:"StCesVal"`
	Discount  float64 `json:"Discount"`
	OthChrg   float64 `json:"OthChrg"`
	RndOffAmt float64 `json:"RndOffAmt"`
	TotInvVal float64 `json:"TotInvVal"`

	raw members
}

// Invoice represents a GST e-invoice as stored by the file backend
type Invoice struct {
	Version    string              `json:"Version,omitempty"`
	TranDtls   *TransactionDetails `json:"TranDtls,omitempty"`
	DocDtls    *DocumentDetails    `json:"DocDtls,omitempty"`
	SellerDtls *PartyDetails       `json:"SellerDtls,omitempty"`
	BuyerDtls  *PartyDetails       `json:"BuyerDtls,omitempty"`
	ItemList   []LineItem          `json:"ItemList"`
	ValDtls    *ValueDetails       `json:"ValDtls,omitempty"`

	raw members
}

// SellerState returns the seller's state code, or "" when absent
func (i *Invoice) SellerState() string {
	if i.SellerDtls == nil {
		return ""
	}
	return i.SellerDtls.Stcd
}

// BuyerState returns the buyer's state code, or "" when absent
func (i *Invoice) BuyerState() string {
	if i.BuyerDtls == nil {
		return ""
	}
	return i.BuyerDtls.Stcd
}

// ItemUpdate is the body accepted by the backend's update-items endpoint
type ItemUpdate struct {
	ItemList []LineItem    `json:"ItemList"`
	ValDtls  *ValueDetails `json:"ValDtls"`
}
