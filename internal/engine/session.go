package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
)

// Field names an editable column of a line item
type Field string

const (
	FieldDescription Field = "PrdDesc"
	FieldHsnCode     Field = "HsnCd"
	FieldUnit        Field = "Unit"
	FieldQuantity    Field = "Qty"
	FieldUnitPrice   Field = "UnitPrice"
	FieldDiscount    Field = "Discount"
	FieldGstRate     Field = "GstRt"
)

// Session is one edit session over an invoice document: the baseline it was
// forked from, the working copy being edited, and the tax amounts frozen at
// the moment editing started.
type Session struct {
	ID                 string                       `json:"id"`
	FileName           string                       `json:"file_name"`
	TaxMode            domain.TaxMode               `json:"tax_mode"`
	Original           *domain.Document             `json:"original"`
	Working            *domain.Document             `json:"working"`
	TaxSnapshot        map[string]domain.TaxAmounts `json:"tax_snapshot"`
	OtherChargesManual bool                         `json:"other_charges_manual"`
	StartedAt          time.Time                    `json:"started_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
}

// StartSession forks the document into a working copy and snapshots every
// item's tax amounts keyed by SlNo.
func StartSession(id, fileName string, doc *domain.Document) (*Session, error) {
	if doc.Invoice() == nil {
		return nil, ErrNoInvoice
	}

	original, err := CloneDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	working, err := CloneDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}

	inv := working.Invoice()
	snapshot := make(map[string]domain.TaxAmounts, len(inv.ItemList))
	for _, item := range inv.ItemList {
		snapshot[item.SlNo] = item.Taxes()
	}

	now := time.Now().UTC()
	return &Session{
		ID:          id,
		FileName:    fileName,
		TaxMode:     DetectTaxMode(inv),
		Original:    original,
		Working:     working,
		TaxSnapshot: snapshot,
		StartedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Invoice returns the working copy's invoice
func (s *Session) Invoice() *domain.Invoice {
	return s.Working.Invoice()
}

func (s *Session) item(index int) (*domain.LineItem, error) {
	inv := s.Invoice()
	if inv == nil || index < 0 || index >= len(inv.ItemList) {
		return nil, fmt.Errorf("%w: %d", ErrItemIndexOutOfRange, index)
	}
	return &inv.ItemList[index], nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// ApplyFieldEdit sets one field of one item from raw user input, recomputes
// the item against its frozen tax amounts and re-aggregates the document.
func (s *Session) ApplyFieldEdit(index int, field Field, raw string) error {
	item, err := s.item(index)
	if err != nil {
		return err
	}

	switch field {
	case FieldDescription:
		item.PrdDesc = raw
	case FieldHsnCode:
		item.HsnCd = raw
	case FieldUnit:
		item.Unit = raw
	case FieldQuantity:
		item.Qty = ParseAmount(raw)
	case FieldUnitPrice:
		item.UnitPrice = ParseAmount(raw)
	case FieldDiscount:
		item.Discount = ParseAmount(raw)
	case FieldGstRate:
		return fmt.Errorf("%w: %s", ErrFieldLocked, field)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	RecomputeItem(item, s.TaxSnapshot[item.SlNo])
	s.Recalculate()
	return nil
}

// SetOtherCharges stores a manual other-charges amount. Automatic
// recomputation stays off until the next session.
func (s *Session) SetOtherCharges(raw string) {
	inv := s.Invoice()
	if inv.ValDtls == nil {
		inv.ValDtls = &domain.ValueDetails{}
	}
	inv.ValDtls.OthChrg = Round2(ParseAmount(raw))
	s.OtherChargesManual = true
	s.Recalculate()
}

// AddItem appends a default item with the next SlNo and returns its index
func (s *Session) AddItem() int {
	inv := s.Invoice()
	slNo := strconv.Itoa(len(inv.ItemList) + 1)

	inv.ItemList = append(inv.ItemList, domain.LineItem{
		SlNo:    slNo,
		PrdDesc: "New Product",
		IsServc: "N",
		Qty:     1,
		Unit:    "BAG",
		GstRt:   s.TaxMode.DefaultGstRate(),
	})
	if s.TaxSnapshot == nil {
		s.TaxSnapshot = make(map[string]domain.TaxAmounts)
	}
	s.TaxSnapshot[slNo] = domain.TaxAmounts{}

	s.Recalculate()
	return len(inv.ItemList) - 1
}

// DeleteItem removes an item and renumbers the rest from 1. Snapshot entries
// move with their items so frozen taxes stay attached to the right row.
func (s *Session) DeleteItem(index int) error {
	deleted, err := s.item(index)
	if err != nil {
		return err
	}
	deletedSlNo := deleted.SlNo

	inv := s.Invoice()
	inv.ItemList = append(inv.ItemList[:index], inv.ItemList[index+1:]...)

	snapshot := make(map[string]domain.TaxAmounts, len(inv.ItemList))
	for i := range inv.ItemList {
		item := &inv.ItemList[i]
		taxes, ok := s.TaxSnapshot[item.SlNo]
		if !ok || item.SlNo == deletedSlNo {
			taxes = domain.TaxAmounts{}
		}
		item.SlNo = strconv.Itoa(i + 1)
		snapshot[item.SlNo] = taxes
	}
	s.TaxSnapshot = snapshot

	s.Recalculate()
	return nil
}

// Recalculate re-aggregates the working copy's value details
func (s *Session) Recalculate() {
	Recalculate(s.Invoice(), s.OtherChargesManual)
	s.touch()
}

// HasChanges reports whether the working copy differs from the baseline
func (s *Session) HasChanges() bool {
	return HasChanges(s.Original, s.Working)
}

// Payload returns the body submitted to the backend on save
func (s *Session) Payload() domain.ItemUpdate {
	inv := s.Invoice()
	return domain.ItemUpdate{
		ItemList: inv.ItemList,
		ValDtls:  inv.ValDtls,
	}
}

// Commit makes the working copy the new baseline
func (s *Session) Commit() error {
	committed, err := CloneDocument(s.Working)
	if err != nil {
		return fmt.Errorf("failed to copy document: %w", err)
	}
	s.Original = committed
	s.touch()
	return nil
}
