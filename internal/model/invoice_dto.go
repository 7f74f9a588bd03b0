package model

import (
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
)

// InvoiceResponse is the detail view of an invoice file
type InvoiceResponse struct {
	FileName   string            `json:"file_name"`
	TaxMode    domain.TaxMode    `json:"tax_mode"`
	TaxColumns []string          `json:"tax_columns"`
	Invoice    *domain.Invoice   `json:"invoice"`
	Totals     engine.ItemTotals `json:"totals"`
}

// SessionResponse is the state of an edit session
type SessionResponse struct {
	SessionID          string            `json:"session_id"`
	FileName           string            `json:"file_name"`
	TaxMode            domain.TaxMode    `json:"tax_mode"`
	TaxColumns         []string          `json:"tax_columns"`
	Invoice            *domain.Invoice   `json:"invoice"`
	Totals             engine.ItemTotals `json:"totals"`
	HasChanges         bool              `json:"has_changes"`
	OtherChargesManual bool              `json:"other_charges_manual"`
	StartedAt          time.Time         `json:"started_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// EditItemRequest sets one field of one item
type EditItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// OtherChargesRequest sets the other charges manually
type OtherChargesRequest struct {
	Value string `json:"value"`
}

// SaveResponse reports the result of a save
type SaveResponse struct {
	Result     string       `json:"result"`
	Message    string       `json:"message"`
	Revision   *RevisionDTO `json:"revision,omitempty"`
	ArchiveKey string       `json:"archive_key,omitempty"`
}

func taxColumns(mode domain.TaxMode) []string {
	components := mode.Components()
	columns := make([]string, len(components))
	for i, c := range components {
		columns[i] = string(c)
	}
	return columns
}

// NewInvoiceResponse builds the detail view
func NewInvoiceResponse(fileName string, mode domain.TaxMode, inv *domain.Invoice, totals engine.ItemTotals) *InvoiceResponse {
	return &InvoiceResponse{
		FileName:   fileName,
		TaxMode:    mode,
		TaxColumns: taxColumns(mode),
		Invoice:    inv,
		Totals:     totals,
	}
}

// NewSessionResponse builds the session view
func NewSessionResponse(session *engine.Session, totals engine.ItemTotals, hasChanges bool) *SessionResponse {
	return &SessionResponse{
		SessionID:          session.ID,
		FileName:           session.FileName,
		TaxMode:            session.TaxMode,
		TaxColumns:         taxColumns(session.TaxMode),
		Invoice:            session.Invoice(),
		Totals:             totals,
		HasChanges:         hasChanges,
		OtherChargesManual: session.OtherChargesManual,
		StartedAt:          session.StartedAt,
		UpdatedAt:          session.UpdatedAt,
	}
}

// NewRevisionDTO converts a single revision
func NewRevisionDTO(r *domain.Revision) *RevisionDTO {
	if r == nil {
		return nil
	}
	return &RevisionDTO{
		ID:            r.ID,
		SessionID:     r.SessionID,
		ItemCount:     r.ItemCount,
		PreviousTotal: r.PreviousTotal,
		NewTotal:      r.NewTotal,
		SavedAt:       r.SavedAt,
	}
}
