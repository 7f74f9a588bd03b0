package engine

import "errors"

var (
	// ErrItemIndexOutOfRange is returned when an item index is outside the list
	ErrItemIndexOutOfRange = errors.New("item index out of range")

	// ErrUnknownField is returned for field names the item editor does not know
	ErrUnknownField = errors.New("unknown item field")

	// ErrFieldLocked is returned when editing the GST rate. Tax amounts are
	// frozen for the session, so the rate stays with them.
	ErrFieldLocked = errors.New("field cannot be edited during an edit session")

	// ErrNoInvoice is returned when a document carries no invoice
	ErrNoInvoice = errors.New("document has no invoice")
)
