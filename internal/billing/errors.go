package billing

import "errors"

var (
	// ErrDuplicateLine rejects adding a product already on the draft.
	// Surfaced as a warning; the draft is otherwise unchanged.
	ErrDuplicateLine = errors.New("product already added")
	// ErrEmptyDraft blocks committing a draft with no lines.
	ErrEmptyDraft = errors.New("invoice has no line items")
	// ErrPartyRequired blocks committing a wholesale invoice without a
	// selected party. Retail proceeds as a cash sale.
	ErrPartyRequired = errors.New("wholesale invoice requires a party")
	// ErrNoInvoiceNumber blocks committing a draft that was never
	// assigned a number, unless the committer assigns one itself.
	ErrNoInvoiceNumber = errors.New("invoice number not assigned")
	// ErrProductMissing means a line references a product that vanished
	// from the catalog before commit. The whole commit fails rather than
	// silently skipping the line, which would corrupt shown totals.
	ErrProductMissing = errors.New("line references a missing product")
	// ErrInsufficientStock is returned only when the committer is
	// configured to disallow negative stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrLineIndex reports an out-of-range line index.
	ErrLineIndex = errors.New("line index out of range")
)
