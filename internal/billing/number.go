package billing

import (
	"context"
	"fmt"

	"github.com/gopidist/pharmabill/internal/models"
)

// numberOffset keeps continuity with the paper books the first invoices
// were cut from.
const numberOffset = 65

// InvoiceCounter is the slice of the invoice store the numbering scheme
// needs.
type InvoiceCounter interface {
	Count(ctx context.Context) (int64, error)
}

// TypeCode is the printed prefix: RET for retail, TI otherwise.
func TypeCode(t models.InvoiceType) string {
	if t == models.InvoiceRetail {
		return "RET"
	}
	return "TI"
}

// FormatInvoiceNo renders the wire format "<TypeCode> -<N>". The space
// before the dash is part of the printed-document format and must be
// preserved for fidelity with existing paper records.
func FormatInvoiceNo(t models.InvoiceType, n int64) string {
	return fmt.Sprintf("%s -%d", TypeCode(t), n)
}

// NextInvoiceNo derives the number from the current invoice count at
// draft-open time. Two drafts opened before either commits will compute
// the same number: this is the historical single-writer scheme, kept
// deliberately. Callers needing uniqueness under concurrent drafting
// should commit with Committer.AtomicNumbering instead, which reserves
// the number inside the commit transaction.
func NextInvoiceNo(ctx context.Context, counter InvoiceCounter, t models.InvoiceType) (string, error) {
	count, err := counter.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count invoices: %w", err)
	}
	return FormatInvoiceNo(t, count+numberOffset), nil
}
