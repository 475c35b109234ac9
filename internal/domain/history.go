package domain

import "fmt"

// Order is the sort direction for the history listing, keyed on creation time.
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// HistoryFilter carries the validated query parameters of a history read from
// the HTTP layer to the repo layer.
type HistoryFilter struct {
	// CadastralNumber filters by exact match when non-empty.
	CadastralNumber string
	Order           Order
	// Limit is the maximum number of rows to return, in (0, 100].
	Limit int
	// Offset is the zero-based row offset.
	Offset int
}

// NewHistoryFilter validates optional HTTP query parameters and builds a
// HistoryFilter. Nil pointers fall back to defaults (order=asc, limit=10,
// offset=0). Out-of-range values are a caller-input error, wrapped with
// ErrValidation, and never reach the store.
func NewHistoryFilter(cadastralNumber, orderBy *string, limit, offset *int) (HistoryFilter, error) {
	f := HistoryFilter{Order: OrderAscending, Limit: 10}

	if cadastralNumber != nil {
		f.CadastralNumber = *cadastralNumber
	}
	if orderBy != nil {
		switch Order(*orderBy) {
		case OrderAscending, OrderDescending:
			f.Order = Order(*orderBy)
		default:
			return HistoryFilter{}, fmt.Errorf("%w: order_by must be asc or desc", ErrValidation)
		}
	}
	if limit != nil {
		if *limit <= 0 || *limit > 100 {
			return HistoryFilter{}, fmt.Errorf("%w: limit must be between 1 and 100", ErrValidation)
		}
		f.Limit = *limit
	}
	if offset != nil {
		if *offset < 0 {
			return HistoryFilter{}, fmt.Errorf("%w: offset must not be negative", ErrValidation)
		}
		f.Offset = *offset
	}

	return f, nil
}
