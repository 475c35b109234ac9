// Package domain contains the core data types for the cadastral query service.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Query represents one verification attempt against the external service.
// Rows are append-only: a query is written exactly once and never mutated.
type Query struct {
	// ID is the store-assigned surrogate key. Zero until persisted.
	ID int64 `json:"id"`

	CadastralNumber string  `json:"cadastral_number"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`

	// Result is tri-state: true (verified), false (rejected), nil when the
	// external verifier was unreachable at submission time.
	Result *bool `json:"result"`

	// CreatedAt is assigned by the database on insert.
	CreatedAt time.Time `json:"created_at"`
}
