package billing

import "errors"

// Lifecycle errors. All are returned as plain values; callers must not
// retry blindly since each one signals either a race the operator has to
// resolve or a configuration gap.
var (
	// ErrTableNotFound is returned when the table ID is unknown to the ledger.
	ErrTableNotFound = errors.New("billing: table not found")

	// ErrSessionNotFound is returned when the session ID is unknown.
	ErrSessionNotFound = errors.New("billing: session not found")

	// ErrTableBusy is returned when starting a session on a table that is
	// not FREE, or deleting a table with a session in progress.
	ErrTableBusy = errors.New("billing: table is not free")

	// ErrTableInactive is returned when starting a session on a table that
	// has been disabled for maintenance.
	ErrTableInactive = errors.New("billing: table is not active")

	// ErrNoActivePricelist is returned when the chosen pricelist package is
	// missing, inactive, or scoped to a different table type.
	ErrNoActivePricelist = errors.New("billing: no active pricelist package for this table type")

	// ErrInvalidTransition is returned when a lifecycle call is made against
	// a session that is not in the required state (e.g. stop after stop).
	ErrInvalidTransition = errors.New("billing: invalid session state transition")

	// ErrItemNotFound is returned when attach-charge references a product
	// that does not exist, is inactive, or is not on the F&B menu.
	ErrItemNotFound = errors.New("billing: product not found or not orderable on a session")
)
