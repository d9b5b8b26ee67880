package enum

// ShiftStatus represents the state of a cashier shift
type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "OPEN"
	ShiftStatusClosed ShiftStatus = "CLOSED"
)

// CashMovementType records whether cash was put into or taken out of the drawer
type CashMovementType string

const (
	CashMovementIn  CashMovementType = "IN"
	CashMovementOut CashMovementType = "OUT"
)

// IsValid reports whether the movement type is a known value
func (t CashMovementType) IsValid() bool {
	return t == CashMovementIn || t == CashMovementOut
}
