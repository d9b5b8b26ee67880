package enum

// TableType categorizes billiard tables; pricelist packages are scoped to one type.
type TableType string

const (
	TableTypePool    TableType = "POOL"
	TableTypeSnooker TableType = "SNOOKER"
	TableTypeVIP     TableType = "VIP"
)

// IsValid reports whether the table type is a known value
func (t TableType) IsValid() bool {
	switch t {
	case TableTypePool, TableTypeSnooker, TableTypeVIP:
		return true
	}
	return false
}

// TableStatus represents the current occupancy state of a table
type TableStatus string

const (
	TableStatusFree    TableStatus = "FREE"
	TableStatusRunning TableStatus = "RUNNING"
	TableStatusPaused  TableStatus = "PAUSED"
)

// SessionStatus represents the lifecycle state of a table session.
// Ended is terminal.
type SessionStatus string

const (
	SessionStatusRunning SessionStatus = "RUNNING"
	SessionStatusPaused  SessionStatus = "PAUSED"
	SessionStatusEnded   SessionStatus = "ENDED"
)

// PricingUnit is the billing granularity of a pricelist package
type PricingUnit string

const (
	PricingUnitPerMinute    PricingUnit = "PER_MINUTE"
	PricingUnitPer15Minutes PricingUnit = "PER_15_MINUTES"
	PricingUnitPerHour      PricingUnit = "PER_HOUR"
)

// IsValid reports whether the pricing unit is a known value
func (u PricingUnit) IsValid() bool {
	switch u {
	case PricingUnitPerMinute, PricingUnitPer15Minutes, PricingUnitPerHour:
		return true
	}
	return false
}

// Minutes returns the number of minutes in one billing unit
func (u PricingUnit) Minutes() float64 {
	switch u {
	case PricingUnitPer15Minutes:
		return 15
	case PricingUnitPerHour:
		return 60
	default:
		return 1
	}
}

// RoundingMethod rounds billable minutes up to the next block
type RoundingMethod string

const (
	RoundingNone RoundingMethod = "NONE"
	RoundingUp5  RoundingMethod = "UP_5"
	RoundingUp10 RoundingMethod = "UP_10"
	RoundingUp15 RoundingMethod = "UP_15"
)

// IsValid reports whether the rounding method is a known value
func (r RoundingMethod) IsValid() bool {
	switch r {
	case RoundingNone, RoundingUp5, RoundingUp10, RoundingUp15:
		return true
	}
	return false
}

// BlockMinutes returns the rounding block size in minutes, 0 for none
func (r RoundingMethod) BlockMinutes() float64 {
	switch r {
	case RoundingUp5:
		return 5
	case RoundingUp10:
		return 10
	case RoundingUp15:
		return 15
	default:
		return 0
	}
}
