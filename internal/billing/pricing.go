package billing

import (
	"math"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
)

// Bill is a point-in-time valuation of a session. Amounts are whole rupiah.
type Bill struct {
	DurationMs  int64 `json:"duration_ms"`
	TimeCharge  int64 `json:"time_charge"`
	FnbCharge   int64 `json:"fnb_charge"`
	TotalCharge int64 `json:"total_charge"`
}

// BillableElapsed returns the portion of wall time since start that counts
// toward billing: elapsed minus completed pauses minus any still-open pause.
// Never negative, even under clock skew.
func BillableElapsed(s *entity.TableSession, now time.Time) time.Duration {
	paused := s.TotalPauseDuration
	if s.Status == enum.SessionStatusPaused && s.PausedAt != nil {
		paused += now.Sub(*s.PausedAt)
	}
	d := now.Sub(s.StartedAt) - paused
	if d < 0 {
		d = 0
	}
	return d
}

// TimeCharge converts billable elapsed time into money using a frozen
// pricelist snapshot. Steps, in order: subtract the grace period, floor to
// the minimum billable minutes, round up to the configured block, convert
// minutes to billing units, apply the rate.
//
// A session that ends entirely inside the grace window is free: the minimum
// floor only applies once some billable time exists.
//
// The function is pure; recomputing with the same inputs always yields the
// same charge.
func TimeCharge(elapsed time.Duration, pkg entity.PricelistSnapshot) int64 {
	minutes := elapsed.Minutes()
	if minutes < 0 {
		minutes = 0
	}

	billable := minutes - float64(pkg.GraceMinutes)
	if billable <= 0 {
		return 0
	}

	if floor := float64(pkg.MinBillMinutes); billable < floor {
		billable = floor
	}

	if block := pkg.Rounding.BlockMinutes(); block > 0 {
		billable = math.Ceil(billable/block) * block
	}

	units := billable / pkg.Unit.Minutes()
	return int64(math.Round(units * float64(pkg.PricePerUnit)))
}

// FnbCharge sums the attached food & beverage lines at their snapshotted
// prices.
func FnbCharge(items []entity.SessionFnbItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Qty)
	}
	return total
}

// ComputeBill derives the full bill for a session as of now. It reads the
// session once and never mutates it.
func ComputeBill(s *entity.TableSession, now time.Time) Bill {
	elapsed := BillableElapsed(s, now)
	timeCharge := TimeCharge(elapsed, s.Package)
	fnbCharge := FnbCharge(s.FnbItems)

	return Bill{
		DurationMs:  elapsed.Milliseconds(),
		TimeCharge:  timeCharge,
		FnbCharge:   fnbCharge,
		TotalCharge: timeCharge + fnbCharge,
	}
}
