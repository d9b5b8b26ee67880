package billing

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionBill is the published live valuation of one open session. Values
// are immutable once published; floor displays read the latest snapshot and
// tolerate staleness of at most one tick.
type SessionBill struct {
	SessionID   uuid.UUID          `json:"session_id"`
	TableID     uuid.UUID          `json:"table_id"`
	TableName   string             `json:"table_name"`
	Status      enum.SessionStatus `json:"status"`
	StartedAt   time.Time          `json:"started_at"`
	DurationMs  int64              `json:"duration_ms"`
	TimeCharge  int64              `json:"time_charge"`
	FnbCharge   int64              `json:"fnb_charge"`
	TotalCharge int64              `json:"total_charge"`
	ComputedAt  time.Time          `json:"computed_at"`
}

// Recalculator periodically re-derives the bill of every open session and
// publishes the results. It only reads session snapshots; lifecycle state
// stays owned by the ledger. Everything it publishes is derivable from
// persisted state plus the clock, so a restart loses nothing.
type Recalculator struct {
	ledger   *Ledger
	clock    Clock
	interval time.Duration
	log      zerolog.Logger

	snapshot atomic.Value // []SessionBill
}

// NewRecalculator creates a recalculator ticking at the given interval.
// Intervals below 100ms are clamped.
func NewRecalculator(ledger *Ledger, clock Clock, interval time.Duration, log zerolog.Logger) *Recalculator {
	if interval < 100*time.Millisecond {
		interval = time.Second
	}
	r := &Recalculator{
		ledger:   ledger,
		clock:    clock,
		interval: interval,
		log:      log.With().Str("component", "recalculator").Logger(),
	}
	r.snapshot.Store([]SessionBill{})
	return r
}

// Run ticks until the context is cancelled. Call it in its own goroutine.
func (r *Recalculator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Msg("recalculator started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("recalculator stopped")
			return
		case <-ticker.C:
			r.Recalculate()
		}
	}
}

// Recalculate recomputes every live session once and publishes the result.
// Exposed so tests and read handlers can force a fresh snapshot.
func (r *Recalculator) Recalculate() []SessionBill {
	now := r.clock.Now()
	sessions := r.ledger.LiveSessions()

	bills := make([]SessionBill, 0, len(sessions))
	for _, s := range sessions {
		bill := ComputeBill(s, now)
		bills = append(bills, SessionBill{
			SessionID:   s.ID,
			TableID:     s.TableID,
			TableName:   s.TableName,
			Status:      s.Status,
			StartedAt:   s.StartedAt,
			DurationMs:  bill.DurationMs,
			TimeCharge:  bill.TimeCharge,
			FnbCharge:   bill.FnbCharge,
			TotalCharge: bill.TotalCharge,
			ComputedAt:  now,
		})
	}

	r.snapshot.Store(bills)
	return bills
}

// Snapshot returns the most recently published bills. Safe for concurrent
// use; never blocks lifecycle operations.
func (r *Recalculator) Snapshot() []SessionBill {
	return r.snapshot.Load().([]SessionBill)
}
