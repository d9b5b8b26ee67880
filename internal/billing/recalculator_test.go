package billing

import (
	"context"
	"testing"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a bill per live session", func(t *testing.T) {
		f := newFixture(t)
		recalc := NewRecalculator(f.ledger, f.clock, time.Second, zerolog.Nop())

		assert.Empty(t, recalc.Recalculate())

		s1, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)
		s2, err := f.ledger.StartSession(ctx, f.vipTable.ID, f.vipPkg.ID)
		require.NoError(t, err)

		f.clock.Advance(35 * time.Minute)
		bills := recalc.Recalculate()
		require.Len(t, bills, 2)

		byID := make(map[string]SessionBill, len(bills))
		for _, b := range bills {
			byID[b.SessionID.String()] = b
		}

		// 35 min on the regular package rounds up to 45 at 50000/hr
		pool := byID[s1.ID.String()]
		assert.Equal(t, "Table 7", pool.TableName)
		assert.Equal(t, int64(37500), pool.TimeCharge)
		assert.Equal(t, (35 * time.Minute).Milliseconds(), pool.DurationMs)
		assert.Equal(t, f.clock.Now(), pool.ComputedAt)

		// 35 min on VIP hits the 60-minute floor
		vip := byID[s2.ID.String()]
		assert.Equal(t, int64(75000), vip.TimeCharge)
	})

	t.Run("snapshot returns the latest published pass", func(t *testing.T) {
		f := newFixture(t)
		recalc := NewRecalculator(f.ledger, f.clock, time.Second, zerolog.Nop())

		assert.Empty(t, recalc.Snapshot())

		_, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)

		f.clock.Advance(10 * time.Minute)
		recalc.Recalculate()
		first := recalc.Snapshot()
		require.Len(t, first, 1)
		assert.Equal(t, int64(25000), first[0].TimeCharge)

		f.clock.Advance(20 * time.Minute)
		assert.Equal(t, first, recalc.Snapshot(), "snapshot only changes on a pass")

		// Still on the 30-minute minimum plateau: a pass never lowers the
		// charge even while it cannot grow.
		recalc.Recalculate()
		second := recalc.Snapshot()
		require.Len(t, second, 1)
		assert.GreaterOrEqual(t, second[0].TimeCharge, first[0].TimeCharge)
		assert.Greater(t, second[0].DurationMs, first[0].DurationMs)

		// 50 minutes clears the floor: 48 billable rounds up to a full hour
		f.clock.Advance(20 * time.Minute)
		recalc.Recalculate()
		third := recalc.Snapshot()
		require.Len(t, third, 1)
		assert.Equal(t, int64(50000), third[0].TimeCharge)
		assert.Greater(t, third[0].TimeCharge, second[0].TimeCharge)
	})

	t.Run("paused sessions keep their frozen charge", func(t *testing.T) {
		f := newFixture(t)
		recalc := NewRecalculator(f.ledger, f.clock, time.Second, zerolog.Nop())

		s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)
		f.clock.Advance(30 * time.Minute)
		_, err = f.ledger.PauseSession(ctx, s.ID)
		require.NoError(t, err)

		before := recalc.Recalculate()
		require.Len(t, before, 1)
		assert.Equal(t, enum.SessionStatusPaused, before[0].Status)

		f.clock.Advance(2 * time.Hour)
		after := recalc.Recalculate()
		require.Len(t, after, 1)
		assert.Equal(t, before[0].TimeCharge, after[0].TimeCharge)
		assert.Equal(t, before[0].DurationMs, after[0].DurationMs)
	})

	t.Run("ended sessions drop out of the next pass", func(t *testing.T) {
		f := newFixture(t)
		recalc := NewRecalculator(f.ledger, f.clock, time.Second, zerolog.Nop())

		s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)
		f.clock.Advance(15 * time.Minute)
		require.Len(t, recalc.Recalculate(), 1)

		_, err = f.ledger.StopSession(ctx, s.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, recalc.Recalculate())
	})
}

func TestRecalculatorRun(t *testing.T) {
	f := newFixture(t)
	recalc := NewRecalculator(f.ledger, f.clock, 100*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		recalc.Run(ctx)
		close(done)
	}()

	_, err := f.ledger.StartSession(context.Background(), f.table.ID, f.pkg.ID)
	require.NoError(t, err)
	f.clock.Advance(10 * time.Minute)

	deadline := time.After(2 * time.Second)
	for len(recalc.Snapshot()) == 0 {
		select {
		case <-deadline:
			t.Fatal("recalculator never published a snapshot")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recalculator did not stop on context cancellation")
	}
}
