package billing

import (
	"testing"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func TestTimeCharge(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		pkg     entity.PricelistSnapshot
		want    int64
	}{
		{
			name:    "grace then minimum then round-up then hourly rate",
			elapsed: minutes(35),
			pkg: entity.PricelistSnapshot{
				Unit:           enum.PricingUnitPerHour,
				PricePerUnit:   50000,
				Rounding:       enum.RoundingUp15,
				GraceMinutes:   2,
				MinBillMinutes: 30,
			},
			// 35 - 2 = 33, max(33,30) = 33, UP_15 -> 45, 45/60 * 50000
			want: 37500,
		},
		{
			name:    "entirely inside grace window is free",
			elapsed: minutes(5),
			pkg: entity.PricelistSnapshot{
				Unit:           enum.PricingUnitPerHour,
				PricePerUnit:   50000,
				GraceMinutes:   10,
				MinBillMinutes: 30,
				Rounding:       enum.RoundingNone,
			},
			want: 0,
		},
		{
			name:    "elapsed exactly equal to grace is free",
			elapsed: minutes(10),
			pkg: entity.PricelistSnapshot{
				Unit:           enum.PricingUnitPerMinute,
				PricePerUnit:   1000,
				GraceMinutes:   10,
				MinBillMinutes: 30,
				Rounding:       enum.RoundingNone,
			},
			want: 0,
		},
		{
			name:    "one minute past grace triggers the minimum floor",
			elapsed: minutes(11),
			pkg: entity.PricelistSnapshot{
				Unit:           enum.PricingUnitPerMinute,
				PricePerUnit:   1000,
				GraceMinutes:   10,
				MinBillMinutes: 30,
				Rounding:       enum.RoundingNone,
			},
			want: 30000,
		},
		{
			name:    "minimum floor then round up to the hour",
			elapsed: minutes(50),
			pkg: entity.PricelistSnapshot{
				Unit:           enum.PricingUnitPerHour,
				PricePerUnit:   75000,
				Rounding:       enum.RoundingUp10,
				GraceMinutes:   0,
				MinBillMinutes: 60,
			},
			// max(50,60) = 60, UP_10 -> 60, 1.0h * 75000
			want: 75000,
		},
		{
			name:    "per-15-minute blocks",
			elapsed: minutes(31),
			pkg: entity.PricelistSnapshot{
				Unit:         enum.PricingUnitPer15Minutes,
				PricePerUnit: 12000,
				Rounding:     enum.RoundingUp15,
			},
			// UP_15 -> 45, 45/15 = 3 units
			want: 36000,
		},
		{
			name:    "no rounding keeps fractional minutes",
			elapsed: minutes(10.5),
			pkg: entity.PricelistSnapshot{
				Unit:         enum.PricingUnitPerMinute,
				PricePerUnit: 1000,
				Rounding:     enum.RoundingNone,
			},
			want: 10500,
		},
		{
			name:    "negative elapsed clamps to zero",
			elapsed: -minutes(3),
			pkg: entity.PricelistSnapshot{
				Unit:         enum.PricingUnitPerMinute,
				PricePerUnit: 1000,
				Rounding:     enum.RoundingNone,
			},
			want: 0,
		},
		{
			name:    "zero elapsed is free even with a minimum",
			elapsed: 0,
			pkg: entity.PricelistSnapshot{
				Unit:           enum.PricingUnitPerHour,
				PricePerUnit:   50000,
				MinBillMinutes: 30,
				Rounding:       enum.RoundingNone,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeCharge(tt.elapsed, tt.pkg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeChargeDeterminism(t *testing.T) {
	pkg := entity.PricelistSnapshot{
		Unit:           enum.PricingUnitPerHour,
		PricePerUnit:   50000,
		Rounding:       enum.RoundingUp5,
		GraceMinutes:   2,
		MinBillMinutes: 30,
	}
	elapsed := minutes(47.25)

	first := TimeCharge(elapsed, pkg)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, TimeCharge(elapsed, pkg))
	}
}

func TestFnbCharge(t *testing.T) {
	items := []entity.SessionFnbItem{
		{ProductID: uuid.New(), Name: "Iced Tea", Qty: 2, Price: 15000},
		{ProductID: uuid.New(), Name: "Fried Rice", Qty: 1, Price: 30000},
	}
	assert.Equal(t, int64(60000), FnbCharge(items))
	assert.Equal(t, int64(0), FnbCharge(nil))
}

func TestBillableElapsed(t *testing.T) {
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("never negative", func(t *testing.T) {
		s := &entity.TableSession{
			StartedAt: start,
			Status:    enum.SessionStatusRunning,
		}
		got := BillableElapsed(s, start.Add(-time.Minute))
		assert.Equal(t, time.Duration(0), got)
	})

	t.Run("completed pauses excluded", func(t *testing.T) {
		s := &entity.TableSession{
			StartedAt:          start,
			Status:             enum.SessionStatusRunning,
			TotalPauseDuration: 10 * time.Minute,
		}
		got := BillableElapsed(s, start.Add(60*time.Minute))
		assert.Equal(t, 50*time.Minute, got)
	})

	t.Run("open pause excluded", func(t *testing.T) {
		pausedAt := start.Add(30 * time.Minute)
		s := &entity.TableSession{
			StartedAt: start,
			Status:    enum.SessionStatusPaused,
			PausedAt:  &pausedAt,
		}
		// 45 wall minutes, of which the last 15 are a still-open pause
		got := BillableElapsed(s, start.Add(45*time.Minute))
		assert.Equal(t, 30*time.Minute, got)
	})
}

func TestComputeBillTotal(t *testing.T) {
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	s := &entity.TableSession{
		StartedAt: start,
		Status:    enum.SessionStatusRunning,
		Package: entity.PricelistSnapshot{
			Unit:           enum.PricingUnitPerHour,
			PricePerUnit:   75000,
			Rounding:       enum.RoundingUp10,
			GraceMinutes:   0,
			MinBillMinutes: 60,
		},
		FnbItems: []entity.SessionFnbItem{
			{ProductID: uuid.New(), Name: "Snack", Qty: 2, Price: 15000},
		},
	}

	bill := ComputeBill(s, start.Add(50*time.Minute))
	assert.Equal(t, int64(75000), bill.TimeCharge)
	assert.Equal(t, int64(30000), bill.FnbCharge)
	assert.Equal(t, int64(105000), bill.TotalCharge)
	assert.Equal(t, (50 * time.Minute).Milliseconds(), bill.DurationMs)
}
