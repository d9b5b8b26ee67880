package service

import (
	"context"
	"time"

	"github.com/ardiwinata/cuepos/internal/billing"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
)

// DashboardService aggregates the figures the landing screen shows
type DashboardService struct {
	saleRepo    repository.SaleRepository
	sessionRepo repository.SessionRepository
	productRepo repository.ProductRepository
	recalc      *billing.Recalculator
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
	productRepo repository.ProductRepository,
	recalc *billing.Recalculator,
) *DashboardService {
	return &DashboardService{
		saleRepo:    saleRepo,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		recalc:      recalc,
	}
}

// DashboardStats is the aggregate snapshot for the dashboard
type DashboardStats struct {
	TodaySalesRevenue   int64                        `json:"today_sales_revenue"`
	TodaySalesCount     int64                        `json:"today_sales_count"`
	TodaySessionRevenue int64                        `json:"today_session_revenue"`
	TodaySessionCount   int64                        `json:"today_session_count"`
	ActiveSessions      []billing.SessionBill        `json:"active_sessions"`
	LowStockCount       int                          `json:"low_stock_count"`
	RevenueByDay        []repository.DailyRevenuePoint `json:"revenue_by_day"`
	TopProducts         []repository.ProductSalesRow `json:"top_products"`
}

// GetStats builds the dashboard snapshot: today's sales and session revenue,
// live tables, low stock alerts and a seven day revenue series
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -6)
	dayEnd := dayStart.Add(24 * time.Hour)

	daily, err := s.saleRepo.DailyRevenue(ctx, weekStart, dayEnd)
	if err != nil {
		return nil, err
	}

	var todayRevenue, todayCount int64
	for _, point := range daily {
		if !point.Date.Before(dayStart) {
			todayRevenue += point.Revenue
			todayCount += point.Count
		}
	}

	sessions, err := s.sessionRepo.TotalsEndedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.saleRepo.TopProducts(ctx, weekStart, dayEnd, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodaySalesRevenue:   todayRevenue,
		TodaySalesCount:     todayCount,
		TodaySessionRevenue: sessions.Total,
		TodaySessionCount:   sessions.Count,
		ActiveSessions:      s.recalc.Snapshot(),
		LowStockCount:       len(lowStock),
		RevenueByDay:        daily,
		TopProducts:         top,
	}, nil
}
