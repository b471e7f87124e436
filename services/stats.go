package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/utils"
)

// StatsService derives summary metrics from the entity collections. It
// never mutates the records it reads.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// ChangePercent returns the period-over-period change. A previous count
// of zero yields 0, never NaN or Inf.
func ChangePercent(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// ConversionRate returns completed/total as a percentage with one
// decimal place. An empty collection yields 0.0.
func ConversionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*10) / 10
}

// AvgOrderValue is the mean total over completed orders, rounded to the
// nearest whole currency unit. Zero when there are none.
func AvgOrderValue(totals []decimal.Decimal) int64 {
	if len(totals) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum.Div(decimal.NewFromInt(int64(len(totals)))).Round(0).IntPart()
}

// TimeAgo buckets elapsed time with floor division:
// <60s "Just now", <1h "N minutes ago", <24h "N hours ago", else days.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	default:
		return fmt.Sprintf("%d days ago", seconds/86400)
	}
}

type DashboardStats struct {
	TotalCustomers         int64           `json:"totalCustomers"`
	TotalCustomersChange   float64         `json:"totalCustomersChange"`
	ActiveWorksheets       int64           `json:"activeWorksheets"`
	ActiveWorksheetsChange float64         `json:"activeWorksheetsChange"`
	PendingInvoices        int64           `json:"pendingInvoices"`
	PendingInvoicesChange  float64         `json:"pendingInvoicesChange"`
	ActiveOrders           int64           `json:"activeOrders"`
	ActiveOrdersChange     float64         `json:"activeOrdersChange"`
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	PaidInvoices           decimal.Decimal `json:"paidInvoices"`
	PendingRevenue         decimal.Decimal `json:"pendingRevenue"`
	ConversionRate         float64         `json:"conversionRate"`
	AvgOrderValue          int64           `json:"avgOrderValue"`
}

// periodCounts counts rows created in the last 30 days and in the 30
// days before that, for the change percentage.
func (s *StatsService) periodCounts(ctx context.Context, model interface{}, now time.Time) (int64, int64, error) {
	monthAgo := now.AddDate(0, 0, -30)
	twoMonthsAgo := now.AddDate(0, 0, -60)

	var current, previous int64
	if err := s.DB.WithContext(ctx).Model(model).
		Where("created_at >= ?", monthAgo).
		Count(&current).Error; err != nil {
		return 0, 0, err
	}
	if err := s.DB.WithContext(ctx).Model(model).
		Where("created_at >= ? AND created_at < ?", twoMonthsAgo, monthAgo).
		Count(&previous).Error; err != nil {
		return 0, 0, err
	}
	return current, previous, nil
}

// CollectDashboard fires the independent collection reads concurrently
// and combines them once all have finished. Results arriving in any
// order is fine; nothing is read before the join.
func (s *StatsService) CollectDashboard(ctx context.Context) (DashboardStats, error) {
	now := time.Now()
	stats := DashboardStats{
		TotalRevenue:   decimal.Zero,
		PaidInvoices:   decimal.Zero,
		PendingRevenue: decimal.Zero,
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)

	wg.Add(5)
	go func() {
		defer wg.Done()
		db := s.DB.WithContext(ctx)
		if err := db.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
			errs[0] = err
			return
		}
		cur, prev, err := s.periodCounts(ctx, &models.Customer{}, now)
		if err != nil {
			errs[0] = err
			return
		}
		stats.TotalCustomersChange = ChangePercent(cur, prev)
	}()

	go func() {
		defer wg.Done()
		db := s.DB.WithContext(ctx)
		if err := db.Model(&models.Worksheet{}).
			Where("status IN ?", []string{"pending", "in-progress"}).
			Count(&stats.ActiveWorksheets).Error; err != nil {
			errs[1] = err
			return
		}
		cur, prev, err := s.periodCounts(ctx, &models.Worksheet{}, now)
		if err != nil {
			errs[1] = err
			return
		}
		stats.ActiveWorksheetsChange = ChangePercent(cur, prev)
	}()

	go func() {
		defer wg.Done()
		db := s.DB.WithContext(ctx)
		if err := db.Model(&models.Invoice{}).
			Where("status = ?", "pending").
			Count(&stats.PendingInvoices).Error; err != nil {
			errs[2] = err
			return
		}
		cur, prev, err := s.periodCounts(ctx, &models.Invoice{}, now)
		if err != nil {
			errs[2] = err
			return
		}
		stats.PendingInvoicesChange = ChangePercent(cur, prev)
	}()

	go func() {
		defer wg.Done()
		db := s.DB.WithContext(ctx)
		if err := db.Model(&models.Order{}).
			Where("status IN ?", []string{"pending", "processing", "shipped"}).
			Count(&stats.ActiveOrders).Error; err != nil {
			errs[3] = err
			return
		}
		cur, prev, err := s.periodCounts(ctx, &models.Order{}, now)
		if err != nil {
			errs[3] = err
			return
		}
		stats.ActiveOrdersChange = ChangePercent(cur, prev)
	}()

	go func() {
		defer wg.Done()
		revenue, err := s.revenueSplit(ctx)
		if err != nil {
			errs[4] = err
			return
		}
		stats.TotalRevenue = revenue.Total
		stats.PaidInvoices = revenue.Paid
		stats.PendingRevenue = revenue.Pending

		perf, err := s.orderPerformance(ctx)
		if err != nil {
			errs[4] = err
			return
		}
		stats.ConversionRate = perf.ConversionRate
		stats.AvgOrderValue = perf.AvgOrderValue
	}()

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return DashboardStats{}, err
		}
	}
	return stats, nil
}

// RevenueSplit is the invoice revenue breakdown shown on the dashboard
// and on the invoice page stat cards.
type RevenueSplit struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

func (s *StatsService) revenueSplit(ctx context.Context) (RevenueSplit, error) {
	var rows []struct {
		Status string
		Total  decimal.Decimal
	}
	if err := s.DB.WithContext(ctx).Model(&models.Invoice{}).
		Select("status, total").
		Find(&rows).Error; err != nil {
		return RevenueSplit{}, err
	}

	// Sums run in decimal so money never accumulates float error.
	split := RevenueSplit{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
	for _, row := range rows {
		split.Total = split.Total.Add(row.Total)
		if row.Status == "paid" {
			split.Paid = split.Paid.Add(row.Total)
		}
	}
	split.Pending = split.Total.Sub(split.Paid)
	return split, nil
}

// InvoiceStats is the public entry for the invoice page stat block.
func (s *StatsService) InvoiceStats(ctx context.Context) (RevenueSplit, error) {
	return s.revenueSplit(ctx)
}

type orderPerformance struct {
	ConversionRate float64
	AvgOrderValue  int64
}

func (s *StatsService) orderPerformance(ctx context.Context) (orderPerformance, error) {
	var rows []struct {
		Status string
		Total  decimal.Decimal
	}
	if err := s.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, total").
		Find(&rows).Error; err != nil {
		return orderPerformance{}, err
	}

	var completedTotals []decimal.Decimal
	for _, row := range rows {
		if row.Status == "completed" {
			completedTotals = append(completedTotals, row.Total)
		}
	}

	return orderPerformance{
		ConversionRate: ConversionRate(int64(len(completedTotals)), int64(len(rows))),
		AvgOrderValue:  AvgOrderValue(completedTotals),
	}, nil
}

// OrderStats is the order page stat block.
type OrderStats struct {
	Total        int64           `json:"total"`
	Processing   int64           `json:"processing"`
	Completed    int64           `json:"completed"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

func (s *StatsService) OrderStats(ctx context.Context) (OrderStats, error) {
	var rows []struct {
		Status string
		Total  decimal.Decimal
	}
	if err := s.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, total").
		Find(&rows).Error; err != nil {
		return OrderStats{}, err
	}

	stats := OrderStats{TotalRevenue: decimal.Zero}
	stats.Total = int64(len(rows))
	for _, row := range rows {
		switch row.Status {
		case "processing":
			stats.Processing++
		case "completed":
			stats.Completed++
		}
		if row.Status != "cancelled" {
			stats.TotalRevenue = stats.TotalRevenue.Add(row.Total)
		}
	}
	return stats, nil
}

// TicketStats is the support ticket page stat block.
type TicketStats struct {
	Total      int64   `json:"total"`
	Open       int64   `json:"open"`
	InProgress int64   `json:"inProgress"`
	Resolved   int64   `json:"resolved"`
	AvgRating  float64 `json:"avgRating"`
}

func (s *StatsService) TicketStats(ctx context.Context) (TicketStats, error) {
	var rows []struct {
		Status string
		Rating *int
	}
	if err := s.DB.WithContext(ctx).Model(&models.SupportTicket{}).
		Select("status, rating").
		Find(&rows).Error; err != nil {
		return TicketStats{}, err
	}

	stats := TicketStats{Total: int64(len(rows))}
	var ratingSum, rated int
	for _, row := range rows {
		switch row.Status {
		case "open":
			stats.Open++
		case "in-progress":
			stats.InProgress++
		case "resolved":
			stats.Resolved++
		}
		if row.Rating != nil {
			ratingSum += *row.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AvgRating = math.Round(float64(ratingSum)/float64(rated)*10) / 10
	}
	return stats, nil
}

// Activity is one entry in the dashboard recent-activity feed.
type Activity struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
	Age     string    `json:"age"`
}

// RecentActivity assembles the feed from the newest records of each
// collection. The four reads run concurrently and join before merging.
func (s *StatsService) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	now := time.Now()

	var (
		customers []models.Customer
		invoices  []models.Invoice
		orders    []models.Order
		tickets   []models.SupportTicket
	)

	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		errs[0] = s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&customers).Error
	}()
	go func() {
		defer wg.Done()
		errs[1] = s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&invoices).Error
	}()
	go func() {
		defer wg.Done()
		errs[2] = s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&orders).Error
	}()
	go func() {
		defer wg.Done()
		errs[3] = s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&tickets).Error
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	activities := make([]Activity, 0, limit*4)
	for _, c := range customers {
		activities = append(activities, Activity{
			Message: fmt.Sprintf("New customer %s added", c.Name),
			Time:    c.CreatedAt,
		})
	}
	for _, inv := range invoices {
		activities = append(activities, Activity{
			Message: fmt.Sprintf("Invoice %s created (%s)", inv.InvoiceNumber, utils.FormatUSD(inv.Total)),
			Time:    inv.CreatedAt,
		})
	}
	for _, o := range orders {
		activities = append(activities, Activity{
			Message: fmt.Sprintf("Order %s placed (%s)", o.OrderNumber, utils.FormatUSD(o.Total)),
			Time:    o.CreatedAt,
		})
	}
	for _, t := range tickets {
		activities = append(activities, Activity{
			Message: fmt.Sprintf("Ticket %s opened: %s", t.TicketNumber, t.Subject),
			Time:    t.CreatedAt,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Time.After(activities[j].Time)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	for i := range activities {
		activities[i].Age = TimeAgo(activities[i].Time, now)
	}
	return activities, nil
}
