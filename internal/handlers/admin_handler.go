package handlers

import (
	"cmp"
	"context"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

// AdminHandler serves platform analytics. Every query is plain SQL that
// runs on both PostgreSQL and SQLite; date bucketing happens in Go.
type AdminHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db, now: time.Now}
}

type groupCount struct {
	Label string
	Total int64
}

type hourCount struct {
	Hour         int   `json:"hour"`
	Appointments int64 `json:"appointments"`
}

type monthRevenue struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
}

type salonRevenue struct {
	SalonID uint            `json:"salon_id"`
	Salon   string          `json:"salon"`
	Revenue decimal.Decimal `json:"revenue"`
}

type topEarner struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *AdminHandler) count(ctx context.Context, model any, query string, args ...any) (int64, error) {
	var n int64
	q := h.db.WithContext(ctx).Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	err := q.Count(&n).Error
	return n, err
}

func (h *AdminHandler) groupBy(ctx context.Context, model any, column string) (map[string]int64, error) {
	var rows []groupCount
	if err := h.db.WithContext(ctx).
		Model(model).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Label] = r.Total
	}
	return out, nil
}

func (h *AdminHandler) revenueSince(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := h.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("payment_status = ?", models.PaymentStatusCompleted)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Row().Scan(&total)
	return total, err
}

func (h *AdminHandler) pointsTotals(ctx context.Context) (issued, current int64, err error) {
	var row struct {
		Issued  int64
		Current int64
	}
	err = h.db.WithContext(ctx).
		Model(&models.Loyalty{}).
		Select("COALESCE(SUM(lifetime_points), 0) AS issued, COALESCE(SUM(points), 0) AS current").
		Scan(&row).Error
	return row.Issued, row.Current, err
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func respondStats(c *gin.Context, body gin.H, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// ======================================================
// STATS
// ======================================================

func (h *AdminHandler) engagement(ctx context.Context) (gin.H, error) {
	totalUsers, err := h.count(ctx, &models.User{}, "")
	if err != nil {
		return nil, err
	}

	var active int64
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("user_id").
		Count(&active).Error; err != nil {
		return nil, err
	}

	recent, err := h.count(ctx, &models.User{}, "created_at >= ?", h.now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	byRole, err := h.groupBy(ctx, &models.User{}, "role")
	if err != nil {
		return nil, err
	}

	return gin.H{
		"total_users":        totalUsers,
		"active_users":       active,
		"recent_signups_30d": recent,
		"users_by_role":      byRole,
		"engagement_rate":    percent(active, totalUsers),
	}, nil
}

func (h *AdminHandler) Engagement(c *gin.Context) {
	body, err := h.engagement(c.Request.Context())
	respondStats(c, body, err)
}

// Appointments reports totals, the current week and the five busiest
// hours of day (UTC).
func (h *AdminHandler) Appointments(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.count(ctx, &models.Appointment{}, "")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	now := h.now().UTC()
	weekday := (int(now.Weekday()) + 6) % 7
	weekStart := time.Date(now.Year(), now.Month(), now.Day()-weekday, 0, 0, 0, 0, time.UTC)
	thisWeek, err := h.count(ctx, &models.Appointment{}, "scheduled_time >= ?", weekStart)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	byStatus, err := h.groupBy(ctx, &models.Appointment{}, "status")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var times []time.Time
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Pluck("scheduled_time", &times).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_appointments": total,
		"this_week":          thisWeek,
		"by_status":          byStatus,
		"peak_hours":         peakHours(times, 5),
	})
}

func peakHours(times []time.Time, limit int) []hourCount {
	var buckets [24]int64
	for _, t := range times {
		buckets[t.UTC().Hour()]++
	}

	out := make([]hourCount, 0, 24)
	for hour, n := range buckets {
		if n > 0 {
			out = append(out, hourCount{Hour: hour, Appointments: n})
		}
	}
	slices.SortStableFunc(out, func(a, b hourCount) int {
		return cmp.Compare(b.Appointments, a.Appointments)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (h *AdminHandler) Revenue(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.revenueSince(ctx, nil)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var top []salonRevenue
	if err := h.db.WithContext(ctx).
		Table("orders AS o").
		Select("s.id AS salon_id, s.name AS salon, COALESCE(SUM(o.total_amount), 0) AS revenue").
		Joins("JOIN salons s ON s.id = o.salon_id").
		Where("o.payment_status = ?", models.OrderPaymentPaid).
		Group("s.id, s.name").
		Order("revenue DESC").
		Limit(10).
		Scan(&top).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if top == nil {
		top = []salonRevenue{}
	}

	since := monthStart(h.now().UTC()).AddDate(0, -5, 0)
	var payments []models.Payment
	if err := h.db.WithContext(ctx).
		Select("amount", "created_at").
		Where("payment_status = ? AND created_at >= ?", models.PaymentStatusCompleted, since).
		Find(&payments).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_revenue": total.StringFixed(2),
		"top_salons":    top,
		"monthly_trend": monthlyRevenue(payments),
	})
}

// monthlyRevenue buckets payments by UTC calendar month, oldest first.
func monthlyRevenue(payments []models.Payment) []monthRevenue {
	sums := map[string]decimal.Decimal{}
	for _, p := range payments {
		key := p.CreatedAt.UTC().Format("2006-01")
		sums[key] = sums[key].Add(p.Amount)
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	slices.Sort(months)

	out := make([]monthRevenue, 0, len(months))
	for _, m := range months {
		out = append(out, monthRevenue{Month: m, Revenue: sums[m].StringFixed(2)})
	}
	return out
}

func (h *AdminHandler) Loyalty(c *gin.Context) {
	ctx := c.Request.Context()

	issued, current, err := h.pointsTotals(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	members, err := h.count(ctx, &models.Loyalty{}, "points > ?", 0)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var top []topEarner
	if err := h.db.WithContext(ctx).
		Table("loyalty AS l").
		Select("u.full_name AS name, l.lifetime_points AS points").
		Joins("JOIN users u ON u.id = l.user_id").
		Order("l.lifetime_points DESC").
		Limit(10).
		Scan(&top).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if top == nil {
		top = []topEarner{}
	}

	redeemed := issued - current
	c.JSON(http.StatusOK, gin.H{
		"total_points_issued":    issued,
		"current_points_balance": current,
		"points_redeemed":        redeemed,
		"redemption_rate":        percent(redeemed, issued),
		"active_members":         members,
		"top_earners":            top,
	})
}

func (h *AdminHandler) Demographics(c *gin.Context) {
	ctx := c.Request.Context()

	byRole, err := h.groupBy(ctx, &models.User{}, "role")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	byStatus, err := h.groupBy(ctx, &models.Salon{}, "status")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	salons, err := h.count(ctx, &models.Salon{}, "")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	staff, err := h.count(ctx, &models.Staff{}, "is_active = ?", true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users_by_role":    byRole,
		"salons_by_status": byStatus,
		"total_salons":     salons,
		"total_staff":      staff,
	})
}

// Retention counts customers who booked more than once and those with
// no appointment scheduled in the last 90 days.
func (h *AdminHandler) Retention(c *gin.Context) {
	ctx := c.Request.Context()

	var visits []struct {
		UserID uint
		Visits int64
	}
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("user_id, COUNT(*) AS visits").
		Group("user_id").
		Scan(&visits).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var recent []uint
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("scheduled_time >= ?", h.now().UTC().AddDate(0, 0, -90)).
		Distinct().
		Pluck("user_id", &recent).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var repeat, all int64
	for _, v := range visits {
		all += v.Visits
		if v.Visits > 1 {
			repeat++
		}
	}
	customers := int64(len(visits))

	avg := 0.0
	if customers > 0 {
		avg = math.Round(float64(all)/float64(customers)*100) / 100
	}

	c.JSON(http.StatusOK, gin.H{
		"total_customers":             customers,
		"repeat_customers":            repeat,
		"retention_rate":              percent(repeat, customers),
		"average_visits_per_customer": avg,
		"inactive_users_90d":          customers - int64(len(recent)),
	})
}

// ======================================================
// REPORTS
// ======================================================

func (h *AdminHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now().UTC()
	month := monthStart(now)

	counts := map[string]int64{}
	queries := []struct {
		key   string
		model any
		query string
		args  []any
	}{
		{"total_users", &models.User{}, "", nil},
		{"total_salons", &models.Salon{}, "", nil},
		{"active_salons", &models.Salon{}, "status = ?", []any{models.SalonStatusActive}},
		{"total_appointments", &models.Appointment{}, "", nil},
		{"new_users", &models.User{}, "created_at >= ?", []any{month}},
		{"month_appointments", &models.Appointment{}, "scheduled_time >= ?", []any{month}},
		{"active_members", &models.Loyalty{}, "points > ?", []any{0}},
	}
	for _, q := range queries {
		n, err := h.count(ctx, q.model, q.query, q.args...)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		counts[q.key] = n
	}

	revenue, err := h.revenueSince(ctx, nil)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	monthRev, err := h.revenueSince(ctx, &month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	issued, _, err := h.pointsTotals(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": now,
		"overview": gin.H{
			"total_users":        counts["total_users"],
			"total_salons":       counts["total_salons"],
			"active_salons":      counts["active_salons"],
			"total_appointments": counts["total_appointments"],
			"total_revenue":      revenue.StringFixed(2),
		},
		"this_month": gin.H{
			"new_users":    counts["new_users"],
			"appointments": counts["month_appointments"],
			"revenue":      monthRev.StringFixed(2),
		},
		"loyalty": gin.H{
			"active_members":      counts["active_members"],
			"total_points_issued": issued,
		},
	})
}

func (h *AdminHandler) SystemHealth(c *gin.Context) {
	ctx := c.Request.Context()

	database := "healthy"
	if sqlDB, err := h.db.DB(); err != nil {
		database = "error: " + err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		database = "error: " + err.Error()
	}

	records := map[string]int64{}
	for name, model := range map[string]any{
		"users":        &models.User{},
		"salons":       &models.Salon{},
		"appointments": &models.Appointment{},
		"payments":     &models.Payment{},
	} {
		n, err := h.count(ctx, model, "")
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		records[name] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"timestamp":     h.now().UTC(),
		"database":      database,
		"record_counts": records,
	})
}
