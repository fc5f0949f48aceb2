package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
)

type LoyaltyHandler struct {
	repo loyalty.Repository
}

func NewLoyaltyHandler(repo loyalty.Repository) *LoyaltyHandler {
	return &LoyaltyHandler{repo: repo}
}

func (h *LoyaltyHandler) List(c *gin.Context) {
	userID := middleware.Caller(c).UserID

	balances, err := h.repo.ListForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if balances == nil {
		balances = []loyalty.Balance{}
	}

	var total int64
	for _, b := range balances {
		total += b.Points
	}

	c.JSON(http.StatusOK, gin.H{
		"balances":     balances,
		"total_salons": len(balances),
		"total_points": total,
	})
}

// Get returns the caller's balance at one salon together with the rates
// that salon applies. A caller with no record gets a zero balance.
func (h *LoyaltyHandler) Get(c *gin.Context) {
	salonID, ok := paramID(c, "salonId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	salon, err := h.repo.GetSalon(ctx, salonID)
	if err != nil {
		respondLookup(c, err, "salon_not_found", "Salon not found.")
		return
	}

	bal, err := h.repo.Get(ctx, middleware.Caller(c).UserID, salon.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	settings, err := h.repo.GetSettings(ctx, salon.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	rates := loyalty.RatesFor(settings)

	c.JSON(http.StatusOK, gin.H{
		"salon_id":          salon.ID,
		"salon_name":        salon.Name,
		"points":            bal.Points,
		"lifetime_points":   bal.LifetimePoints,
		"last_earned":       bal.LastEarned,
		"points_per_dollar": rates.PointsPerDollar,
		"redemption_rate":   rates.RedemptionRate.String(),
		"redeemable_value":  loyalty.Discount(bal.Points, rates.RedemptionRate).StringFixed(2),
	})
}
