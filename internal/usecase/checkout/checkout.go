package checkout

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/commerce"
	"github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/metrics"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type Input struct {
	CartID        uint
	RedeemPoints  int64
	PaymentMethod string
}

// Result amounts are 2-dp strings.
type Result struct {
	OrderID        uint   `json:"order_id"`
	Subtotal       string `json:"subtotal"`
	Discount       string `json:"discount"`
	Total          string `json:"total"`
	PointsRedeemed int64  `json:"points_redeemed"`
	PointsEarned   int64  `json:"points_earned"`
	TransactionRef string `json:"transaction_ref"`
	PaymentMethod  string `json:"payment_method"`
}

type Checkout struct {
	repo  domain.Repository
	audit audit.Recorder
	az    *authz.Authorizer
	now   func() time.Time
}

func NewCheckout(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
) *Checkout {
	return &Checkout{
		repo:  repo,
		audit: audit,
		az:    az,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute turns an active cart into a paid order. Every write happens in
// one transaction; any failure leaves cart, stock and balance untouched.
func (uc *Checkout) Execute(
	ctx context.Context,
	caller authz.Caller,
	in Input,
) (*Result, error) {

	method, err := domain.NormalizePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := loyalty.ValidateRedemption(in.RedeemPoints); err != nil {
		return nil, err
	}

	cart, err := uc.repo.GetCart(ctx, in.CartID)
	if err != nil {
		return nil, notFound(err, "cart_not_found", "Cart not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionCartManage, authz.Resource{
		SubjectUserID: cart.UserID,
	}); err != nil {
		uc.count("forbidden")
		return nil, err
	}

	if err := domain.CanModify(cart); err != nil {
		uc.count("rejected")
		return nil, err
	}

	var (
		res   Result
		order models.Order
	)
	res.PaymentMethod = method

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		now := uc.now()

		// --------------------------------------------------
		// Claim
		// --------------------------------------------------
		claimed, err := tx.ClaimCart(ctx, cart.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return httperr.InvalidState("cart_not_active", "Cart is no longer active.")
		}

		items, err := tx.ListCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return httperr.Validation("empty_cart", "Cart has no items.")
		}

		// --------------------------------------------------
		// Totals + redemption
		// --------------------------------------------------
		settings, err := tx.GetSettings(ctx, cart.SalonID)
		if err != nil {
			return err
		}
		rates := loyalty.RatesFor(settings)

		totals, err := domain.ComputeTotals(items, in.RedeemPoints, rates.RedemptionRate)
		if err != nil {
			return err
		}

		if in.RedeemPoints > 0 {
			ok, err := tx.RedeemPoints(ctx, caller.UserID, cart.SalonID, in.RedeemPoints)
			if err != nil {
				return err
			}
			if !ok {
				return loyalty.ErrInsufficientPoints()
			}
		}

		// --------------------------------------------------
		// Payment + order
		// --------------------------------------------------
		payment := &models.Payment{
			UserID:         caller.UserID,
			Amount:         totals.Total,
			PaymentMethod:  method,
			PaymentStatus:  models.PaymentStatusCompleted,
			TransactionRef: domain.TransactionRef(),
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		earned := loyalty.PointsFor(totals.Total, rates.PointsPerDollar)

		order = models.Order{
			UserID:         caller.UserID,
			SalonID:        cart.SalonID,
			CartID:         cart.ID,
			PaymentID:      payment.ID,
			Subtotal:       totals.Subtotal,
			Discount:       totals.Discount,
			TotalAmount:    totals.Total,
			PointsRedeemed: in.RedeemPoints,
			PointsEarned:   earned,
			PaymentStatus:  models.OrderPaymentPaid,
			OrderStatus:    models.OrderStatusCompleted,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}
		if err := tx.CreateOrderItems(ctx, domain.OrderItems(order.ID, items)); err != nil {
			return err
		}

		// --------------------------------------------------
		// Stock
		// --------------------------------------------------
		for _, it := range items {
			if it.Type != models.ItemTypeProduct || it.ProductID == nil {
				continue
			}
			ok, err := tx.DecrementStock(ctx, *it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return httperr.Conflict(codeInsufficientStock, "A product in the cart is out of stock.")
			}
		}

		// --------------------------------------------------
		// Loyalty on the amount charged
		// --------------------------------------------------
		if err := tx.AwardPoints(ctx, caller.UserID, cart.SalonID, earned, now); err != nil {
			return err
		}

		res.OrderID = order.ID
		res.Subtotal = totals.Subtotal.StringFixed(2)
		res.Discount = totals.Discount.StringFixed(2)
		res.Total = totals.Total.StringFixed(2)
		res.PointsRedeemed = in.RedeemPoints
		res.PointsEarned = earned
		res.TransactionRef = payment.TransactionRef
		return nil
	})
	if err != nil {
		uc.count(failureOutcome(err))
		return nil, err
	}

	uc.count("completed")
	metrics.PointsRedeemed(res.PointsRedeemed)
	metrics.PointsAwarded(res.PointsEarned)
	uc.audit.Dispatch(audit.Event{
		SalonID:  cart.SalonID,
		UserID:   &caller.UserID,
		Action:   "checkout_completed",
		Entity:   "order",
		EntityID: &order.ID,
		Metadata: map[string]any{
			"total":           res.Total,
			"points_redeemed": res.PointsRedeemed,
			"points_earned":   res.PointsEarned,
			"transaction_ref": res.TransactionRef,
		},
	})

	return &res, nil
}

// failureOutcome labels a rolled back checkout for the checkouts metric.
func failureOutcome(err error) string {
	switch {
	case httperr.IsBusiness(err, codeInsufficientStock):
		return "out_of_stock"
	case httperr.IsBusiness(err, loyalty.CodeInsufficientPoints):
		return "insufficient_points"
	default:
		return "failed"
	}
}

func (uc *Checkout) count(outcome string) {
	metrics.Checkouts.WithLabelValues(outcome).Inc()
}
