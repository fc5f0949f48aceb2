package commerce

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

const DefaultPaymentMethod = "card"

func CanModify(cart *models.Cart) error {
	if cart.Status != models.CartStatusActive {
		return httperr.InvalidState("cart_not_active", "Cart is no longer active.")
	}
	return nil
}

func ValidateItem(itemType string, quantity int) error {
	if itemType != models.ItemTypeProduct && itemType != models.ItemTypeService {
		return httperr.Validation("invalid_item_type", "type must be product or service.")
	}
	if quantity < 1 {
		return httperr.Validation("invalid_quantity", "quantity must be at least 1.")
	}
	return nil
}

func NormalizePaymentMethod(method string) (string, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		return DefaultPaymentMethod, nil
	}
	if !slices.Contains(models.PaymentMethods, method) {
		return "", httperr.Validation("invalid_payment_method", "Unsupported payment method.")
	}
	return method, nil
}

func Subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals applies a loyalty redemption to the cart subtotal.
func ComputeTotals(items []models.CartItem, redeemPoints int64, rate decimal.Decimal) (Totals, error) {
	if err := loyalty.ValidateRedemption(redeemPoints); err != nil {
		return Totals{}, err
	}

	subtotal := Subtotal(items)
	discount := loyalty.Discount(redeemPoints, rate)
	if discount.GreaterThan(subtotal) {
		return Totals{}, httperr.Validation("discount_exceeds_subtotal", "Redeemed points exceed the order subtotal.")
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}, nil
}

// TransactionRef is TXN- followed by 12 upper-case hex characters.
func TransactionRef() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("TXN-%s", strings.ToUpper(hex[:12]))
}

func OrderItems(orderID uint, items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			OrderID:   orderID,
			ProductID: it.ProductID,
			ServiceID: it.ServiceID,
			Type:      it.Type,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return out
}
