package commerce

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	items := []models.CartItem{
		{Type: models.ItemTypeProduct, Quantity: 2, Price: d("10.00")},
		{Type: models.ItemTypeService, Quantity: 1, Price: d("10.00")},
	}

	t.Run("redeem 100 at 0.01", func(t *testing.T) {
		got, err := ComputeTotals(items, 100, d("0.01"))
		require.NoError(t, err)
		assert.Equal(t, "30.00", got.Subtotal.StringFixed(2))
		assert.Equal(t, "1.00", got.Discount.StringFixed(2))
		assert.Equal(t, "29.00", got.Total.StringFixed(2))
	})

	t.Run("no redemption", func(t *testing.T) {
		got, err := ComputeTotals(items, 0, d("0.01"))
		require.NoError(t, err)
		assert.True(t, got.Total.Equal(got.Subtotal))
		assert.True(t, got.Discount.IsZero())
	})

	t.Run("discount above subtotal", func(t *testing.T) {
		_, err := ComputeTotals(items, 5000, d("0.01"))
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})

	t.Run("negative redemption", func(t *testing.T) {
		_, err := ComputeTotals(items, -1, d("0.01"))
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})
}

func TestSubtotalAvoidsFloatDrift(t *testing.T) {
	items := []models.CartItem{
		{Quantity: 3, Price: d("0.10")},
		{Quantity: 1, Price: d("0.20")},
	}
	assert.Equal(t, "0.50", Subtotal(items).StringFixed(2))
}

func TestValidateItem(t *testing.T) {
	assert.NoError(t, ValidateItem(models.ItemTypeProduct, 1))
	assert.Error(t, ValidateItem("gift", 1))
	assert.Error(t, ValidateItem(models.ItemTypeService, 0))
}

func TestNormalizePaymentMethod(t *testing.T) {
	m, err := NormalizePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, "card", m)

	m, err = NormalizePaymentMethod(" PayPal ")
	require.NoError(t, err)
	assert.Equal(t, "paypal", m)

	_, err = NormalizePaymentMethod("bitcoin")
	assert.Error(t, err)
}

func TestTransactionRef(t *testing.T) {
	ref := TransactionRef()
	assert.Regexp(t, regexp.MustCompile(`^TXN-[0-9A-F]{12}$`), ref)
	assert.NotEqual(t, ref, TransactionRef())
}

func TestCanModify(t *testing.T) {
	assert.NoError(t, CanModify(&models.Cart{Status: models.CartStatusActive}))
	err := CanModify(&models.Cart{Status: models.CartStatusCheckedOut})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
}
