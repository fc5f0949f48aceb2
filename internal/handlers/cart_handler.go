package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-platform/internal/infra/repository"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/usecase/checkout"
)

type CartHandler struct {
	carts    *checkout.ManageCart
	checkout *checkout.Checkout
}

func NewCartHandler(db *gorm.DB, rec audit.Recorder, az *authz.Authorizer) *CartHandler {
	repo := infraRepo.NewCommerceGormRepository(db)

	return &CartHandler{
		carts:    checkout.NewManageCart(repo, rec, az),
		checkout: checkout.NewCheckout(repo, rec, az),
	}
}

// --------- Requests ---------

type OpenCartRequest struct {
	SalonID uint `json:"salon_id" binding:"required"`
}

type AddCartItemRequest struct {
	Type      string `json:"type" binding:"required,oneof=product service"`
	ProductID *uint  `json:"product_id"`
	ServiceID *uint  `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	CartID        uint   `json:"cart_id" binding:"required"`
	RedeemPoints  int64  `json:"redeem_points"`
	PaymentMethod string `json:"payment_method"`
}

// --------- Handlers ---------

// Open answers 201 when a cart was created and 200 when the caller
// already had one for the salon.
func (h *CartHandler) Open(c *gin.Context) {
	var req OpenCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, created, err := h.carts.Open(c.Request.Context(), middleware.Caller(c), req.SalonID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, cart)
}

func (h *CartHandler) Active(c *gin.Context) {
	cart, err := h.carts.Active(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.carts.AddItem(c.Request.Context(), middleware.Caller(c), cartID, checkout.AddItemInput{
		Type:      req.Type,
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), middleware.Caller(c), itemID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *CartHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.checkout.Execute(c.Request.Context(), middleware.Caller(c), checkout.Input{
		CartID:        req.CartID,
		RedeemPoints:  req.RedeemPoints,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
