package checkout

import (
	"context"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/commerce"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type AddItemInput struct {
	Type      string
	ProductID *uint
	ServiceID *uint
	Quantity  int
}

// ManageCart holds the cart operations that happen before checkout.
type ManageCart struct {
	repo  domain.Repository
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewManageCart(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
) *ManageCart {
	return &ManageCart{
		repo:  repo,
		audit: audit,
		az:    az,
	}
}

// ======================================================
// OPEN
// ======================================================

// Open returns the caller's active cart for the salon, creating one when
// none exists. created reports which of the two happened.
func (uc *ManageCart) Open(
	ctx context.Context,
	caller authz.Caller,
	salonID uint,
) (cart *models.Cart, created bool, err error) {

	if salonID == 0 {
		return nil, false, httperr.Validation("missing_fields", "salon_id is required.")
	}

	if _, err := uc.repo.GetSalon(ctx, salonID); err != nil {
		return nil, false, notFound(err, "salon_not_found", "Salon not found.")
	}

	cart, err = uc.repo.FindActiveCart(ctx, caller.UserID, salonID)
	if err == nil {
		return uc.withItems(ctx, cart, false)
	}
	if !dbpkg.IsNotFound(err) {
		return nil, false, err
	}

	cart = &models.Cart{
		UserID:  caller.UserID,
		SalonID: salonID,
		Status:  models.CartStatusActive,
	}
	if err := uc.repo.CreateCart(ctx, cart); err != nil {
		if !dbpkg.IsUniqueViolation(err) {
			return nil, false, err
		}
		// a concurrent request created it first
		cart, err = uc.repo.FindActiveCart(ctx, caller.UserID, salonID)
		if err != nil {
			return nil, false, err
		}
		return uc.withItems(ctx, cart, false)
	}

	cart.Items = []models.CartItem{}
	return cart, true, nil
}

// Active returns the caller's most recently touched active cart.
func (uc *ManageCart) Active(
	ctx context.Context,
	caller authz.Caller,
) (*models.Cart, error) {

	cart, err := uc.repo.FindAnyActiveCart(ctx, caller.UserID)
	if err != nil {
		return nil, notFound(err, "cart_not_found", "No active cart.")
	}
	cart, _, err = uc.withItems(ctx, cart, false)
	return cart, err
}

// ======================================================
// ITEMS
// ======================================================

func (uc *ManageCart) AddItem(
	ctx context.Context,
	caller authz.Caller,
	cartID uint,
	in AddItemInput,
) (*models.CartItem, error) {

	cart, err := uc.ownedActiveCart(ctx, caller, cartID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateItem(in.Type, in.Quantity); err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:   cart.ID,
		Type:     in.Type,
		Quantity: in.Quantity,
	}

	switch in.Type {
	case models.ItemTypeProduct:
		if in.ProductID == nil {
			return nil, httperr.Validation("missing_fields", "product_id is required for product items.")
		}
		p, err := uc.repo.GetProduct(ctx, *in.ProductID)
		if err != nil {
			return nil, notFound(err, "product_not_found", "Product not found.")
		}
		if p.SalonID != cart.SalonID || !p.IsActive {
			return nil, httperr.NotFound("product_not_found", "Product not found.")
		}
		if p.Stock < in.Quantity {
			return nil, httperr.Conflict(codeInsufficientStock, "Not enough stock for this product.")
		}
		item.ProductID = &p.ID
		item.Price = p.Price

	case models.ItemTypeService:
		if in.ServiceID == nil {
			return nil, httperr.Validation("missing_fields", "service_id is required for service items.")
		}
		svc, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, notFound(err, "service_not_found", "Service not found.")
		}
		if svc.SalonID != cart.SalonID || !svc.IsActive {
			return nil, httperr.NotFound("service_not_found", "Service not found.")
		}
		item.ServiceID = &svc.ID
		item.Price = svc.Price
	}

	if err := uc.repo.AddCartItem(ctx, item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  cart.SalonID,
		UserID:   &caller.UserID,
		Action:   "cart_item_added",
		Entity:   "cart",
		EntityID: &cart.ID,
		Metadata: map[string]any{
			"type":     item.Type,
			"quantity": item.Quantity,
			"price":    item.Price.StringFixed(2),
		},
	})

	return item, nil
}

func (uc *ManageCart) RemoveItem(
	ctx context.Context,
	caller authz.Caller,
	itemID uint,
) error {

	item, err := uc.repo.GetCartItem(ctx, itemID)
	if err != nil {
		return notFound(err, "cart_item_not_found", "Cart item not found.")
	}

	if _, err := uc.ownedActiveCart(ctx, caller, item.CartID); err != nil {
		return err
	}

	return uc.repo.DeleteCartItem(ctx, item.ID)
}

// ======================================================
// HELPERS
// ======================================================

func (uc *ManageCart) ownedActiveCart(
	ctx context.Context,
	caller authz.Caller,
	cartID uint,
) (*models.Cart, error) {

	cart, err := uc.repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, notFound(err, "cart_not_found", "Cart not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionCartManage, authz.Resource{
		SubjectUserID: cart.UserID,
	}); err != nil {
		return nil, err
	}

	if err := domain.CanModify(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *ManageCart) withItems(
	ctx context.Context,
	cart *models.Cart,
	created bool,
) (*models.Cart, bool, error) {

	items, err := uc.repo.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, false, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	cart.Items = items
	return cart, created, nil
}
