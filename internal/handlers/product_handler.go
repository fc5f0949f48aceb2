package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type ProductHandler struct {
	db    *gorm.DB
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewProductHandler(db *gorm.DB, rec audit.Recorder, az *authz.Authorizer) *ProductHandler {
	return &ProductHandler{db: db, audit: rec, az: az}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	SKU         string          `json:"sku"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func normalizeCategory(category string) (string, bool) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Other", true
	}
	for _, known := range models.ProductCategories {
		if strings.EqualFold(known, category) {
			return known, true
		}
	}
	return "", false
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	q := h.db.Where("salon_id = ?", salonID)

	switch c.Query("active") {
	case "false":
		q = q.Where("is_active = ?", false)
	case "all":
	default:
		q = q.Where("is_active = ?", true)
	}

	if category := c.Query("category"); category != "" {
		cat, ok := normalizeCategory(category)
		if !ok {
			httperr.BadRequest(c, "invalid_category", "category must be one of "+strings.Join(models.ProductCategories, ", ")+".")
			return
		}
		q = q.Where("category = ?", cat)
	}

	if c.Query("in_stock") == "true" {
		q = q.Where("stock > 0")
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	salon, ok := ownedSalon(c, h.db, h.az, authz.ActionCatalogManage, salonID)
	if !ok {
		return
	}

	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	category, ok := normalizeCategory(req.Category)
	if !ok {
		httperr.BadRequest(c, "invalid_category", "category must be one of "+strings.Join(models.ProductCategories, ", ")+".")
		return
	}
	if !req.Price.IsPositive() {
		httperr.BadRequest(c, "invalid_price", "price must be greater than zero.")
		return
	}

	product := models.Product{
		SalonID:     salon.ID,
		Name:        strings.TrimSpace(req.Name),
		Category:    category,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		SKU:         req.SKU,
		IsActive:    true,
	}
	if err := h.db.Create(&product).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, salon.ID, "product_created", &product)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	salon, ok := ownedSalon(c, h.db, h.az, authz.ActionCatalogManage, salonID)
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.
		Where("id = ? AND salon_id = ?", productID, salon.ID).
		First(&product).Error; err != nil {
		respondLookup(c, err, "product_not_found", "Product not found.")
		return
	}

	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		cat, ok := normalizeCategory(*req.Category)
		if !ok {
			httperr.BadRequest(c, "invalid_category", "category must be one of "+strings.Join(models.ProductCategories, ", ")+".")
			return
		}
		product.Category = cat
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			httperr.BadRequest(c, "invalid_price", "price must be greater than zero.")
			return
		}
		product.Price = req.Price.Round(2)
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			httperr.BadRequest(c, "invalid_stock", "stock must not be negative.")
			return
		}
		product.Stock = *req.Stock
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, salon.ID, "product_updated", &product)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) record(c *gin.Context, salonID uint, action string, p *models.Product) {
	callerID := middleware.Caller(c).UserID
	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &callerID,
		Action:   action,
		Entity:   "product",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"price": p.Price.StringFixed(2),
			"stock": p.Stock,
		},
	})
}
