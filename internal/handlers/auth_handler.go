package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/auth"
	"github.com/BruksfildServices01/salon-platform/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/metrics"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/validators"
)

type AuthHandler struct {
	db      *gorm.DB
	config  *config.Config
	tokens  *auth.TokenService
	emails  *validators.EmailDomainChecker
	limiter middleware.Limiter
	log     *logrus.Logger
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	tokens *auth.TokenService,
	limiter middleware.Limiter,
	log *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		db:      db,
		config:  cfg,
		tokens:  tokens,
		emails:  validators.NewEmailDomainChecker(cfg.CheckEmailDomain),
		limiter: limiter,
		log:     log,
	}
}

// --------- Requests ---------

type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserRole string `json:"user_role" binding:"required,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID         uint       `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       string     `json:"role"`
	ProfilePic string     `json:"profile_pic,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	LoginCount int        `json:"login_count"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		ProfilePic: u.ProfilePic,
		LastLogin:  u.LastLogin,
		LoginCount: u.LoginCount,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.UserRole == models.RoleAdmin && !h.config.AllowAdminSignup {
		httperr.Respond(c, httperr.Forbidden("admin_signup_disabled", "Admin accounts cannot be self-registered."))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	if !h.emails.Valid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not accept mail.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Respond(c, httperr.Conflict("user_exists", "Email or phone is already registered."))
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
		Role:         req.UserRole,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.Conflict("user_exists", "Email or phone is already registered."))
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  viewOf(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.limiter != nil {
		ok, err := h.limiter.Allow(c.Request.Context(), "login:"+email)
		if err != nil {
			h.log.WithError(err).Warn("login throttle unavailable")
		} else if !ok {
			metrics.LoginThrottled.Inc()
			httperr.Respond(c, httperr.New(httperr.KindTooManyRequests, "too_many_requests", "Too many login attempts, try again later."))
			return
		}
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if dbpkg.IsNotFound(err) {
			httperr.Respond(c, httperr.Unauthorized("invalid_credentials", "Invalid email or password."))
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Respond(c, httperr.Unauthorized("invalid_credentials", "Invalid email or password."))
		return
	}

	now := time.Now().UTC()
	if err := h.db.Model(&user).Updates(map[string]any{
		"last_login":  now,
		"login_count": gorm.Expr("login_count + 1"),
	}).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	user.LastLogin = &now
	user.LoginCount++

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     viewOf(&user),
		"token":    token,
		"staff_id": h.staffID(&user),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.Caller(c).UserID

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		respondLookup(c, err, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     viewOf(&user),
		"staff_id": h.staffID(&user),
	})
}

// staffID is the user's active staff record, if they are staff.
func (h *AuthHandler) staffID(u *models.User) *uint {
	if u.Role != models.RoleStaff {
		return nil
	}
	var st models.Staff
	if err := h.db.Select("id").
		Where("user_id = ? AND is_active = ?", u.ID, true).
		Order("id ASC").
		First(&st).Error; err != nil {
		return nil
	}
	return &st.ID
}
