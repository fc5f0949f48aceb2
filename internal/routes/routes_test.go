package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/auth"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/config"
	"github.com/BruksfildServices01/salon-platform/internal/logging"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
	"github.com/BruksfildServices01/salon-platform/internal/testutil"
	"github.com/BruksfildServices01/salon-platform/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

type testAPI struct {
	t      *testing.T
	r      *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testutil.NewDB(t)
	log := logging.Discard()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		CORSAllowOrigins: []string{"*"},
		LoginMaxAttempts: 10,
		LoginWindow:      time.Minute,
	}
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Tokens:   tokens,
		Authz:    authz.New(nil),
		Audit:    audit.Discard{},
		Notifier: notification.NewService(db, notification.NoopSender{}, log),
		Limiter:  middleware.NewMemoryLimiter(cfg.LoginMaxAttempts, cfg.LoginWindow),
	})

	return &testAPI{t: t, r: r, db: db, tokens: tokens}
}

func (a *testAPI) tokenFor(u *models.User) string {
	a.t.Helper()
	token, err := a.tokens.Generate(u.ID, u.Role)
	require.NoError(a.t, err)
	return token
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func idOf(t *testing.T, w *httptest.ResponseRecorder) uint {
	t.Helper()
	id, ok := decode(t, w)["id"].(float64)
	require.True(t, ok, w.Body.String())
	return uint(id)
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/notifications", "", nil).Code)
}

func TestCustomerCannotCreateSalons(t *testing.T) {
	api := newTestAPI(t)
	customer := testutil.CreateUser(t, api.db, models.RoleCustomer)
	token := api.tokenFor(customer)

	for _, name := range []string{"First", "Second"} {
		w := api.do(http.MethodPost, "/salons", token, gin.H{"name": name, "timezone": "UTC"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
	assert.Zero(t, testutil.Count(t, api.db, &models.Salon{}))
}

func TestOwnerCreatesPendingSalon(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.CreateUser(t, api.db, models.RoleOwner)
	admin := testutil.CreateUser(t, api.db, models.RoleAdmin)

	w := api.do(http.MethodPost, "/salons", api.tokenFor(owner), gin.H{"name": "Studio", "timezone": "UTC"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var salon models.Salon
	require.NoError(t, api.db.First(&salon).Error)
	assert.Equal(t, models.SalonStatusPending, salon.Status)

	// pending salons are not listed
	list := decode(t, api.do(http.MethodGet, "/salons", "", nil))
	assert.EqualValues(t, 0, list["total"])

	path := fmt.Sprintf("/salons/%d/approve", salon.ID)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, path, api.tokenFor(owner), nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodPatch, path, api.tokenFor(admin), nil).Code)

	list = decode(t, api.do(http.MethodGet, "/salons", "", nil))
	assert.EqualValues(t, 1, list["total"])
}

func TestSignupAndLogin(t *testing.T) {
	api := newTestAPI(t)

	signup := gin.H{
		"full_name": "Ana Lima",
		"phone":     "+15550001",
		"email":     "Ana@Example.com",
		"password":  "secret1",
		"user_role": models.RoleCustomer,
	}

	w := api.do(http.MethodPost, "/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["token"])

	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/auth/signup", "", signup).Code)

	admin := gin.H{
		"full_name": "Root",
		"phone":     "+15550002",
		"email":     "root@example.com",
		"password":  "secret1",
		"user_role": models.RoleAdmin,
	}
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/auth/signup", "", admin).Code)

	bad := gin.H{"email": "ana@example.com", "password": "wrong-one"}
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/auth/login", "", bad).Code)

	w = api.do(http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	me := decode(t, api.do(http.MethodGet, "/auth/me", token, nil))
	user, _ := me["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.EqualValues(t, 1, user["login_count"])
}

func TestMutatingCallsRequireJSON(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("email=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestProfilePictureWithoutStorage(t *testing.T) {
	api := newTestAPI(t)
	u := testutil.CreateUser(t, api.db, models.RoleCustomer)

	w := api.do(http.MethodPost, "/users/me/profile-picture", api.tokenFor(u), gin.H{"content_type": "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// Books a 50.00 service at two points per dollar, completes it, then
// redeems the 100 earned points against a 30.00 product.
func TestBookCompleteAndCheckout(t *testing.T) {
	api := newTestAPI(t)
	db := api.db

	owner := testutil.CreateUser(t, db, models.RoleOwner)
	salon := testutil.CreateSalon(t, db, owner.ID, 2)
	svc := testutil.CreateService(t, db, salon.ID, "50.00")
	stylist := testutil.CreateUser(t, db, models.RoleStaff)
	staff := testutil.CreateStaff(t, db, salon.ID, stylist.ID)
	customer := testutil.CreateUser(t, db, models.RoleCustomer)
	product := testutil.CreateProduct(t, db, salon.ID, "30.00", 5)

	customerToken := api.tokenFor(customer)

	w := api.do(http.MethodPost, "/appointments", customerToken, gin.H{
		"salon_id":       salon.ID,
		"service_id":     svc.ID,
		"staff_id":       staff.ID,
		"scheduled_time": "2030-01-02T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apID := idOf(t, w)

	completePath := fmt.Sprintf("/appointments/%d/complete", apID)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, completePath, customerToken, nil).Code)

	w = api.do(http.MethodPatch, completePath, api.tokenFor(stylist), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 100, decode(t, w)["points_earned"])

	balances := decode(t, api.do(http.MethodGet, "/loyalty", customerToken, nil))
	assert.EqualValues(t, 1, balances["total_salons"])
	assert.EqualValues(t, 100, balances["total_points"])

	w = api.do(http.MethodPost, "/carts", customerToken, gin.H{"salon_id": salon.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cartID := idOf(t, w)

	again := api.do(http.MethodPost, "/carts", customerToken, gin.H{"salon_id": salon.ID})
	assert.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, cartID, idOf(t, again))

	w = api.do(http.MethodPost, fmt.Sprintf("/carts/%d/items", cartID), customerToken, gin.H{
		"type":       models.ItemTypeProduct,
		"product_id": product.ID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/checkout", customerToken, gin.H{
		"cart_id":       cartID,
		"redeem_points": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode(t, w)
	assert.Equal(t, "30.00", res["subtotal"])
	assert.Equal(t, "1.00", res["discount"])
	assert.Equal(t, "29.00", res["total"])
	assert.EqualValues(t, 100, res["points_redeemed"])
	// two points per unit spent on the 29.00 paid
	assert.EqualValues(t, 58, res["points_earned"])

	var order models.Order
	require.NoError(t, db.First(&order, uint(res["order_id"].(float64))).Error)
	assert.Equal(t, "29.00", order.TotalAmount.StringFixed(2))

	balance := testutil.LoyaltyOf(t, db, customer.ID, salon.ID)
	assert.EqualValues(t, 58, balance.Points)

	// completion left one unread status update
	inbox := decode(t, api.do(http.MethodGet, "/notifications", customerToken, nil))
	assert.EqualValues(t, 1, inbox["unread_count"])
	notes, _ := inbox["notifications"].([]any)
	require.Len(t, notes, 1)
	noteID := uint(notes[0].(map[string]any)["id"].(float64))

	readPath := fmt.Sprintf("/notifications/%d/read", noteID)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, readPath, api.tokenFor(owner), nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodPatch, readPath, customerToken, nil).Code)

	inbox = decode(t, api.do(http.MethodGet, "/notifications", customerToken, nil))
	assert.EqualValues(t, 0, inbox["unread_count"])
}

func TestPromotionNotifiesLoyalCustomers(t *testing.T) {
	api := newTestAPI(t)
	db := api.db

	owner := testutil.CreateUser(t, db, models.RoleOwner)
	salon := testutil.CreateSalon(t, db, owner.ID, 1)
	loyal := testutil.CreateUser(t, db, models.RoleCustomer)
	casual := testutil.CreateUser(t, db, models.RoleCustomer)
	testutil.SetLoyalty(t, db, loyal.ID, salon.ID, 150)
	testutil.SetLoyalty(t, db, casual.ID, salon.ID, 100)

	now := time.Now().UTC()
	body := gin.H{
		"title":            "Spring",
		"description":      "Color week",
		"discount_percent": 20,
		"valid_from":       now.Add(-time.Hour).Format(time.RFC3339),
		"valid_until":      now.Add(24 * time.Hour).Format(time.RFC3339),
	}

	path := fmt.Sprintf("/salons/%d/promotions", salon.ID)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, path, api.tokenFor(loyal), body).Code)

	w := api.do(http.MethodPost, path, api.tokenFor(owner), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["notified"])

	var notes []models.Notification
	require.NoError(t, db.Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, loyal.ID, notes[0].UserID)
	assert.Equal(t, "Color week - 20% off!", notes[0].Message)

	list := decode(t, api.do(http.MethodGet, path, "", nil))
	assert.EqualValues(t, 1, list["total"])
}

func TestOwnerSendsOnlyToOwnCustomers(t *testing.T) {
	api := newTestAPI(t)
	db := api.db

	owner := testutil.CreateUser(t, db, models.RoleOwner)
	salon := testutil.CreateSalon(t, db, owner.ID, 1)
	customer := testutil.CreateUser(t, db, models.RoleCustomer)
	testutil.SetLoyalty(t, db, customer.ID, salon.ID, 10)

	rival := testutil.CreateUser(t, db, models.RoleOwner)
	rivalSalon := testutil.CreateSalon(t, db, rival.ID, 1)
	stranger := testutil.CreateUser(t, db, models.RoleCustomer)
	testutil.SetLoyalty(t, db, stranger.ID, rivalSalon.ID, 10)

	admin := testutil.CreateUser(t, db, models.RoleAdmin)

	send := func(token string, ids ...uint) *httptest.ResponseRecorder {
		return api.do(http.MethodPost, "/notifications/send", token, gin.H{
			"user_ids": ids,
			"title":    "Offer",
			"message":  "Half price on Tuesday",
			"type":     "promotion",
		})
	}

	w := send(api.tokenFor(owner), stranger.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "recipient_not_customer", decode(t, w)["error_code"])

	// one outsider spoils the whole batch
	assert.Equal(t, http.StatusForbidden, send(api.tokenFor(owner), customer.ID, stranger.ID).Code)
	assert.Equal(t, int64(0), testutil.Count(t, db, &models.Notification{}))

	w = send(api.tokenFor(owner), customer.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = send(api.tokenFor(admin), stranger.ID, customer.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode(t, w)["count"])
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	api := newTestAPI(t)
	owner := testutil.CreateUser(t, api.db, models.RoleOwner)
	admin := testutil.CreateUser(t, api.db, models.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/admin/stats/engagement", api.tokenFor(owner), nil).Code)

	for _, path := range []string{
		"/admin/stats/engagement",
		"/admin/stats/appointments",
		"/admin/stats/revenue",
		"/admin/stats/loyalty",
		"/admin/stats/demographics",
		"/admin/stats/retention",
		"/admin/reports/summary",
		"/admin/system/health",
	} {
		w := api.do(http.MethodGet, path, api.tokenFor(admin), nil)
		assert.Equal(t, http.StatusOK, w.Code, "%s: %s", path, w.Body.String())
	}
}
