package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		IsStaff:  staff,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// orderRouter wires the order routes behind a stub auth middleware that
// injects the given user, so requests exercise the real handlers.
func orderRouter(db *gorm.DB, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewOrderHandler(db, nil, nil, logger.New("error"))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})
	group := router.Group("/api/v1")
	{
		group.POST("/orders", handler.Create)
		group.GET("/orders/:order_number", handler.Get)
		group.PATCH("/orders/:order_number", handler.Update)
		group.DELETE("/orders/:order_number", handler.Delete)
		group.GET("/my-orders", handler.My)
		group.GET("/my-order-status/:order_number", handler.MyStatus)
		group.GET("/dashboard-stats", handler.Stats)
		group.GET("/revenue", handler.Revenue)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func orderPayload(productID uint, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"full_name":        "Jane Doe",
		"shipping_address": "1 Main St",
		"phone_number":     "5551234",
		"total_amount":     100,
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": quantity},
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer", false)
	product := &models.Product{Name: "Sneaker", Price: 49.99, Stock: 10, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	router := orderRouter(db, user)

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", orderPayload(product.ID, 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.OrderNumber == "" {
		t.Error("response order number is empty")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if reloaded.Stock != 7 {
		t.Errorf("product stock = %d, want 7", reloaded.Stock)
	}
}

func TestCreateOrderInsufficientStockIsBadRequest(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer", false)
	product := &models.Product{Name: "Sneaker", Price: 49.99, Stock: 1, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	router := orderRouter(db, user)

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", orderPayload(product.ID, 5))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Insufficient stock for product Sneaker" {
		t.Errorf("error = %q, want insufficient stock message", resp.Error)
	}
}

func TestGetOrderScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner", false)
	other := createUser(t, db, "other", false)
	staff := createUser(t, db, "admin", true)

	order := &models.Order{UserID: owner.ID, OrderNumber: "ORD-20240501-1", TotalAmount: 50, Status: models.OrderStatusPending}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	url := fmt.Sprintf("/api/v1/orders/%s", order.OrderNumber)

	if w := doJSON(t, orderRouter(db, owner), http.MethodGet, url, nil); w.Code != http.StatusOK {
		t.Errorf("owner status = %d, want 200", w.Code)
	}
	if w := doJSON(t, orderRouter(db, other), http.MethodGet, url, nil); w.Code != http.StatusNotFound {
		t.Errorf("other user status = %d, want 404", w.Code)
	}
	if w := doJSON(t, orderRouter(db, staff), http.MethodGet, url, nil); w.Code != http.StatusOK {
		t.Errorf("staff status = %d, want 200", w.Code)
	}
}

func TestDeleteOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer", false)
	order := &models.Order{UserID: user.ID, OrderNumber: "ORD-20240501-1", TotalAmount: 50, Status: models.OrderStatusPending}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	item := &models.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 1, Price: 50}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	router := orderRouter(db, user)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/orders/"+order.OrderNumber, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body = %s", w.Code, w.Body.String())
	}

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Errorf("counts after delete = %d orders / %d items, want 0/0", orderCount, itemCount)
	}
}

func TestMyOrdersEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer", false)
	other := createUser(t, db, "other", false)
	seed := []models.Order{
		{UserID: user.ID, OrderNumber: "ORD-20240501-1", TotalAmount: 10, Status: models.OrderStatusPending},
		{UserID: other.ID, OrderNumber: "ORD-20240501-2", TotalAmount: 20, Status: models.OrderStatusPending},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed order: %v", err)
		}
	}
	router := orderRouter(db, user)

	w := doJSON(t, router, http.MethodGet, "/api/v1/my-orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data []models.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].OrderNumber != "ORD-20240501-1" {
		t.Errorf("my orders = %+v, want only the caller's order", resp.Data)
	}
}

func TestMyOrderStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "buyer", false)
	other := createUser(t, db, "other", false)
	order := &models.Order{UserID: user.ID, OrderNumber: "ORD-20240501-1", TotalAmount: 50, Status: models.OrderStatusShipped}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	url := "/api/v1/my-order-status/" + order.OrderNumber

	w := doJSON(t, orderRouter(db, user), http.MethodGet, url, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			OrderNumber string `json:"order_number"`
			Status      string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.OrderNumber != order.OrderNumber || resp.Data.Status != "shipped" {
		t.Errorf("response = %+v, want %s/shipped", resp.Data, order.OrderNumber)
	}

	// Another user's order number is invisible, even for a status peek.
	if w := doJSON(t, orderRouter(db, other), http.MethodGet, url, nil); w.Code != http.StatusNotFound {
		t.Errorf("other user status = %d, want 404", w.Code)
	}
}

func TestDashboardStatsEndpointWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "admin", true)
	order := &models.Order{UserID: user.ID, OrderNumber: "ORD-20240501-1", TotalAmount: 75, Status: models.OrderStatusPending}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	router := orderRouter(db, user)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard-stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			TotalOrders  int64   `json:"total_orders"`
			TotalRevenue float64 `json:"total_revenue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.TotalOrders != 1 || resp.Data.TotalRevenue != 75 {
		t.Errorf("stats = %+v, want 1 order / 75 revenue", resp.Data)
	}
}

func TestRevenueEndpointRejectsUnknownFilter(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "admin", true)
	router := orderRouter(db, user)

	w := doJSON(t, router, http.MethodGet, "/api/v1/revenue?filter=hourly", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
