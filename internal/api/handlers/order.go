package handlers

import (
	"net/http"
	"time"

	"storefront/internal/api/middleware"
	"storefront/internal/cache"
	"storefront/internal/events"
	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/services/orders"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	db        *gorm.DB
	service   *orders.Service
	publisher *events.Publisher
	stats     *cache.StatsCache
	logger    *logger.Logger
}

func NewOrderHandler(db *gorm.DB, publisher *events.Publisher, stats *cache.StatsCache, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		db:        db,
		service:   orders.NewService(db),
		publisher: publisher,
		stats:     stats,
		logger:    logger,
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	var list []models.Order

	page, limit, offset := paginate(c)

	query := h.db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("order_number LIKE ? OR full_name LIKE ? OR phone_number LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	err := query.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, listResponse(list, page, limit, total))
}

func (h *OrderHandler) My(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var list []models.Order
	err := h.db.Where("user_id = ?", user.ID).
		Preload("Items").Preload("Items.Product").
		Order("created_at DESC").Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *OrderHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req orders.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.Place(user.ID, req)
	if err != nil {
		if orders.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to place order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	h.publisher.Publish(c.Request.Context(), events.TypeOrderCreated, order.OrderNumber)
	c.JSON(http.StatusCreated, gin.H{"data": order})
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.findOrder(c)
	if !ok {
		return
	}

	if err := h.db.Preload("Items").Preload("Items.Product").First(order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (h *OrderHandler) Update(c *gin.Context) {
	order, ok := h.findOrder(c)
	if !ok {
		return
	}

	var req orders.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(order, req)
	if err != nil {
		if orders.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to update order %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	h.publisher.Publish(c.Request.Context(), events.TypeOrderUpdated, updated.OrderNumber)
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	order, ok := h.findOrder(c)
	if !ok {
		return
	}

	if err := h.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	if err := h.db.Delete(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	h.publisher.Publish(c.Request.Context(), events.TypeOrderDeleted, order.OrderNumber)
	c.JSON(http.StatusNoContent, nil)
}

// MyStatus is a lightweight status lookup for one of the caller's own
// orders, for storefront order tracking.
func (h *OrderHandler) MyStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var order models.Order
	err := h.db.Where("order_number = ? AND user_id = ?", c.Param("order_number"), user.ID).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"order_number": order.OrderNumber,
		"status":       order.Status,
	}})
}

// Stats serves the dashboard aggregates, read-through from the Redis
// cache the worker keeps warm.
func (h *OrderHandler) Stats(c *gin.Context) {
	if stats, ok := h.stats.Get(c.Request.Context()); ok {
		c.JSON(http.StatusOK, gin.H{"data": stats})
		return
	}

	stats, err := h.service.DashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	h.stats.Set(c.Request.Context(), stats)

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *OrderHandler) Revenue(c *gin.Context) {
	filter := c.DefaultQuery("filter", orders.FilterDaily)

	buckets, err := h.service.Revenue(filter, time.Now())
	if err != nil {
		if orders.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": buckets})
}

// findOrder loads the order addressed by :order_number, scoped to the
// caller unless the caller is staff.
func (h *OrderHandler) findOrder(c *gin.Context) (*models.Order, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	query := h.db.Where("order_number = ?", c.Param("order_number"))
	if !user.IsStaff {
		query = query.Where("user_id = ?", user.ID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return nil, false
	}
	return &order, true
}
