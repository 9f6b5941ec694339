package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewContactHandler(db *gorm.DB, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		db:     db,
		logger: logger,
	}
}

func (h *ContactHandler) List(c *gin.Context) {
	var contacts []models.Contact

	page, limit, offset := paginate(c)

	var total int64
	h.db.Model(&models.Contact{}).Count(&total)

	err := h.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&contacts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}

	c.JSON(http.StatusOK, listResponse(contacts, page, limit, total))
}

func (h *ContactHandler) Create(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": contact})
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription := models.Newsletter{Email: req.Email}
	if err := h.db.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already subscribed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": subscription})
}
