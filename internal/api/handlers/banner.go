package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BannerHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewBannerHandler(db *gorm.DB, logger *logger.Logger) *BannerHandler {
	return &BannerHandler{
		db:     db,
		logger: logger,
	}
}

func (h *BannerHandler) List(c *gin.Context) {
	var banners []models.Banner
	query := h.db.Preload("Images")
	if bannerType := c.Query("type"); bannerType != "" {
		query = query.Where("banner_type = ?", bannerType)
	}
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if err := query.Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) Create(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if banner.BannerType != "" && !banner.BannerType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner type"})
		return
	}
	if err := h.db.Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": banner})
}

func (h *BannerHandler) Get(c *gin.Context) {
	var banner models.Banner
	if err := h.db.Preload("Images").First(&banner, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banner})
}

func (h *BannerHandler) Update(c *gin.Context) {
	var banner models.Banner
	if err := h.db.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banner"})
		return
	}
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !banner.BannerType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner type"})
		return
	}
	if err := h.db.Save(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banner})
}

func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Banner{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *BannerHandler) ListImages(c *gin.Context) {
	var images []models.BannerImage
	if err := h.db.Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banner images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *BannerHandler) CreateImage(c *gin.Context) {
	var image models.BannerImage
	if err := c.ShouldBindJSON(&image); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner image"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": image})
}

func (h *BannerHandler) DeleteImage(c *gin.Context) {
	if err := h.db.Delete(&models.BannerImage{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner image"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
