package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewCategoryHandler(db *gorm.DB, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		db:     db,
		logger: logger,
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, "slug = ?", c.Param("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, "slug = ?", c.Param("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.db.Delete(&models.Category{}, "slug = ?", c.Param("slug")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Subcategories are listed with their parent preloaded; the sheet
// export and the upload script both render them as "Name (Parent)".
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	var subcategories []models.Subcategory
	query := h.db.Preload("Category")
	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = subcategories.category_id").
			Where("categories.slug = ?", category)
	}
	if err := query.Find(&subcategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
		return
	}
	c.JSON(http.StatusOK, subcategories)
}

func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	var subcategory models.Subcategory
	if err := c.ShouldBindJSON(&subcategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&subcategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": subcategory})
}

func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	if err := h.db.Delete(&models.Subcategory{}, "slug = ?", c.Param("slug")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subcategory"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *CategoryHandler) ListSubSubcategories(c *gin.Context) {
	var subsubcategories []models.SubSubcategory
	query := h.db.Preload("Subcategory").Preload("Subcategory.Category")
	if subcategory := c.Query("subcategory"); subcategory != "" {
		query = query.Joins("JOIN subcategories ON subcategories.id = sub_subcategories.subcategory_id").
			Where("subcategories.slug = ?", subcategory)
	}
	if err := query.Find(&subsubcategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sub-subcategories"})
		return
	}
	c.JSON(http.StatusOK, subsubcategories)
}

func (h *CategoryHandler) CreateSubSubcategory(c *gin.Context) {
	var subsubcategory models.SubSubcategory
	if err := c.ShouldBindJSON(&subsubcategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&subsubcategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sub-subcategory"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": subsubcategory})
}

func (h *CategoryHandler) DeleteSubSubcategory(c *gin.Context) {
	if err := h.db.Delete(&models.SubSubcategory{}, "slug = ?", c.Param("slug")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sub-subcategory"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *CategoryHandler) ListSizes(c *gin.Context) {
	var sizes []models.Size
	if err := h.db.Find(&sizes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sizes"})
		return
	}
	c.JSON(http.StatusOK, sizes)
}

func (h *CategoryHandler) CreateSize(c *gin.Context) {
	var size models.Size
	if err := c.ShouldBindJSON(&size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&size).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create size"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": size})
}
