package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewProductHandler(db *gorm.DB, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		db:     db,
		logger: logger,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product

	page, limit, offset := paginate(c)

	search := c.Query("search")
	category := c.Query("category")
	subcategory := c.Query("subcategory")
	subsubcategory := c.Query("subsubcategory")

	query := h.db.Model(&models.Product{})

	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", category)
	}
	if subcategory != "" {
		query = query.Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
			Where("subcategories.slug = ?", subcategory)
	}
	if subsubcategory != "" {
		query = query.Joins("JOIN sub_subcategories ON sub_subcategories.id = products.sub_subcategory_id").
			Where("sub_subcategories.slug = ?", subsubcategory)
	}
	if popular := c.Query("is_popular"); popular != "" {
		query = query.Where("is_popular = ?", popular == "true")
	}
	if featured := c.Query("is_featured"); featured != "" {
		query = query.Where("is_featured = ?", featured == "true")
	}

	var total int64
	query.Count(&total)

	err := query.Preload("Images").Preload("Sizes").Preload("Category").
		Preload("Subcategory").Preload("SubSubcategory").
		Offset(offset).Limit(limit).Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, listResponse(products, page, limit, total))
}

func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	err := h.db.Preload("Images").Preload("Sizes").Preload("Category").
		Preload("Subcategory").Preload("SubSubcategory").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Similar returns products sharing the lowest category level the
// product has set.
func (h *ProductHandler) Similar(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	if err := h.db.First(&product, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	query := h.db.Where("id <> ? AND is_active = ?", product.ID, true)
	switch {
	case product.SubSubcategoryID != nil:
		query = query.Where("sub_subcategory_id = ?", *product.SubSubcategoryID)
	case product.SubcategoryID != nil:
		query = query.Where("subcategory_id = ?", *product.SubcategoryID)
	case product.CategoryID != nil:
		query = query.Where("category_id = ?", *product.CategoryID)
	}

	var similar []models.Product
	if err := query.Preload("Images").Limit(10).Find(&similar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch similar products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": similar})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	if err := h.db.First(&product, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.db.Delete(&models.Product{}, "slug = ?", slug).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
