package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewBlogHandler(db *gorm.DB, logger *logger.Logger) *BlogHandler {
	return &BlogHandler{
		db:     db,
		logger: logger,
	}
}

func (h *BlogHandler) List(c *gin.Context) {
	var blogs []models.Blog

	page, limit, offset := paginate(c)

	query := h.db.Model(&models.Blog{})
	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN blog_categories ON blog_categories.id = blogs.category_id").
			Where("blog_categories.slug = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	err := query.Preload("Category").Preload("Tags").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blogs"})
		return
	}

	c.JSON(http.StatusOK, listResponse(blogs, page, limit, total))
}

func (h *BlogHandler) Get(c *gin.Context) {
	var blog models.Blog
	err := h.db.Preload("Category").Preload("Tags").Preload("Comments").
		First(&blog, "slug = ?", c.Param("slug")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": blog})
}

func (h *BlogHandler) Create(c *gin.Context) {
	var blog models.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": blog})
}

func (h *BlogHandler) Update(c *gin.Context) {
	var blog models.Blog
	if err := h.db.First(&blog, "slug = ?", c.Param("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog"})
		return
	}
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Save(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": blog})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Blog{}, "slug = ?", c.Param("slug")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *BlogHandler) ListCategories(c *gin.Context) {
	var categories []models.BlogCategory
	if err := h.db.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *BlogHandler) CreateCategory(c *gin.Context) {
	var category models.BlogCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (h *BlogHandler) ListTags(c *gin.Context) {
	var tags []models.BlogTag
	if err := h.db.Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog tags"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *BlogHandler) CreateTag(c *gin.Context) {
	var tag models.BlogTag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog tag"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": tag})
}

func (h *BlogHandler) CreateComment(c *gin.Context) {
	var comment models.BlogComment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": comment})
}

func (h *BlogHandler) DeleteComment(c *gin.Context) {
	if err := h.db.Delete(&models.BlogComment{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *BlogHandler) ListTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	if err := h.db.Find(&testimonials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials"})
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

func (h *BlogHandler) CreateTestimonial(c *gin.Context) {
	var testimonial models.Testimonial
	if err := c.ShouldBindJSON(&testimonial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.db.Create(&testimonial).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create testimonial"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": testimonial})
}
