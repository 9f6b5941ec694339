package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"index"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Subcategory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Slug       string    `json:"slug" gorm:"index"`
	CategoryID uint      `json:"category_id" gorm:"index;not null"`
	Category   *Category `json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SubSubcategory struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"not null"`
	Slug          string       `json:"slug" gorm:"index"`
	SubcategoryID uint         `json:"subcategory_id" gorm:"index;not null"`
	Subcategory   *Subcategory `json:"subcategory,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Size struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"index;not null"`
	Slug             string          `json:"slug" gorm:"index"`
	Description      string          `json:"description"`
	MarketPrice      float64         `json:"market_price" gorm:"type:decimal(10,2)"`
	Price            float64         `json:"price" gorm:"type:decimal(10,2)"`
	Stock            int             `json:"stock" gorm:"not null;default:0"`
	CategoryID       *uint           `json:"category_id" gorm:"index"`
	Category         *Category       `json:"category,omitempty"`
	SubcategoryID    *uint           `json:"subcategory_id" gorm:"index"`
	Subcategory      *Subcategory    `json:"subcategory,omitempty"`
	SubSubcategoryID *uint           `json:"subsubcategory_id" gorm:"index"`
	SubSubcategory   *SubSubcategory `json:"subsubcategory,omitempty"`
	Sizes            []Size          `json:"sizes" gorm:"many2many:product_sizes"`
	Images           []ProductImage  `json:"images" gorm:"foreignKey:ProductID"`
	ThumbnailImage   string          `json:"thumbnail_image"`
	IsPopular        bool            `json:"is_popular" gorm:"default:false"`
	IsFeatured       bool            `json:"is_featured" gorm:"default:false"`
	Discount         float64         `json:"discount" gorm:"type:decimal(5,2);default:0"`
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductImage doubles as the color variant record: when Color is set
// the row carries its own sellable stock, independent of the product
// level counter.
type ProductImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Stock     int       `json:"stock" gorm:"not null;default:0"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Slug = Slugify(p.Name)
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = Slugify(c.Name)
	return nil
}

func (s *Subcategory) BeforeSave(tx *gorm.DB) error {
	s.Slug = Slugify(s.Name)
	return nil
}

func (s *SubSubcategory) BeforeSave(tx *gorm.DB) error {
	s.Slug = Slugify(s.Name)
	return nil
}
