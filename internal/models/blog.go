package models

import (
	"time"

	"gorm.io/gorm"
)

type BlogCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Blog struct {
	ID                           uint          `json:"id" gorm:"primaryKey"`
	AuthorID                     *uint         `json:"author_id"`
	Author                       *User         `json:"-"`
	Title                        string        `json:"title" gorm:"index;not null"`
	Slug                         string        `json:"slug" gorm:"uniqueIndex"`
	Description                  string        `json:"description"`
	MetaTitle                    string        `json:"meta_title"`
	MetaDescription              string        `json:"meta_description"`
	ThumbnailImage               string        `json:"thumbnail_image"`
	ThumbnailImageAltDescription string        `json:"thumbnail_image_alt_description"`
	CategoryID                   uint          `json:"category_id" gorm:"index;not null"`
	Category                     *BlogCategory `json:"category,omitempty"`
	Tags                         []BlogTag     `json:"tags" gorm:"many2many:blog_tags_rel"`
	Comments                     []BlogComment `json:"comments" gorm:"foreignKey:BlogID"`
	CreatedAt                    time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt                    time.Time     `json:"updated_at"`
}

type BlogComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog" gorm:"index;not null"`
	UserID    uint      `json:"user" gorm:"index;not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Testimonial struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Designation string    `json:"designation"`
	Image       string    `json:"image"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Blog) BeforeSave(tx *gorm.DB) error {
	b.Slug = Slugify(b.Title)
	return nil
}

func (c *BlogCategory) BeforeSave(tx *gorm.DB) error {
	c.Slug = Slugify(c.Title)
	return nil
}
