package models

import "time"

type BannerType string

const (
	BannerTypeSlider  BannerType = "Slider"
	BannerTypeSidebar BannerType = "Sidebar"
	BannerTypeBanner  BannerType = "Banner"
	BannerTypePopup   BannerType = "Popup"
)

func (t BannerType) Valid() bool {
	switch t {
	case BannerTypeSlider, BannerTypeSidebar, BannerTypeBanner, BannerTypePopup:
		return true
	}
	return false
}

type Banner struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	BannerType BannerType    `json:"banner_type" gorm:"default:Slider"`
	IsActive   bool          `json:"is_active" gorm:"default:true"`
	Images     []BannerImage `json:"images" gorm:"foreignKey:BannerID"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type BannerImage struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	BannerID            uint      `json:"banner_id" gorm:"index;not null"`
	Image               string    `json:"image"`
	ImageAltDescription string    `json:"image_alt_description"`
	Link                string    `json:"link"`
	IsActive            bool      `json:"is_active" gorm:"default:true"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
