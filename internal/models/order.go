package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"index;not null"`
	User            *User       `json:"-"`
	OrderNumber     string      `json:"order_number" gorm:"uniqueIndex"`
	FullName        string      `json:"full_name" gorm:"index"`
	ShippingAddress string      `json:"shipping_address"`
	PhoneNumber     string      `json:"phone_number" gorm:"index"`
	Email           string      `json:"email"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	ZipCode         string      `json:"zip_code"`
	TotalAmount     float64     `json:"total_amount" gorm:"type:decimal(10,2)"`
	DeliveryFee     float64     `json:"delivery_fee" gorm:"type:decimal(10,2)"`
	Status          OrderStatus `json:"status" gorm:"index;default:pending"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	SizeID    *uint     `json:"size_id"`
	Size      *Size     `json:"size,omitempty"`
	Color     string    `json:"color"`
	// Price is the unit price snapshot taken at order time.
	Price     float64   `json:"price" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time `json:"created_at"`
}

func (i OrderItem) TotalPrice() float64 {
	return i.Price * float64(i.Quantity)
}
