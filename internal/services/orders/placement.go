package orders

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidationError marks failures the caller should see as a 400 rather
// than a server fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type ItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	SizeID    *uint  `json:"size_id"`
	Color     string `json:"color"`
}

type PlaceRequest struct {
	FullName        string        `json:"full_name" binding:"required"`
	ShippingAddress string        `json:"shipping_address" binding:"required"`
	PhoneNumber     string        `json:"phone_number" binding:"required"`
	Email           string        `json:"email"`
	City            string        `json:"city"`
	State           string        `json:"state"`
	ZipCode         string        `json:"zip_code"`
	TotalAmount     float64       `json:"total_amount"`
	DeliveryFee     float64       `json:"delivery_fee"`
	Items           []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateRequest struct {
	FullName        *string       `json:"full_name"`
	ShippingAddress *string       `json:"shipping_address"`
	PhoneNumber     *string       `json:"phone_number"`
	Email           *string       `json:"email"`
	City            *string       `json:"city"`
	State           *string       `json:"state"`
	ZipCode         *string       `json:"zip_code"`
	TotalAmount     *float64      `json:"total_amount"`
	DeliveryFee     *float64      `json:"delivery_fee"`
	Status          *string       `json:"status"`
	Items           []ItemRequest `json:"items"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FormatOrderNumber builds the public order number from the creation
// date and the database row id.
func FormatOrderNumber(createdAt time.Time, id uint) string {
	return fmt.Sprintf("ORD-%s-%d", createdAt.Format("20060102"), id)
}

// Place inserts the order row first (the order number needs the row id),
// then walks the items: resolve the stock counter, check availability,
// decrement, create the item row. A failing item aborts placement and
// removes the order row, but counters already decremented for earlier
// items are left as-is, matching the behavior this service replaces.
func (s *Service) Place(userID uint, req PlaceRequest) (*models.Order, error) {
	order := &models.Order{
		UserID:          userID,
		FullName:        req.FullName,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		TotalAmount:     req.TotalAmount,
		DeliveryFee:     req.DeliveryFee,
		Status:          models.OrderStatusPending,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.OrderNumber = FormatOrderNumber(order.CreatedAt, order.ID)
	if err := s.db.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
		return nil, fmt.Errorf("failed to assign order number: %w", err)
	}

	if err := s.applyItems(order, req.Items); err != nil {
		s.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{})
		s.db.Delete(order)
		return nil, err
	}

	if err := s.db.Preload("Items").Preload("Items.Product").First(order, order.ID).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Update applies the restore-then-reapply pattern for a replacement
// item list: every existing item's quantity goes back into its stock
// counter, the old rows are deleted, then the new list is validated and
// deducted exactly as on placement. Other changed fields are saved last.
func (s *Service) Update(order *models.Order, req UpdateRequest) (*models.Order, error) {
	if req.Items != nil {
		var existing []models.OrderItem
		if err := s.db.Where("order_id = ?", order.ID).Find(&existing).Error; err != nil {
			return nil, err
		}
		for _, item := range existing {
			s.restoreItem(item)
		}
		if err := s.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return nil, err
		}
		if err := s.applyItems(order, req.Items); err != nil {
			return nil, err
		}
	}

	if req.FullName != nil {
		order.FullName = *req.FullName
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	}
	if req.PhoneNumber != nil {
		order.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		order.Email = *req.Email
	}
	if req.City != nil {
		order.City = *req.City
	}
	if req.State != nil {
		order.State = *req.State
	}
	if req.ZipCode != nil {
		order.ZipCode = *req.ZipCode
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.DeliveryFee != nil {
		order.DeliveryFee = *req.DeliveryFee
	}
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		if !status.Valid() {
			return nil, validationf("Invalid order status %q", *req.Status)
		}
		order.Status = status
	}

	// Save scalar columns only. order.Items still holds the preloaded
	// rows, and letting gorm upsert them would resurrect items deleted
	// during the replace above.
	if err := s.db.Omit(clause.Associations).Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := s.db.Preload("Items").Preload("Items.Product").First(order, order.ID).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) applyItems(order *models.Order, items []ItemRequest) error {
	for _, item := range items {
		if err := s.applyItem(order, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) applyItem(order *models.Order, item ItemRequest) error {
	var product models.Product
	if err := s.db.First(&product, item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationf("Product %d not found", item.ProductID)
		}
		return err
	}

	if item.Color != "" {
		var image models.ProductImage
		err := s.db.Where("product_id = ? AND LOWER(color) = LOWER(?)", product.ID, item.Color).
			First(&image).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationf("Color %s not available for product %s", item.Color, product.Name)
			}
			return err
		}
		if item.Quantity > image.Stock {
			return validationf("Insufficient stock for product %s", product.Name)
		}
		if err := s.db.Model(&image).Update("stock", image.Stock-item.Quantity).Error; err != nil {
			return err
		}
	} else {
		if item.Quantity > product.Stock {
			return validationf("Insufficient stock for product %s", product.Name)
		}
		if err := s.db.Model(&product).Update("stock", product.Stock-item.Quantity).Error; err != nil {
			return err
		}
	}

	orderItem := models.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  item.Quantity,
		SizeID:    item.SizeID,
		Color:     item.Color,
		Price:     product.Price,
	}
	return s.db.Create(&orderItem).Error
}

// restoreItem credits an item's quantity back into the counter it was
// deducted from. Restores never fail placement-style: when the color
// variant row has since disappeared, the product counter absorbs the
// quantity.
func (s *Service) restoreItem(item models.OrderItem) {
	if item.Color != "" {
		var image models.ProductImage
		err := s.db.Where("product_id = ? AND LOWER(color) = LOWER(?)", item.ProductID, item.Color).
			First(&image).Error
		if err == nil {
			s.db.Model(&image).Update("stock", image.Stock+item.Quantity)
			return
		}
	}
	var product models.Product
	if err := s.db.First(&product, item.ProductID).Error; err != nil {
		return
	}
	s.db.Model(&product).Update("stock", product.Stock+item.Quantity)
}
