package orders

import "storefront/internal/models"

type DashboardStats struct {
	TotalOrders           int64   `json:"total_orders"`
	PendingOrders         int64   `json:"pending_orders"`
	ProcessingOrders      int64   `json:"processing_orders"`
	ShippedOrders         int64   `json:"shipped_orders"`
	DeliveredOrders       int64   `json:"delivered_orders"`
	CancelledOrders       int64   `json:"cancelled_orders"`
	TotalRevenue          float64 `json:"total_revenue"`
	TotalProducts         int64   `json:"total_products"`
	TotalUsers            int64   `json:"total_users"`
	NewsletterSubscribers int64   `json:"newsletter_subscribers"`
}

// DashboardStats collects the aggregate counters shown on the admin
// dashboard.
func (s *Service) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	byStatus := []struct {
		status models.OrderStatus
		target *int64
	}{
		{models.OrderStatusPending, &stats.PendingOrders},
		{models.OrderStatusProcessing, &stats.ProcessingOrders},
		{models.OrderStatusShipped, &stats.ShippedOrders},
		{models.OrderStatusDelivered, &stats.DeliveredOrders},
		{models.OrderStatusCancelled, &stats.CancelledOrders},
	}
	for _, sc := range byStatus {
		if err := s.db.Model(&models.Order{}).Where("status = ?", sc.status).Count(sc.target).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Newsletter{}).Count(&stats.NewsletterSubscribers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
