package orders

import (
	"fmt"
	"sort"
	"time"

	"storefront/internal/models"
)

const (
	FilterDaily   = "daily"
	FilterWeekly  = "weekly"
	FilterMonthly = "monthly"
	FilterYearly  = "yearly"
)

type RevenueBucket struct {
	Period       string  `json:"period"`
	TotalRevenue float64 `json:"total_revenue"`
	OrderCount   int64   `json:"order_count"`
}

// Revenue aggregates order totals into calendar buckets. Daily covers
// the current month, weekly and monthly the current year, yearly all
// recorded years.
func (s *Service) Revenue(filter string, now time.Time) ([]RevenueBucket, error) {
	var all []models.Order
	if err := s.db.Find(&all).Error; err != nil {
		return nil, err
	}
	return BucketRevenue(all, filter, now)
}

// BucketRevenue is the pure grouping behind Revenue.
func BucketRevenue(all []models.Order, filter string, now time.Time) ([]RevenueBucket, error) {
	switch filter {
	case FilterDaily, FilterWeekly, FilterMonthly, FilterYearly:
	default:
		return nil, validationf("Invalid filter %q, expected daily, weekly, monthly or yearly", filter)
	}

	buckets := map[string]*RevenueBucket{}

	for _, order := range all {
		created := order.CreatedAt
		var key string

		switch filter {
		case FilterDaily:
			if created.Year() != now.Year() || created.Month() != now.Month() {
				continue
			}
			key = created.Format("2006-01-02")
		case FilterWeekly:
			if created.Year() != now.Year() {
				continue
			}
			year, week := created.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		case FilterMonthly:
			if created.Year() != now.Year() {
				continue
			}
			key = created.Format("2006-01")
		case FilterYearly:
			key = created.Format("2006")
		}

		bucket, ok := buckets[key]
		if !ok {
			bucket = &RevenueBucket{Period: key}
			buckets[key] = bucket
		}
		bucket.TotalRevenue += order.TotalAmount
		bucket.OrderCount++
	}

	result := make([]RevenueBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period < result[j].Period
	})
	return result, nil
}
