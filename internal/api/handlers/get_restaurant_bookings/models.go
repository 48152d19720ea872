package get_restaurant_bookings

import (
	"strconv"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// date задаёт один день, startDate/endDate - период; date имеет приоритет.
func ToServiceRequest(restaurantID int64, statusStr, dateStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetRestaurantBookingsRequest, error) {
	req := &models.GetRestaurantBookingsRequest{
		RestaurantID: restaurantID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startDateStr != "" {
			startDate, err := time.Parse(domain.DateFormat, startDateStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &startDate
		}
		if endDateStr != "" {
			endDate, err := time.Parse(domain.DateFormat, endDateStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &endDate
		}
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
