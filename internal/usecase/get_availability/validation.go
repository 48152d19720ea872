package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.NumPeople < 0 {
		return fmt.Errorf("%w: numPeople must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateWeekRequest валидирует входные данные недельного запроса
func validateWeekRequest(req *WeekRequest) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.NumPeople < 0 {
		return fmt.Errorf("%w: numPeople must not be negative", ErrInvalidInput)
	}

	return nil
}

// normalizeNumPeople приводит незаданный размер группы к одному человеку
func normalizeNumPeople(numPeople int) int {
	if numPeople <= 0 {
		return 1
	}
	return numPeople
}
