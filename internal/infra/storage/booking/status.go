package booking

import (
	"strings"

	"github.com/bitebooking/booking-engine/internal/domain"
)

// normalizeStatus приводит значение статуса из БД к каноническому виду.
// Старые записи хранят статус как число/булево ("0"/"false" - ожидает
// подтверждения, "1"/"true" - подтверждена). Нормализация выполняется один
// раз на границе хранилища: остальной код видит только шесть канонических
// статусов.
func normalizeStatus(raw string) domain.BookingStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false":
		return domain.StatusPending
	case "1", "true":
		return domain.StatusConfirmed
	}

	status := domain.BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if status.IsValid() {
		return status
	}
	return domain.StatusPending
}
