package models

import (
	"errors"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/ptr"
	"github.com/bitebooking/booking-engine/pkg/types"
)

var (
	// ErrInvalidDayOfWeek возвращается при некорректном дне недели
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidTimeRange возвращается, когда конец окна не позже начала
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrMissingOpenHours возвращается, когда открытый день не задаёт ни одного окна
	ErrMissingOpenHours = errors.New("open day requires opening hours or lunch/dinner windows")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidCapacity возвращается при некорректной вместимости
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

// Request модели

// UpsertScheduleRequest запрос на создание/обновление расписания на день
type UpsertScheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek"` // "monday" ... "sunday"
	IsOpen    bool   `json:"isOpen"`

	OpenTime    *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime   *string `json:"closeTime,omitempty"` // "23:00"
	LunchStart  *string `json:"lunchStart,omitempty"`
	LunchEnd    *string `json:"lunchEnd,omitempty"`
	DinnerStart *string `json:"dinnerStart,omitempty"`
	DinnerEnd   *string `json:"dinnerEnd,omitempty"`

	MaxCapacity           *int    `json:"maxCapacity,omitempty"`
	MaxCapacityPerSlot    *int    `json:"maxCapacityPerSlot,omitempty"`
	SlotIntervalMinutes   *int    `json:"slotIntervalMinutes,omitempty"`
	MinAdvanceHours       *int    `json:"minAdvanceHours,omitempty"`
	MaxAdvanceDays        *int    `json:"maxAdvanceDays,omitempty"`
	AcceptsOnlineBookings *bool   `json:"acceptsOnlineBookings,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

// ToDomain конвертирует request в domain модель с валидацией.
// Незаполненные параметры слотов получают значения по умолчанию.
func (r *UpsertScheduleRequest) ToDomain(restaurantID int64) (*domain.WeeklySchedule, error) {
	day, ok := domain.ParseDayOfWeek(r.DayOfWeek)
	if !ok {
		return nil, ErrInvalidDayOfWeek
	}

	schedule := &domain.WeeklySchedule{
		RestaurantID:          restaurantID,
		DayOfWeek:             day,
		IsOpen:                r.IsOpen,
		MaxCapacity:           r.MaxCapacity,
		MaxCapacityPerSlot:    ptr.DerefOr(r.MaxCapacityPerSlot, domain.DefaultMaxCapacityPerSlot),
		SlotIntervalMinutes:   ptr.DerefOr(r.SlotIntervalMinutes, domain.DefaultSlotIntervalMinutes),
		MinAdvanceHours:       ptr.DerefOr(r.MinAdvanceHours, domain.DefaultMinAdvanceHours),
		MaxAdvanceDays:        ptr.DerefOr(r.MaxAdvanceDays, domain.DefaultMaxAdvanceDays),
		AcceptsOnlineBookings: ptr.DerefOr(r.AcceptsOnlineBookings, true),
		Notes:                 r.Notes,
	}

	if schedule.MaxCapacityPerSlot <= 0 || schedule.SlotIntervalMinutes <= 0 {
		return nil, ErrInvalidCapacity
	}
	if schedule.MaxCapacity != nil && *schedule.MaxCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	var err error
	if schedule.OpenTime, err = parseTime(r.OpenTime); err != nil {
		return nil, err
	}
	if schedule.CloseTime, err = parseTime(r.CloseTime); err != nil {
		return nil, err
	}
	if schedule.LunchStart, err = parseTime(r.LunchStart); err != nil {
		return nil, err
	}
	if schedule.LunchEnd, err = parseTime(r.LunchEnd); err != nil {
		return nil, err
	}
	if schedule.DinnerStart, err = parseTime(r.DinnerStart); err != nil {
		return nil, err
	}
	if schedule.DinnerEnd, err = parseTime(r.DinnerEnd); err != nil {
		return nil, err
	}

	if err := validateWindows(schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// BulkUpsertSchedulesRequest запрос на массовое обновление расписания
type BulkUpsertSchedulesRequest struct {
	Schedules []UpsertScheduleRequest `json:"schedules"`
}

// AddClosedDateRequest запрос на добавление даты закрытия
type AddClosedDateRequest struct {
	Date              string `json:"date"` // "2025-12-25"
	Reason            string `json:"reason"`
	IsRecurringYearly bool   `json:"isRecurringYearly,omitempty"`
}

// ToDomain конвертирует request в domain модель с валидацией
func (r *AddClosedDateRequest) ToDomain(restaurantID int64) (*domain.ClosedDate, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	return &domain.ClosedDate{
		RestaurantID:      restaurantID,
		Date:              date,
		Reason:            r.Reason,
		IsRecurringYearly: r.IsRecurringYearly,
	}, nil
}

// BulkAddClosedDatesRequest запрос на массовое добавление дат закрытия
type BulkAddClosedDatesRequest struct {
	ClosedDates []AddClosedDateRequest `json:"closedDates"`
}

// Response модели

// ScheduleResponse ответ с расписанием на день
type ScheduleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek string `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`

	OpenTime    *string `json:"openTime,omitempty"`
	CloseTime   *string `json:"closeTime,omitempty"`
	LunchStart  *string `json:"lunchStart,omitempty"`
	LunchEnd    *string `json:"lunchEnd,omitempty"`
	DinnerStart *string `json:"dinnerStart,omitempty"`
	DinnerEnd   *string `json:"dinnerEnd,omitempty"`

	MaxCapacity           *int    `json:"maxCapacity,omitempty"`
	MaxCapacityPerSlot    int     `json:"maxCapacityPerSlot"`
	SlotIntervalMinutes   int     `json:"slotIntervalMinutes"`
	MinAdvanceHours       int     `json:"minAdvanceHours"`
	MaxAdvanceDays        int     `json:"maxAdvanceDays"`
	AcceptsOnlineBookings bool    `json:"acceptsOnlineBookings"`
	Notes                 *string `json:"notes,omitempty"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// ClosedDateResponse ответ с датой закрытия
type ClosedDateResponse struct {
	ID                int64  `json:"id"`
	Date              string `json:"date"`
	Reason            string `json:"reason"`
	IsRecurringYearly bool   `json:"isRecurringYearly"`
}

// ClosedDateListResponse ответ со списком дат закрытия
type ClosedDateListResponse struct {
	ClosedDates []ClosedDateResponse `json:"closedDates"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:                    s.ID,
		DayOfWeek:             domain.DayOfWeekName(s.DayOfWeek),
		IsOpen:                s.IsOpen,
		OpenTime:              formatTime(s.OpenTime),
		CloseTime:             formatTime(s.CloseTime),
		LunchStart:            formatTime(s.LunchStart),
		LunchEnd:              formatTime(s.LunchEnd),
		DinnerStart:           formatTime(s.DinnerStart),
		DinnerEnd:             formatTime(s.DinnerEnd),
		MaxCapacity:           s.MaxCapacity,
		MaxCapacityPerSlot:    s.MaxCapacityPerSlot,
		SlotIntervalMinutes:   s.SlotIntervalMinutes,
		MinAdvanceHours:       s.MinAdvanceHours,
		MaxAdvanceDays:        s.MaxAdvanceDays,
		AcceptsOnlineBookings: s.AcceptsOnlineBookings,
		Notes:                 s.Notes,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.WeeklySchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, schedule := range schedules {
		if scheduleResp := FromDomainSchedule(schedule); scheduleResp != nil {
			resp.Schedules = append(resp.Schedules, *scheduleResp)
		}
	}

	return resp
}

// FromDomainClosedDate конвертирует domain модель в DTO
func FromDomainClosedDate(cd *domain.ClosedDate) *ClosedDateResponse {
	if cd == nil {
		return nil
	}

	return &ClosedDateResponse{
		ID:                cd.ID,
		Date:              cd.Date.Format(domain.DateFormat),
		Reason:            cd.Reason,
		IsRecurringYearly: cd.IsRecurringYearly,
	}
}

// FromDomainClosedDateList конвертирует список domain моделей в DTO
func FromDomainClosedDateList(closedDates []*domain.ClosedDate) *ClosedDateListResponse {
	resp := &ClosedDateListResponse{
		ClosedDates: make([]ClosedDateResponse, 0, len(closedDates)),
	}

	for _, cd := range closedDates {
		if cdResp := FromDomainClosedDate(cd); cdResp != nil {
			resp.ClosedDates = append(resp.ClosedDates, *cdResp)
		}
	}

	return resp
}

// Вспомогательные функции

func parseTime(raw *string) (*types.TimeString, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	ts, err := types.NewTimeStringFromString(*raw)
	if err != nil {
		return nil, ErrInvalidTime
	}
	return &ts, nil
}

func formatTime(ts *types.TimeString) *string {
	if ts == nil {
		return nil
	}
	s := ts.String()
	return &s
}

// validateWindows проверяет согласованность временных окон.
// Каждое окно должно быть задано парой, конец строго позже начала.
func validateWindows(s *domain.WeeklySchedule) error {
	pairs := []struct {
		start, end *types.TimeString
	}{
		{s.OpenTime, s.CloseTime},
		{s.LunchStart, s.LunchEnd},
		{s.DinnerStart, s.DinnerEnd},
	}

	for _, p := range pairs {
		if (p.start == nil) != (p.end == nil) {
			return ErrInvalidTimeRange
		}
		if p.start != nil && !p.start.IsBefore(*p.end) {
			return ErrInvalidTimeRange
		}
	}

	if s.IsOpen && !s.HasGeneralWindow() && !s.HasLunchWindow() && !s.HasDinnerWindow() {
		return ErrMissingOpenHours
	}

	return nil
}
