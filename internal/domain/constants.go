package domain

// Default schedule values, applied when a restaurant has no weekly schedule
// row for the requested day. Единственное место, где заданы дефолты -
// slot generator и capacity ledger берут их отсюда.
const (
	DefaultMaxCapacityPerSlot  = 20
	DefaultSlotIntervalMinutes = 30
	DefaultMinAdvanceHours     = 2
	DefaultMaxAdvanceDays      = 30
)

// Business validation constants
const (
	MinPartySize                = 1
	MaxPartySize                = 100
	MaxObservationsLength       = 500
	MaxCancellationReasonLength = 500
)

// DateFormat формат дат во внешних контрактах (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// ActiveStatuses статусы броней, занимающих места в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы броней, не занимающих места в слоте
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
	StatusCompleted,
	StatusNoShow,
}
