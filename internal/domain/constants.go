package domain

// Значения по умолчанию для бизнес-констант клуба.
// Могут быть переопределены в config.toml.
const (
	DefaultMaxSims                  = 4
	DefaultHoldMinutes              = 30
	DefaultMaxActiveBookingsPerUser = 6

	DefaultOpenHour    = 13
	DefaultOpenMinute  = 0
	DefaultCloseHour   = 23
	DefaultCloseMinute = 0

	DefaultSlotStepMinutes          = 30
	DefaultSafetyGapMinutes         = 5
	DefaultAutoConfirmBeforeMinutes = 45
	DefaultAutoCompleteAfterHours   = 2
	DefaultRemindBeforeHours        = 2
)

// Форматы дат и времени в API
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultPrices тарифы: цена за один симулятор по длительности в минутах
var DefaultPrices = map[int]int{
	30:  390,
	60:  690,
	90:  990,
	120: 1290,
}

// CapacityStatuses статусы, занимающие симуляторы при подсчете свободных мест
var CapacityStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusBlocked,
}

// FinalStatuses терминальные статусы клиентской брони
var FinalStatuses = []BookingStatus{
	StatusCancelled,
	StatusDone,
	StatusNoShow,
}
