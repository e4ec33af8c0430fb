package get_free_slots

import "time"

// Request запрос сетки слотов на день
type Request struct {
	Day             time.Time
	DurationMinutes int
	SimsNeeded      int
}

// Slot слот сетки с числом свободных симуляторов
type Slot struct {
	StartAt  time.Time
	EndAt    time.Time
	FreeSims int
}

// Result сетка слотов на день
type Result struct {
	Day   time.Time
	Slots []Slot
}
