package get_available_slots

import "time"

// Request модель запроса доступных слотов на дату
type Request struct {
	Date time.Time
}

// Response модель ответа со слотами на дату
// Slots содержит метки предлагаемых слотов, TakenSlots — занятые из них
type Response struct {
	Date       time.Time
	Blocked    bool
	Slots      []string
	TakenSlots []string
}
