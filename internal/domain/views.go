package domain

// SlotState classifies a slot for display and booking checks.
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
	SlotPast      SlotState = "past"
)

// Slot is a derived, never-stored view of one start time on a date.
type Slot struct {
	Time  string    `json:"time"`
	State SlotState `json:"state"`
}

// CapacitySummary reports how full a date is.
type CapacitySummary struct {
	Date    string `json:"date"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
	IsFull  bool   `json:"is_full"`
}

// Stats are the dashboard counters.
type Stats struct {
	TodayActive    int64  `json:"today_active"`
	Total          int64  `json:"total"`
	Active         int64  `json:"active"`
	Completed      int64  `json:"completed"`
	Cancelled      int64  `json:"cancelled"`
	PopularService string `json:"popular_service,omitempty"`
	PopularCount   int64  `json:"popular_count"`
}

// AppointmentFilter narrows listings. Zero values mean "any".
type AppointmentFilter struct {
	Date   string
	Status Status
}
