// Package domain defines the persistence models for appointments and the
// per-day capacity counter, plus the derived read types served by the
// query layer. These types are mapped with GORM and shared across the
// repository, service, and HTTP layers.
package domain

import "time"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from -> to is an allowed edge.
// Only active records move, and only to a terminal state.
func CanTransition(from, to Status) bool {
	return from == StatusActive && to.Terminal()
}

// Appointment is a single booking of one slot on one date.
//
// Fields:
//   - ID: auto-increment primary key, never reused.
//   - Name / Phone: normalized customer contact details.
//   - Service: catalog service name.
//   - Date: "YYYY-MM-DD" in the business time zone.
//   - Time: "HH:MM" slot start on the day's grid.
//   - Status: active, completed or cancelled (DB check constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// At most one active row may exist per (date, time); the partial unique
// index ux_appointments_active_slot is created by repo.AutoMigrate.
type Appointment struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null"`
	Phone     string    `json:"phone"      gorm:"type:varchar(15);not null"`
	Service   string    `json:"service"    gorm:"type:varchar(100);not null;index:idx_appointments_service"`
	Date      string    `json:"date"       gorm:"type:varchar(10);not null;index:idx_appointments_date_time,priority:1"`
	Time      string    `json:"time"       gorm:"type:varchar(5);not null;index:idx_appointments_date_time,priority:2"`
	Status    Status    `json:"status"     gorm:"type:varchar(16);not null;default:'active';index:idx_appointments_status;check:chk_appointments_status,status IN ('active','completed','cancelled')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Appointment.
func (Appointment) TableName() string { return "appointments" }

// DailyCapacity is the persisted occupancy counter for one date. Active
// always equals the number of active appointments on Date once the
// transaction that touched it has committed.
type DailyCapacity struct {
	Date      string    `json:"date"       gorm:"type:varchar(10);primaryKey"`
	Active    int       `json:"active"     gorm:"not null;default:0;check:chk_daily_capacity_active,active >= 0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for DailyCapacity.
func (DailyCapacity) TableName() string { return "daily_capacity" }
