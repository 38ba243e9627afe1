package domain

import "time"

// Idempotency represents a recorded result of a previously processed request,
// keyed by (scope, key). It enables safe retries of POST /appointments by
// returning the originally created appointment without booking twice. A
// retry must carry the same booking; RequestHash tells the two apart.
// Scope is the client identity the key was issued under (the caller's IP
// unless an explicit client id header is present).
type Idempotency struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	Scope         string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_scope_key,priority:1"`
	Key           string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_scope_key,priority:2"`
	AppointmentID int64     `gorm:"not null"`
	Status        int       `gorm:"not null"`
	RequestHash   string    `gorm:"type:varchar(64);not null;default:''"` // fingerprint of the booking that used the key
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
