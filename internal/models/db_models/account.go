package db_models

import "time"

const (
	RoleAdmin      = "admin"
	RoleRegistrant = "registrant"
	RoleMember     = "member"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRegistrant, RoleMember:
		return true
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type Account struct {
	BaseModel
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string `gorm:"default:admin"`
	Status       string `gorm:"default:active"`
	Country      string
	Region       string

	LastLoginIP         string
	LastLoginAt         *time.Time
	FailedLoginAttempts int
	LockedUntil         *time.Time

	ResetToken        string
	ResetTokenExpires *time.Time
}

// IsLocked reports whether the lockout window is still open.
func (a *Account) IsLocked() bool {
	return a.LockedUntil != nil && time.Now().Before(*a.LockedUntil)
}

// Lock opens a lockout window for the given duration.
func (a *Account) Lock(duration time.Duration) {
	until := time.Now().Add(duration)
	a.LockedUntil = &until
}

// Unlock closes the lockout window and clears the failure counter.
func (a *Account) Unlock() {
	a.LockedUntil = nil
	a.FailedLoginAttempts = 0
}
