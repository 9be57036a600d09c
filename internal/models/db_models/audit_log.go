package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreate        = "create"
	ActionRead          = "read"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionLogin         = "login"
	ActionAutoLogin     = "auto_login"
	ActionLogout        = "logout"
	ActionFailedLogin   = "failed_login"
	ActionPasswordReset = "password_reset"
	ActionResetPassword = "reset_password"
	ActionUnlockAccount = "unlock_account"
)

// AuditLog is append-only; rows are never updated or deleted and may
// outlive the acting account.
type AuditLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID    *uuid.UUID `gorm:"type:uuid;index:idx_audit_account_time"`
	Action       string     `gorm:"index:idx_audit_action_time"`
	ResourceType string
	ResourceID   string
	Details      JSONMap
	IPAddress    string
	UserAgent    string
	CreatedAt    int64 `gorm:"autoCreateTime;index:idx_audit_account_time;index:idx_audit_action_time"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = time.Now().Unix()
	}
	return nil
}
