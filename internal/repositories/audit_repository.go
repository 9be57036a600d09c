package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kusanyiko/internal/models/db_models"
)

// ActivityFilter narrows audit queries for exports; empty fields are ignored.
type ActivityFilter struct {
	Start      *time.Time
	End        *time.Time
	AccountIDs []uuid.UUID
}

type AuditRepository interface {
	Insert(ctx context.Context, entry *db_models.AuditLog) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error)
	ListFiltered(ctx context.Context, filter ActivityFilter) ([]db_models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *db_models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error) {
	var logs []db_models.AuditLog
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *auditRepository) ListFiltered(ctx context.Context, filter ActivityFilter) ([]db_models.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&db_models.AuditLog{})

	if filter.Start != nil {
		q = q.Where("created_at >= ?", filter.Start.Unix())
	}
	if filter.End != nil {
		q = q.Where("created_at <= ?", filter.End.Unix())
	}
	if len(filter.AccountIDs) > 0 {
		q = q.Where("account_id IN ?", filter.AccountIDs)
	}

	var logs []db_models.AuditLog
	err := q.Order("created_at DESC, id").Find(&logs).Error
	return logs, err
}
