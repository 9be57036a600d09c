package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kusanyiko/internal/models/db_models"
)

type ExportRepository interface {
	Insert(ctx context.Context, record *db_models.ExportHistory) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.ExportHistory, error)
}

type exportRepository struct {
	db *gorm.DB
}

func NewExportRepository(db *gorm.DB) ExportRepository {
	return &exportRepository{db: db}
}

func (r *exportRepository) Insert(ctx context.Context, record *db_models.ExportHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *exportRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.ExportHistory, error) {
	var records []db_models.ExportHistory
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", accountID).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&records).Error
	return records, err
}
