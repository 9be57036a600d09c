package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kusanyiko/internal/models/db_models"
)

const PublicSearchLimit = 50

// MemberFilter fields are ANDed into the query only when non-empty.
// Soft-deleted members are always excluded.
type MemberFilter struct {
	CreatedBy uuid.UUID
	Search    string
	Gender    string
	Region    string
	Country   string
	Saved     *bool
	DateFrom  *time.Time
	DateTo    *time.Time
}

// GroupCount is one row of a grouped aggregate.
type GroupCount struct {
	Value string `gorm:"column:value"`
	Count int64  `gorm:"column:count"`
}

type MemberRepository interface {
	Insert(ctx context.Context, member *db_models.Member) error
	Update(ctx context.Context, member *db_models.Member) error

	// FindByID scopes to ownerID when ownerID is non-nil; deleted rows are
	// never returned.
	FindByID(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error)

	List(ctx context.Context, filter MemberFilter, page, pageSize int) ([]db_models.Member, int64, error)
	ListAll(ctx context.Context, filter MemberFilter) ([]db_models.Member, error)
	Search(ctx context.Context, term string, limit int) ([]db_models.Member, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	Count(ctx context.Context, filter MemberFilter) (int64, error)
	CountCreatedBetween(ctx context.Context, filter MemberFilter, start, end time.Time) (int64, error)
	GroupCount(ctx context.Context, filter MemberFilter, column string) ([]GroupCount, error)
	Recent(ctx context.Context, filter MemberFilter, limit int) ([]db_models.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Insert(ctx context.Context, member *db_models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *db_models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error) {
	q := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false)
	if ownerID != nil {
		q = q.Where("created_by_id = ?", *ownerID)
	}

	var member db_models.Member
	if err := q.First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func applySearch(q *gorm.DB, term string) *gorm.DB {
	pattern := "%" + term + "%"
	return q.Where(
		"first_name ILIKE ? OR last_name ILIKE ? OR middle_name ILIKE ? OR mobile_no ILIKE ? OR email ILIKE ?",
		pattern, pattern, pattern, pattern, pattern,
	)
}

func (r *memberRepository) applyFilter(q *gorm.DB, filter MemberFilter) *gorm.DB {
	q = q.Where("is_deleted = ?", false)

	if filter.CreatedBy != uuid.Nil {
		q = q.Where("created_by_id = ?", filter.CreatedBy)
	}
	if filter.Search != "" {
		q = applySearch(q, filter.Search)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.Region != "" {
		q = q.Where("region ILIKE ?", "%"+filter.Region+"%")
	}
	if filter.Country != "" {
		q = q.Where("country ILIKE ?", "%"+filter.Country+"%")
	}
	if filter.Saved != nil {
		q = q.Where("saved = ?", *filter.Saved)
	}
	if filter.DateFrom != nil {
		q = q.Where("created_at >= ?", filter.DateFrom.Unix())
	}
	if filter.DateTo != nil {
		q = q.Where("created_at <= ?", filter.DateTo.Unix())
	}
	return q
}

func (r *memberRepository) List(ctx context.Context, filter MemberFilter, page, pageSize int) ([]db_models.Member, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Member{}), filter)

	// Total count before pagination so callers can render "N of M".
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []db_models.Member
	err := q.Order("created_at DESC, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepository) ListAll(ctx context.Context, filter MemberFilter) ([]db_models.Member, error) {
	var members []db_models.Member
	err := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Member{}), filter).
		Order("created_at DESC, id").
		Find(&members).Error
	return members, err
}

func (r *memberRepository) Search(ctx context.Context, term string, limit int) ([]db_models.Member, error) {
	var members []db_models.Member
	err := applySearch(r.db.WithContext(ctx).Where("is_deleted = ?", false), term).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&members).Error
	return members, err
}

func (r *memberRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&db_models.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().Unix(),
		}).Error
}

func (r *memberRepository) SoftDeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&db_models.Member{}).
		Where("created_by_id = ? AND is_deleted = ?", ownerID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now().Unix(),
		})
	return result.RowsAffected, result.Error
}

func (r *memberRepository) Count(ctx context.Context, filter MemberFilter) (int64, error) {
	var n int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Member{}), filter).
		Count(&n).Error
	return n, err
}

func (r *memberRepository) CountCreatedBetween(ctx context.Context, filter MemberFilter, start, end time.Time) (int64, error) {
	var n int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Member{}), filter).
		Where("created_at >= ? AND created_at < ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

// groupColumns whitelists the columns GroupCount may aggregate on.
var groupColumns = map[string]string{
	"country":        "country",
	"region":         "region",
	"center_area":    "center_area",
	"gender":         "gender",
	"marital_status": "marital_status",
	"saved":          "saved::text",
}

func (r *memberRepository) GroupCount(ctx context.Context, filter MemberFilter, column string) ([]GroupCount, error) {
	expr, ok := groupColumns[column]
	if !ok {
		return nil, errors.New("unsupported group column: " + column)
	}

	var rows []GroupCount
	err := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Member{}), filter).
		Select(expr + " AS value, COUNT(id) AS count").
		Group(expr).
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (r *memberRepository) Recent(ctx context.Context, filter MemberFilter, limit int) ([]db_models.Member, error) {
	var members []db_models.Member
	err := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Member{}), filter).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&members).Error
	return members, err
}
