package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kusanyiko/internal/models/db_models"
)

// UserFilter is applied conjunctively; empty fields are ignored. Role and
// Status accept "all" as a passthrough.
type UserFilter struct {
	Search string
	Role   string
	Status string
}

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	Update(ctx context.Context, account *db_models.Account) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByUsername(ctx context.Context, username string) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*db_models.Account, error)

	List(ctx context.Context, filter UserFilter, page, pageSize int) ([]db_models.Account, int64, error)

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByRole(ctx context.Context) ([]GroupCount, error)
	CountLoginsSince(ctx context.Context, since time.Time) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Account{}, "id = ?", id).Error
}

func (r *accountRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).First(&account, append([]interface{}{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByResetToken matches token and expiry together so an expired token is
// indistinguishable from an unknown one.
func (r *accountRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*db_models.Account, error) {
	return r.findOne(ctx, "reset_token = ? AND reset_token <> '' AND reset_token_expires > ?", token, now)
}

func (r *accountRepository) applyFilter(q *gorm.DB, filter UserFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Role != "" && filter.Role != "all" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

func (r *accountRepository) List(ctx context.Context, filter UserFilter, page, pageSize int) ([]db_models.Account, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&db_models.Account{}), filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []db_models.Account
	err := q.Order("created_at DESC, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *accountRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).Count(&n).Error
	return n, err
}

func (r *accountRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *accountRepository) CountByRole(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).
		Select("role AS value, COUNT(id) AS count").
		Group("role").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (r *accountRepository) CountLoginsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).
		Where("last_login_at >= ?", since).
		Count(&n).Error
	return n, err
}
