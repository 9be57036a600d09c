package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/repositories"
)

// Function-field mocks; a nil field means the call returns zero values.

type mockAccountRepo struct {
	InsertFn           func(ctx context.Context, account *db_models.Account) error
	UpdateFn           func(ctx context.Context, account *db_models.Account) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error
	FindByIDFn         func(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByUsernameFn   func(ctx context.Context, username string) (*db_models.Account, error)
	FindByEmailFn      func(ctx context.Context, email string) (*db_models.Account, error)
	FindByResetTokenFn func(ctx context.Context, token string, now time.Time) (*db_models.Account, error)
	ListFn             func(ctx context.Context, filter repositories.UserFilter, page, pageSize int) ([]db_models.Account, int64, error)
	CountAllFn         func(ctx context.Context) (int64, error)
	CountByStatusFn    func(ctx context.Context, status string) (int64, error)
	CountByRoleFn      func(ctx context.Context) ([]repositories.GroupCount, error)
	CountLoginsSinceFn func(ctx context.Context, since time.Time) (int64, error)
}

func (m *mockAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) Update(ctx context.Context, account *db_models.Account) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	if m.FindByUsernameFn != nil {
		return m.FindByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepo) FindByResetToken(ctx context.Context, token string, now time.Time) (*db_models.Account, error) {
	if m.FindByResetTokenFn != nil {
		return m.FindByResetTokenFn(ctx, token, now)
	}
	return nil, nil
}

func (m *mockAccountRepo) List(ctx context.Context, filter repositories.UserFilter, page, pageSize int) ([]db_models.Account, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockAccountRepo) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFn != nil {
		return m.CountAllFn(ctx)
	}
	return 0, nil
}

func (m *mockAccountRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}

func (m *mockAccountRepo) CountByRole(ctx context.Context) ([]repositories.GroupCount, error) {
	if m.CountByRoleFn != nil {
		return m.CountByRoleFn(ctx)
	}
	return nil, nil
}

func (m *mockAccountRepo) CountLoginsSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountLoginsSinceFn != nil {
		return m.CountLoginsSinceFn(ctx, since)
	}
	return 0, nil
}

type mockMemberRepo struct {
	InsertFn              func(ctx context.Context, member *db_models.Member) error
	UpdateFn              func(ctx context.Context, member *db_models.Member) error
	FindByIDFn            func(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error)
	ListFn                func(ctx context.Context, filter repositories.MemberFilter, page, pageSize int) ([]db_models.Member, int64, error)
	ListAllFn             func(ctx context.Context, filter repositories.MemberFilter) ([]db_models.Member, error)
	SearchFn              func(ctx context.Context, term string, limit int) ([]db_models.Member, error)
	SoftDeleteFn          func(ctx context.Context, id uuid.UUID) error
	SoftDeleteByOwnerFn   func(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountFn               func(ctx context.Context, filter repositories.MemberFilter) (int64, error)
	CountCreatedBetweenFn func(ctx context.Context, filter repositories.MemberFilter, start, end time.Time) (int64, error)
	GroupCountFn          func(ctx context.Context, filter repositories.MemberFilter, column string) ([]repositories.GroupCount, error)
	RecentFn              func(ctx context.Context, filter repositories.MemberFilter, limit int) ([]db_models.Member, error)
}

func (m *mockMemberRepo) Insert(ctx context.Context, member *db_models.Member) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member *db_models.Member) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id, ownerID)
	}
	return nil, nil
}

func (m *mockMemberRepo) List(ctx context.Context, filter repositories.MemberFilter, page, pageSize int) ([]db_models.Member, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockMemberRepo) ListAll(ctx context.Context, filter repositories.MemberFilter) ([]db_models.Member, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockMemberRepo) Search(ctx context.Context, term string, limit int) ([]db_models.Member, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term, limit)
	}
	return nil, nil
}

func (m *mockMemberRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}

func (m *mockMemberRepo) SoftDeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if m.SoftDeleteByOwnerFn != nil {
		return m.SoftDeleteByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockMemberRepo) Count(ctx context.Context, filter repositories.MemberFilter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockMemberRepo) CountCreatedBetween(ctx context.Context, filter repositories.MemberFilter, start, end time.Time) (int64, error) {
	if m.CountCreatedBetweenFn != nil {
		return m.CountCreatedBetweenFn(ctx, filter, start, end)
	}
	return 0, nil
}

func (m *mockMemberRepo) GroupCount(ctx context.Context, filter repositories.MemberFilter, column string) ([]repositories.GroupCount, error) {
	if m.GroupCountFn != nil {
		return m.GroupCountFn(ctx, filter, column)
	}
	return nil, nil
}

func (m *mockMemberRepo) Recent(ctx context.Context, filter repositories.MemberFilter, limit int) ([]db_models.Member, error) {
	if m.RecentFn != nil {
		return m.RecentFn(ctx, filter, limit)
	}
	return nil, nil
}

type mockAuditRepo struct {
	InsertFn        func(ctx context.Context, entry *db_models.AuditLog) error
	ListByAccountFn func(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error)
	ListFilteredFn  func(ctx context.Context, filter repositories.ActivityFilter) ([]db_models.AuditLog, error)
}

func (m *mockAuditRepo) Insert(ctx context.Context, entry *db_models.AuditLog) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error) {
	if m.ListByAccountFn != nil {
		return m.ListByAccountFn(ctx, accountID, limit)
	}
	return nil, nil
}

func (m *mockAuditRepo) ListFiltered(ctx context.Context, filter repositories.ActivityFilter) ([]db_models.AuditLog, error) {
	if m.ListFilteredFn != nil {
		return m.ListFilteredFn(ctx, filter)
	}
	return nil, nil
}

type mockExportRepo struct {
	inserted []db_models.ExportHistory

	InsertFn        func(ctx context.Context, record *db_models.ExportHistory) error
	ListByAccountFn func(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.ExportHistory, error)
}

func (m *mockExportRepo) Insert(ctx context.Context, record *db_models.ExportHistory) error {
	m.inserted = append(m.inserted, *record)
	if m.InsertFn != nil {
		return m.InsertFn(ctx, record)
	}
	return nil
}

func (m *mockExportRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.ExportHistory, error) {
	if m.ListByAccountFn != nil {
		return m.ListByAccountFn(ctx, accountID, limit)
	}
	return nil, nil
}

// recordedAudit is one captured Log call.
type recordedAudit struct {
	AccountID    *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]interface{}
	Meta         RequestMeta
}

type mockAuditService struct {
	entries []recordedAudit

	ByAccountFn func(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error)
}

func (m *mockAuditService) Log(ctx context.Context, accountID *uuid.UUID, action, resourceType, resourceID string, details map[string]interface{}, meta RequestMeta) {
	m.entries = append(m.entries, recordedAudit{
		AccountID:    accountID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		Meta:         meta,
	})
}

func (m *mockAuditService) ByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error) {
	if m.ByAccountFn != nil {
		return m.ByAccountFn(ctx, accountID, limit)
	}
	return nil, nil
}

func (m *mockAuditService) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

type mockMailService struct {
	sentTo     []string
	sentTokens []string
	err        error
}

func (m *mockMailService) SendPasswordResetEmail(to, token string) error {
	m.sentTo = append(m.sentTo, to)
	m.sentTokens = append(m.sentTokens, token)
	return m.err
}
