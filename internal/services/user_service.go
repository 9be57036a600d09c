package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/models/response_models"
	"kusanyiko/internal/repositories"
	"kusanyiko/pkg/utils"
)

const (
	activityLimit      = 50
	tempPasswordLength = 12
)

type UserServiceInterface interface {
	List(ctx context.Context, query request_models.UserListQuery) (*response_models.UserListResponse, error)
	Create(ctx context.Context, requester Requester, request request_models.CreateUserRequest, meta RequestMeta) (*response_models.AccountResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
	Update(ctx context.Context, requester Requester, id uuid.UUID, request request_models.UpdateUserRequest, meta RequestMeta) (*response_models.AccountResponse, error)
	Delete(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) error

	SetStatus(ctx context.Context, requester Requester, id uuid.UUID, status string, meta RequestMeta) error
	SetRole(ctx context.Context, requester Requester, id uuid.UUID, role string, meta RequestMeta) error
	Activity(ctx context.Context, id uuid.UUID) ([]response_models.ActivityResponse, error)
	ResetPassword(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) (string, error)
	UnlockAccount(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) error
	Stats(ctx context.Context) (*response_models.UserStatsResponse, error)
}

type UserService struct {
	accountRepo  repositories.AccountRepository
	memberRepo   repositories.MemberRepository
	auditService AuditServiceInterface
	logger       *zap.Logger
}

func NewUserService(
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	auditService AuditServiceInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		accountRepo:  accountRepo,
		memberRepo:   memberRepo,
		auditService: auditService,
		logger:       logger,
	}
}

func (s *UserService) List(ctx context.Context, query request_models.UserListQuery) (*response_models.UserListResponse, error) {
	if query.Page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	filter := repositories.UserFilter{
		Search: query.Search,
		Role:   query.Role,
		Status: query.Status,
	}

	accounts, total, err := s.accountRepo.List(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	results := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		registered, err := s.memberRepo.Count(ctx, repositories.MemberFilter{CreatedBy: accounts[i].ID})
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		results = append(results, response_models.ToAccountResponse(&accounts[i], registered))
	}

	return &response_models.UserListResponse{Results: results, TotalCount: total}, nil
}

func (s *UserService) Create(ctx context.Context, requester Requester, request request_models.CreateUserRequest, meta RequestMeta) (*response_models.AccountResponse, error) {
	role := request.Role
	if role == "" {
		role = db_models.RoleRegistrant
	}
	if !db_models.IsValidRole(role) {
		return nil, utils.ErrInvalidEnumValue
	}

	status := request.Status
	if status == "" {
		status = db_models.StatusActive
	}
	if !db_models.IsValidStatus(status) {
		return nil, utils.ErrInvalidEnumValue
	}

	if existing, err := s.accountRepo.FindByUsername(ctx, request.Username); err != nil {
		return nil, utils.ErrDatabaseError
	} else if existing != nil {
		return nil, utils.ErrUsernameTaken
	}

	if existing, err := s.accountRepo.FindByEmail(ctx, request.Email); err != nil {
		return nil, utils.ErrDatabaseError
	} else if existing != nil {
		return nil, utils.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	account := &db_models.Account{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Role:         role,
		Status:       status,
		Country:      request.Country,
		Region:       request.Region,
	}

	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionCreate, "user", account.ID.String(),
		map[string]interface{}{"created_user": account.Username}, meta)

	resp := response_models.ToAccountResponse(account, 0)
	return &resp, nil
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	registered, err := s.memberRepo.Count(ctx, repositories.MemberFilter{CreatedBy: account.ID})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.ToAccountResponse(account, registered)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, requester Requester, id uuid.UUID, request request_models.UpdateUserRequest, meta RequestMeta) (*response_models.AccountResponse, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := []string{}
	if request.Email != nil && *request.Email != account.Email {
		if existing, err := s.accountRepo.FindByEmail(ctx, *request.Email); err != nil {
			return nil, utils.ErrDatabaseError
		} else if existing != nil {
			return nil, utils.ErrEmailTaken
		}
		account.Email = *request.Email
		updated = append(updated, "email")
	}
	if request.FirstName != nil {
		account.FirstName = *request.FirstName
		updated = append(updated, "first_name")
	}
	if request.LastName != nil {
		account.LastName = *request.LastName
		updated = append(updated, "last_name")
	}
	if request.Country != nil {
		account.Country = *request.Country
		updated = append(updated, "country")
	}
	if request.Region != nil {
		account.Region = *request.Region
		updated = append(updated, "region")
	}

	if len(updated) > 0 {
		if err := s.accountRepo.Update(ctx, account); err != nil {
			return nil, utils.ErrDatabaseError
		}

		s.auditService.Log(ctx, &requester.AccountID, db_models.ActionUpdate, "user", account.ID.String(),
			map[string]interface{}{"fields_updated": updated}, meta)
	}

	registered, err := s.memberRepo.Count(ctx, repositories.MemberFilter{CreatedBy: account.ID})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.ToAccountResponse(account, registered)
	return &resp, nil
}

// Delete soft-deletes the account's remaining members, audits best-effort,
// then removes the account row. The audit write must never block deletion.
func (s *UserService) Delete(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) error {
	if requester.AccountID == id {
		return utils.ErrSelfDeletion
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	memberCount, err := s.memberRepo.SoftDeleteByOwner(ctx, account.ID)
	if err != nil {
		return utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionDelete, "user", account.ID.String(),
		map[string]interface{}{
			"deleted_user":         account.Username,
			"had_members":          memberCount,
			"members_soft_deleted": memberCount > 0,
		}, meta)

	if err := s.accountRepo.Delete(ctx, account.ID); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (s *UserService) SetStatus(ctx context.Context, requester Requester, id uuid.UUID, status string, meta RequestMeta) error {
	if !db_models.IsValidStatus(status) {
		return utils.ErrInvalidEnumValue
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	oldStatus := account.Status
	account.Status = status
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionUpdate, "user", account.ID.String(),
		map[string]interface{}{"status_changed": map[string]interface{}{"from": oldStatus, "to": status}}, meta)

	return nil
}

func (s *UserService) SetRole(ctx context.Context, requester Requester, id uuid.UUID, role string, meta RequestMeta) error {
	if !db_models.IsValidRole(role) {
		return utils.ErrInvalidEnumValue
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	oldRole := account.Role
	account.Role = role
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionUpdate, "user", account.ID.String(),
		map[string]interface{}{"role_changed": map[string]interface{}{"from": oldRole, "to": role}}, meta)

	return nil
}

func (s *UserService) Activity(ctx context.Context, id uuid.UUID) ([]response_models.ActivityResponse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	logs, err := s.auditService.ByAccount(ctx, id, activityLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return response_models.ToActivityResponses(logs), nil
}

// ResetPassword issues a temporary password and unconditionally unlocks.
func (s *UserService) ResetPassword(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) (string, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}

	tempPassword, err := utils.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	hashedPassword, err := utils.HashPassword(tempPassword)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	account.PasswordHash = hashedPassword
	account.Unlock()

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return "", utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionResetPassword, "user", account.ID.String(),
		map[string]interface{}{"target_user": account.Username, "password_reset": true}, meta)

	return tempPassword, nil
}

func (s *UserService) UnlockAccount(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) error {
	account, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	account.Unlock()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionUnlockAccount, "user", account.ID.String(),
		map[string]interface{}{"target_user": account.Username, "account_unlocked": true}, meta)

	return nil
}

func (s *UserService) Stats(ctx context.Context) (*response_models.UserStatsResponse, error) {
	total, err := s.accountRepo.CountAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	active, err := s.accountRepo.CountByStatus(ctx, db_models.StatusActive)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	inactive, err := s.accountRepo.CountByStatus(ctx, db_models.StatusInactive)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	suspended, err := s.accountRepo.CountByStatus(ctx, db_models.StatusSuspended)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	roleRows, err := s.accountRepo.CountByRole(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recentLogins, err := s.accountRepo.CountLoginsSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.UserStatsResponse{
		TotalUsers:       total,
		ActiveUsers:      active,
		InactiveUsers:    inactive,
		SuspendedUsers:   suspended,
		RoleDistribution: toGroupCountItems(roleRows),
		RecentLoginsWeek: recentLogins,
	}, nil
}

func toGroupCountItems(rows []repositories.GroupCount) []response_models.GroupCountItem {
	out := make([]response_models.GroupCountItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, response_models.GroupCountItem{Value: row.Value, Count: row.Count})
	}
	return out
}
