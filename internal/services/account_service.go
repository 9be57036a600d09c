package services

import (
	"context"
	"strings"
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
	maxFailedLogins = 5
	lockoutDuration = 30 * time.Minute
	resetTokenTTL   = time.Hour
)

type AccountServiceInterface interface {
	Signup(ctx context.Context, request request_models.SignUpRequest, meta RequestMeta) (*response_models.TokenPairResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest, meta RequestMeta) (*response_models.TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string, meta RequestMeta) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest, meta RequestMeta) error

	GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, request request_models.UpdateProfileRequest, meta RequestMeta) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo  repositories.AccountRepository
	memberRepo   repositories.MemberRepository
	auditService AuditServiceInterface
	mailService  IMailService
	logger       *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	auditService AuditServiceInterface,
	mailService IMailService,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:  accountRepo,
		memberRepo:   memberRepo,
		auditService: auditService,
		mailService:  mailService,
		logger:       logger,
	}
}

func (s *AccountService) Signup(ctx context.Context, request request_models.SignUpRequest, meta RequestMeta) (*response_models.TokenPairResponse, error) {
	if request.Password != request.ConfirmPassword {
		return nil, utils.ErrValidation
	}

	role := request.Role
	if role == "" {
		role = db_models.RoleAdmin
	}
	if !db_models.IsValidRole(role) {
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
		Status:       db_models.StatusActive,
		Country:      request.Country,
		Region:       request.Region,
	}

	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &account.ID, db_models.ActionCreate, "user", account.ID.String(),
		map[string]interface{}{"username": account.Username, "email": account.Email}, meta)

	// Signup logs the new account straight in.
	pair, err := s.issueTokens(account, false)
	if err != nil {
		return nil, err
	}

	s.auditService.Log(ctx, &account.ID, db_models.ActionAutoLogin, "user", account.ID.String(),
		map[string]interface{}{"username": account.Username, "after_signup": true}, meta)

	return pair, nil
}

func (s *AccountService) Login(ctx context.Context, request request_models.LoginRequest, meta RequestMeta) (*response_models.TokenPairResponse, error) {
	account, err := s.authenticate(ctx, request.Username, request.Password, meta)
	if err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(account, request.RememberMe)
	if err != nil {
		return nil, err
	}

	s.auditService.Log(ctx, &account.ID, db_models.ActionLogin, "user", account.ID.String(),
		map[string]interface{}{"username": account.Username, "remember_me": request.RememberMe}, meta)

	return pair, nil
}

// authenticate resolves the identifier (username or email), enforces the
// lockout window before any password check, and maintains the failure
// counter.
func (s *AccountService) authenticate(ctx context.Context, identifier, password string, meta RequestMeta) (*db_models.Account, error) {
	var account *db_models.Account
	var err error
	if strings.Contains(identifier, "@") {
		account, err = s.accountRepo.FindByEmail(ctx, identifier)
	} else {
		account, err = s.accountRepo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if account == nil {
		s.auditService.Log(ctx, nil, db_models.ActionFailedLogin, "user", "",
			map[string]interface{}{"reason": "user_not_found", "username": identifier}, meta)
		return nil, utils.ErrInvalidCredentials
	}

	if account.IsLocked() {
		s.auditService.Log(ctx, &account.ID, db_models.ActionFailedLogin, "user", account.ID.String(),
			map[string]interface{}{"reason": "account_locked", "username": identifier}, meta)
		return nil, utils.ErrAccountLocked
	}

	if err := utils.ComparePasswords(account.PasswordHash, password); err != nil {
		account.FailedLoginAttempts++
		if account.FailedLoginAttempts >= maxFailedLogins {
			account.Lock(lockoutDuration)
		}
		if err := s.accountRepo.Update(ctx, account); err != nil {
			s.logger.Error("failed to persist login attempt counter", zap.Error(err))
		}

		s.auditService.Log(ctx, &account.ID, db_models.ActionFailedLogin, "user", account.ID.String(),
			map[string]interface{}{
				"reason":   "invalid_credentials",
				"username": identifier,
				"attempts": account.FailedLoginAttempts,
			}, meta)
		return nil, utils.ErrInvalidCredentials
	}

	account.FailedLoginAttempts = 0
	account.LastLoginIP = meta.IPAddress
	now := time.Now()
	account.LastLoginAt = &now
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return account, nil
}

func (s *AccountService) issueTokens(account *db_models.Account, rememberMe bool) (*response_models.TokenPairResponse, error) {
	access, err := utils.CreateAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	refresh, err := utils.CreateRefreshToken(account.ID, account.Role, rememberMe)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.TokenPairResponse{
		Access:  access,
		Refresh: refresh,
		User:    response_models.ToAccountResponse(account, 0),
	}, nil
}

func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", utils.ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return "", utils.ErrInvalidToken
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrInvalidToken
	}

	access, err := utils.CreateAccessToken(account.ID, account.Role)
	if err != nil {
		return "", utils.ErrInvalidToken
	}
	return access, nil
}

// ForgotPassword never reveals whether the email exists; callers respond with
// the same generic message either way.
func (s *AccountService) ForgotPassword(ctx context.Context, email string, meta RequestMeta) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return utils.ErrDatabaseError
	}
	expires := time.Now().Add(resetTokenTTL)
	account.ResetToken = token
	account.ResetTokenExpires = &expires

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	if err := s.mailService.SendPasswordResetEmail(account.Email, token); err != nil {
		s.logger.Error("reset mail delivery failed", zap.String("email", email), zap.Error(err))
	}

	s.auditService.Log(ctx, &account.ID, db_models.ActionPasswordReset, "user", account.ID.String(),
		map[string]interface{}{"email": email, "token_generated": true}, meta)

	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest, meta RequestMeta) error {
	if request.NewPassword != request.ConfirmPassword {
		return utils.ErrValidation
	}

	account, err := s.accountRepo.FindByResetToken(ctx, request.Token, time.Now())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrInvalidToken
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account.PasswordHash = hashedPassword
	account.ResetToken = ""
	account.ResetTokenExpires = nil
	account.Unlock()

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &account.ID, db_models.ActionPasswordReset, "user", account.ID.String(),
		map[string]interface{}{"password_changed": true}, meta)

	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	registered, err := s.memberRepo.Count(ctx, repositories.MemberFilter{CreatedBy: account.ID})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.ToAccountResponse(account, registered)
	return &resp, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, accountID uuid.UUID, request request_models.UpdateProfileRequest, meta RequestMeta) (*response_models.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	updated := []string{}
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

		s.auditService.Log(ctx, &account.ID, db_models.ActionUpdate, "user", account.ID.String(),
			map[string]interface{}{"fields_updated": updated}, meta)
	}

	registered, err := s.memberRepo.Count(ctx, repositories.MemberFilter{CreatedBy: account.ID})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.ToAccountResponse(account, registered)
	return &resp, nil
}
