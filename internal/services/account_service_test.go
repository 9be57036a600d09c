package services

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/models/request_models"
	"kusanyiko/pkg/utils"
)

func newAccountService(accountRepo *mockAccountRepo, memberRepo *mockMemberRepo, audit *mockAuditService, mail *mockMailService) AccountServiceInterface {
	return NewAccountService(accountRepo, memberRepo, audit, mail, zap.NewNop())
}

func testAccount(t *testing.T, password string) *db_models.Account {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	account := &db_models.Account{
		Username:     "neema",
		Email:        "neema@example.com",
		PasswordHash: hash,
		Role:         db_models.RoleRegistrant,
		Status:       db_models.StatusActive,
	}
	account.ID = uuid.New()
	return account
}

func repoFor(account *db_models.Account) *mockAccountRepo {
	return &mockAccountRepo{
		FindByUsernameFn: func(ctx context.Context, username string) (*db_models.Account, error) {
			if account != nil && username == account.Username {
				return account, nil
			}
			return nil, nil
		},
		FindByEmailFn: func(ctx context.Context, email string) (*db_models.Account, error) {
			if account != nil && email == account.Email {
				return account, nil
			}
			return nil, nil
		},
	}
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	account := testAccount(t, "correct-horse-battery")
	audit := &mockAuditService{}
	svc := newAccountService(repoFor(account), &mockMemberRepo{}, audit, &mockMailService{})

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), request_models.LoginRequest{
			Username: "neema",
			Password: "wrong",
		}, RequestMeta{IPAddress: "10.0.0.1"})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	}

	assert.Equal(t, 5, account.FailedLoginAttempts)
	require.NotNil(t, account.LockedUntil)
	assert.True(t, account.LockedUntil.After(time.Now()))

	// Even the correct password is refused while the window is open.
	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: "neema",
		Password: "correct-horse-battery",
	}, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrAccountLocked)
}

func TestLoginLockoutCheckedBeforePassword(t *testing.T) {
	account := testAccount(t, "secret-password")
	account.Lock(30 * time.Minute)
	svc := newAccountService(repoFor(account), &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: "neema",
		Password: "secret-password",
	}, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrAccountLocked)
}

func TestLoginSuccessResetsFailureCounter(t *testing.T) {
	account := testAccount(t, "secret-password")
	account.FailedLoginAttempts = 3
	svc := newAccountService(repoFor(account), &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	pair, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: "neema",
		Password: "secret-password",
	}, RequestMeta{IPAddress: "192.0.2.7"})
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, 0, account.FailedLoginAttempts)
	assert.Equal(t, "192.0.2.7", account.LastLoginIP)
	assert.NotNil(t, account.LastLoginAt)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
}

func TestLoginRoutesEmailIdentifiers(t *testing.T) {
	account := testAccount(t, "secret-password")
	usernameLookups, emailLookups := 0, 0
	repo := &mockAccountRepo{
		FindByUsernameFn: func(ctx context.Context, username string) (*db_models.Account, error) {
			usernameLookups++
			return nil, nil
		},
		FindByEmailFn: func(ctx context.Context, email string) (*db_models.Account, error) {
			emailLookups++
			return account, nil
		},
	}
	svc := newAccountService(repo, &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: "neema@example.com",
		Password: "secret-password",
	}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, 0, usernameLookups)
	assert.Equal(t, 1, emailLookups)
}

func TestLoginUnknownAccountAudited(t *testing.T) {
	audit := &mockAuditService{}
	svc := newAccountService(repoFor(nil), &mockMemberRepo{}, audit, &mockMailService{})

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	}, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, db_models.ActionFailedLogin, audit.entries[0].Action)
	assert.Nil(t, audit.entries[0].AccountID)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	mail := &mockMailService{}
	svc := newAccountService(repoFor(nil), &mockMemberRepo{}, &mockAuditService{}, mail)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com", RequestMeta{})
	assert.NoError(t, err)
	assert.Empty(t, mail.sentTo)
}

func TestForgotPasswordIssuesToken(t *testing.T) {
	account := testAccount(t, "secret-password")
	mail := &mockMailService{}
	svc := newAccountService(repoFor(account), &mockMemberRepo{}, &mockAuditService{}, mail)

	err := svc.ForgotPassword(context.Background(), "neema@example.com", RequestMeta{})
	require.NoError(t, err)

	assert.Len(t, account.ResetToken, 32)
	_, err = hex.DecodeString(account.ResetToken)
	assert.NoError(t, err)
	require.NotNil(t, account.ResetTokenExpires)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *account.ResetTokenExpires, time.Minute)

	require.Len(t, mail.sentTo, 1)
	assert.Equal(t, "neema@example.com", mail.sentTo[0])
	assert.Equal(t, account.ResetToken, mail.sentTokens[0])
}

func TestForgotPasswordMailFailureStillSucceeds(t *testing.T) {
	account := testAccount(t, "secret-password")
	mail := &mockMailService{err: assert.AnError}
	svc := newAccountService(repoFor(account), &mockMemberRepo{}, &mockAuditService{}, mail)

	err := svc.ForgotPassword(context.Background(), "neema@example.com", RequestMeta{})
	assert.NoError(t, err)
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	svc := newAccountService(&mockAccountRepo{}, &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	err := svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:           "not-a-real-token",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	}, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestResetPasswordClearsTokenAndLockout(t *testing.T) {
	account := testAccount(t, "old-password")
	account.FailedLoginAttempts = 5
	account.Lock(30 * time.Minute)
	expires := time.Now().Add(time.Hour)
	account.ResetToken = "valid-token"
	account.ResetTokenExpires = &expires

	repo := repoFor(account)
	repo.FindByResetTokenFn = func(ctx context.Context, token string, now time.Time) (*db_models.Account, error) {
		if token == account.ResetToken && account.ResetTokenExpires != nil && account.ResetTokenExpires.After(now) {
			return account, nil
		}
		return nil, nil
	}
	svc := newAccountService(repo, &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	err := svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:           "valid-token",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	}, RequestMeta{})
	require.NoError(t, err)

	assert.Empty(t, account.ResetToken)
	assert.Nil(t, account.ResetTokenExpires)
	assert.Nil(t, account.LockedUntil)
	assert.Equal(t, 0, account.FailedLoginAttempts)
	assert.NoError(t, utils.ComparePasswords(account.PasswordHash, "brand-new-pass"))
}

func TestSignupRejectsPasswordMismatch(t *testing.T) {
	svc := newAccountService(&mockAccountRepo{}, &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	_, err := svc.Signup(context.Background(), request_models.SignUpRequest{
		Username:        "amani",
		Email:           "amani@example.com",
		Password:        "password-one",
		ConfirmPassword: "password-two",
	}, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	account := testAccount(t, "whatever")
	svc := newAccountService(repoFor(account), &mockMemberRepo{}, &mockAuditService{}, &mockMailService{})

	_, err := svc.Signup(context.Background(), request_models.SignUpRequest{
		Username:        "neema",
		Email:           "other@example.com",
		Password:        "password-one",
		ConfirmPassword: "password-one",
	}, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestSignupLogsNewAccountIn(t *testing.T) {
	var inserted *db_models.Account
	repo := &mockAccountRepo{
		InsertFn: func(ctx context.Context, account *db_models.Account) error {
			inserted = account
			return nil
		},
	}
	audit := &mockAuditService{}
	svc := newAccountService(repo, &mockMemberRepo{}, audit, &mockMailService{})

	pair, err := svc.Signup(context.Background(), request_models.SignUpRequest{
		Username:        "amani",
		Email:           "amani@example.com",
		Password:        "password-one",
		ConfirmPassword: "password-one",
	}, RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, pair)

	require.NotNil(t, inserted)
	assert.Equal(t, db_models.RoleAdmin, inserted.Role)
	assert.Equal(t, db_models.StatusActive, inserted.Status)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, []string{db_models.ActionCreate, db_models.ActionAutoLogin}, audit.actions())
}
