package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
)

func TestLogRecordsEntry(t *testing.T) {
	var inserted *db_models.AuditLog
	repo := &mockAuditRepo{
		InsertFn: func(ctx context.Context, entry *db_models.AuditLog) error {
			inserted = entry
			return nil
		},
	}
	svc := NewAuditService(repo, zap.NewNop())

	actor := uuid.New()
	svc.Log(context.Background(), &actor, db_models.ActionLogin, "user", actor.String(),
		map[string]interface{}{"username": "neema"},
		RequestMeta{IPAddress: "203.0.113.9", UserAgent: "test-agent"})

	require.NotNil(t, inserted)
	assert.Equal(t, db_models.ActionLogin, inserted.Action)
	assert.Equal(t, "user", inserted.ResourceType)
	assert.Equal(t, "203.0.113.9", inserted.IPAddress)
	assert.Equal(t, "test-agent", inserted.UserAgent)
	assert.Equal(t, "neema", inserted.Details["username"])
}

func TestLogSwallowsStoreErrors(t *testing.T) {
	repo := &mockAuditRepo{
		InsertFn: func(ctx context.Context, entry *db_models.AuditLog) error {
			return errors.New("connection refused")
		},
	}
	svc := NewAuditService(repo, zap.NewNop())

	// Must not panic or propagate; audited operations never fail on this.
	svc.Log(context.Background(), nil, db_models.ActionLogout, "user", "", nil, RequestMeta{})
}

func TestLogDefaultsNilDetails(t *testing.T) {
	var inserted *db_models.AuditLog
	repo := &mockAuditRepo{
		InsertFn: func(ctx context.Context, entry *db_models.AuditLog) error {
			inserted = entry
			return nil
		},
	}
	svc := NewAuditService(repo, zap.NewNop())

	svc.Log(context.Background(), nil, db_models.ActionLogout, "user", "", nil, RequestMeta{})
	require.NotNil(t, inserted)
	assert.NotNil(t, inserted.Details)
	assert.Empty(t, inserted.Details)
}
