package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/repositories"
	"kusanyiko/pkg/utils"
)

func validMemberRequest() request_models.MemberRequest {
	return request_models.MemberRequest{
		FirstName:     "Baraka",
		LastName:      "Mushi",
		Gender:        db_models.GenderMale,
		Age:           34,
		MaritalStatus: db_models.MaritalMarried,
		Saved:         true,
		Country:       "Tanzania",
		Region:        "Kilimanjaro",
		Zone:          "North",
		Cell:          "A3",
		MobileNo:      "+255700000001",
		Origin:        db_models.OriginEfatha,
		Residence:     "Moshi",
		AttendingDate: "2026-08-01",
	}
}

func registrant() Requester {
	return Requester{AccountID: uuid.New(), Role: db_models.RoleRegistrant}
}

func admin() Requester {
	return Requester{AccountID: uuid.New(), Role: db_models.RoleAdmin}
}

func newMemberService(repo *mockMemberRepo, audit *mockAuditService) MemberServiceInterface {
	return NewMemberService(repo, audit, zap.NewNop())
}

func TestListForcesRegistrantScope(t *testing.T) {
	requester := registrant()
	var captured repositories.MemberFilter
	repo := &mockMemberRepo{
		ListFn: func(ctx context.Context, filter repositories.MemberFilter, page, pageSize int) ([]db_models.Member, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	// A registrant asking for someone else's records still only gets their own.
	_, err := svc.List(context.Background(), requester, request_models.MemberListQuery{
		CreatedBy: uuid.New().String(),
		Page:      1,
		PageSize:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, requester.AccountID, captured.CreatedBy)
}

func TestListAdminMayFilterByOwner(t *testing.T) {
	owner := uuid.New()
	var captured repositories.MemberFilter
	repo := &mockMemberRepo{
		ListFn: func(ctx context.Context, filter repositories.MemberFilter, page, pageSize int) ([]db_models.Member, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	_, err := svc.List(context.Background(), admin(), request_models.MemberListQuery{
		CreatedBy: owner.String(),
		Page:      1,
		PageSize:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, owner, captured.CreatedBy)
}

func TestListIgnoresUnparseableOwnerFilter(t *testing.T) {
	var captured repositories.MemberFilter
	repo := &mockMemberRepo{
		ListFn: func(ctx context.Context, filter repositories.MemberFilter, page, pageSize int) ([]db_models.Member, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	_, err := svc.List(context.Background(), admin(), request_models.MemberListQuery{
		CreatedBy: "not-a-uuid",
		Page:      1,
		PageSize:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, captured.CreatedBy)
}

func TestListValidatesPagination(t *testing.T) {
	svc := newMemberService(&mockMemberRepo{}, &mockAuditService{})

	_, err := svc.List(context.Background(), admin(), request_models.MemberListQuery{Page: 0, PageSize: 20})
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = svc.List(context.Background(), admin(), request_models.MemberListQuery{Page: 1, PageSize: 101})
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestCreateOwnerComesFromRequester(t *testing.T) {
	requester := registrant()
	var inserted *db_models.Member
	repo := &mockMemberRepo{
		InsertFn: func(ctx context.Context, member *db_models.Member) error {
			inserted = member
			return nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	_, err := svc.Create(context.Background(), requester, validMemberRequest(), RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, requester.AccountID, inserted.CreatedByID)
}

func TestCreateRejectsUnknownEnums(t *testing.T) {
	svc := newMemberService(&mockMemberRepo{}, &mockAuditService{})

	req := validMemberRequest()
	req.Gender = "other"
	_, err := svc.Create(context.Background(), registrant(), req, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrInvalidEnumValue)

	req = validMemberRequest()
	req.MaritalStatus = "complicated"
	_, err = svc.Create(context.Background(), registrant(), req, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrInvalidEnumValue)

	req = validMemberRequest()
	req.Origin = "walk-in"
	_, err = svc.Create(context.Background(), registrant(), req, RequestMeta{})
	assert.ErrorIs(t, err, utils.ErrInvalidEnumValue)
}

func TestGetScopesRegistrantLookups(t *testing.T) {
	requester := registrant()
	var capturedOwner *uuid.UUID
	repo := &mockMemberRepo{
		FindByIDFn: func(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error) {
			capturedOwner = ownerID
			return nil, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	// A record outside the registrant's scope is indistinguishable from a
	// missing one.
	_, err := svc.Get(context.Background(), requester, uuid.New())
	assert.ErrorIs(t, err, utils.ErrMemberNotFound)
	require.NotNil(t, capturedOwner)
	assert.Equal(t, requester.AccountID, *capturedOwner)
}

func TestGetAdminUnscoped(t *testing.T) {
	member := &db_models.Member{FirstName: "Baraka", LastName: "Mushi"}
	member.ID = uuid.New()
	var capturedOwner *uuid.UUID
	repo := &mockMemberRepo{
		FindByIDFn: func(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error) {
			capturedOwner = ownerID
			return member, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	resp, err := svc.Get(context.Background(), admin(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, capturedOwner)
	assert.Equal(t, "Baraka", resp.FirstName)
}

func TestSoftDeleteAudited(t *testing.T) {
	requester := admin()
	member := &db_models.Member{FirstName: "Baraka", LastName: "Mushi"}
	member.ID = uuid.New()
	deleted := false
	repo := &mockMemberRepo{
		FindByIDFn: func(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*db_models.Member, error) {
			return member, nil
		},
		SoftDeleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	audit := &mockAuditService{}
	svc := newMemberService(repo, audit)

	err := svc.SoftDelete(context.Background(), requester, member.ID, RequestMeta{IPAddress: "10.1.1.1"})
	require.NoError(t, err)
	assert.True(t, deleted)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, db_models.ActionDelete, audit.entries[0].Action)
	assert.Equal(t, "member", audit.entries[0].ResourceType)
	assert.Equal(t, "10.1.1.1", audit.entries[0].Meta.IPAddress)
}

func TestPublicSearchEmptyTermSkipsStore(t *testing.T) {
	called := false
	repo := &mockMemberRepo{
		SearchFn: func(ctx context.Context, term string, limit int) ([]db_models.Member, error) {
			called = true
			return nil, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	results, err := svc.PublicSearch(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestPublicSearchCapsResults(t *testing.T) {
	var capturedLimit int
	repo := &mockMemberRepo{
		SearchFn: func(ctx context.Context, term string, limit int) ([]db_models.Member, error) {
			capturedLimit = limit
			return []db_models.Member{{FirstName: "Baraka"}}, nil
		},
	}
	svc := newMemberService(repo, &mockAuditService{})

	results, err := svc.PublicSearch(context.Background(), "bar")
	require.NoError(t, err)
	assert.Equal(t, repositories.PublicSearchLimit, capturedLimit)
	assert.Len(t, results, 1)
}
