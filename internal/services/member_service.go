package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/models/response_models"
	"kusanyiko/internal/repositories"
	"kusanyiko/pkg/utils"
)

// Requester identifies the authenticated account driving an operation.
type Requester struct {
	AccountID uuid.UUID
	Role      string
}

func (r Requester) isAdmin() bool {
	return r.Role == db_models.RoleAdmin
}

type MemberServiceInterface interface {
	List(ctx context.Context, requester Requester, query request_models.MemberListQuery) (*response_models.MemberListResponse, error)
	Create(ctx context.Context, requester Requester, request request_models.MemberRequest, meta RequestMeta) (*response_models.MemberResponse, error)
	Get(ctx context.Context, requester Requester, id uuid.UUID) (*response_models.MemberResponse, error)
	Update(ctx context.Context, requester Requester, id uuid.UUID, request request_models.MemberRequest, meta RequestMeta) (*response_models.MemberResponse, error)
	SoftDelete(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) error
	PublicSearch(ctx context.Context, term string) ([]response_models.PublicMemberResponse, error)
}

type MemberService struct {
	memberRepo   repositories.MemberRepository
	auditService AuditServiceInterface
	logger       *zap.Logger
}

func NewMemberService(memberRepo repositories.MemberRepository, auditService AuditServiceInterface, logger *zap.Logger) MemberServiceInterface {
	return &MemberService{
		memberRepo:   memberRepo,
		auditService: auditService,
		logger:       logger,
	}
}

// scopeFilter forces registrants onto their own records; admins may filter by
// any owner.
func scopeFilter(requester Requester, createdBy string) (uuid.UUID, error) {
	if requester.Role == db_models.RoleRegistrant {
		return requester.AccountID, nil
	}
	if createdBy == "" {
		return uuid.Nil, nil
	}
	owner, err := uuid.Parse(createdBy)
	if err != nil {
		// Unparseable owner filters are ignored, matching list semantics for
		// unrecognized parameters.
		return uuid.Nil, nil
	}
	return owner, nil
}

func (s *MemberService) List(ctx context.Context, requester Requester, query request_models.MemberListQuery) (*response_models.MemberListResponse, error) {
	if query.Page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	owner, err := scopeFilter(requester, query.CreatedBy)
	if err != nil {
		return nil, err
	}

	filter := repositories.MemberFilter{
		CreatedBy: owner,
		Search:    query.Search,
		Gender:    query.Gender,
		Region:    query.Region,
		Country:   query.Country,
	}
	if query.Saved != "" {
		saved := query.Saved == "true" || query.Saved == "1" || query.Saved == "yes"
		filter.Saved = &saved
	}

	members, total, err := s.memberRepo.List(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.MemberListResponse{
		Results:    response_models.ToMemberResponses(members),
		TotalCount: total,
	}, nil
}

func validateMemberEnums(request request_models.MemberRequest) error {
	if !db_models.IsValidGender(request.Gender) {
		return utils.ErrInvalidEnumValue
	}
	if !db_models.IsValidMaritalStatus(request.MaritalStatus) {
		return utils.ErrInvalidEnumValue
	}
	if !db_models.IsValidOrigin(request.Origin) {
		return utils.ErrInvalidEnumValue
	}
	return nil
}

func (s *MemberService) Create(ctx context.Context, requester Requester, request request_models.MemberRequest, meta RequestMeta) (*response_models.MemberResponse, error) {
	if err := validateMemberEnums(request); err != nil {
		return nil, err
	}

	member := &db_models.Member{
		FirstName:                request.FirstName,
		MiddleName:               request.MiddleName,
		LastName:                 request.LastName,
		Gender:                   request.Gender,
		Age:                      request.Age,
		MaritalStatus:            request.MaritalStatus,
		Saved:                    request.Saved,
		ChurchRegistrationNumber: request.ChurchRegistrationNumber,
		Country:                  request.Country,
		Region:                   request.Region,
		CenterArea:               request.CenterArea,
		Zone:                     request.Zone,
		Cell:                     request.Cell,
		PostalAddress:            request.PostalAddress,
		MobileNo:                 request.MobileNo,
		Email:                    request.Email,
		ChurchPosition:           request.ChurchPosition,
		VisitorsCount:            request.VisitorsCount,
		Origin:                   request.Origin,
		Residence:                request.Residence,
		Career:                   request.Career,
		AttendingDate:            request.AttendingDate,
		PictureURL:               request.PictureURL,
		// Owner always comes from the authenticated requester, never input.
		CreatedByID: requester.AccountID,
	}

	if err := s.memberRepo.Insert(ctx, member); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionCreate, "member", member.ID.String(),
		map[string]interface{}{"name": member.FullName()}, meta)

	resp := response_models.ToMemberResponse(member)
	return &resp, nil
}

// findScoped returns the member visible to the requester; out-of-scope rows
// look like missing rows.
func (s *MemberService) findScoped(ctx context.Context, requester Requester, id uuid.UUID) (*db_models.Member, error) {
	var owner *uuid.UUID
	if requester.Role == db_models.RoleRegistrant {
		owner = &requester.AccountID
	}

	member, err := s.memberRepo.FindByID(ctx, id, owner)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if member == nil {
		return nil, utils.ErrMemberNotFound
	}
	return member, nil
}

func (s *MemberService) Get(ctx context.Context, requester Requester, id uuid.UUID) (*response_models.MemberResponse, error) {
	member, err := s.findScoped(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	resp := response_models.ToMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) Update(ctx context.Context, requester Requester, id uuid.UUID, request request_models.MemberRequest, meta RequestMeta) (*response_models.MemberResponse, error) {
	if err := validateMemberEnums(request); err != nil {
		return nil, err
	}

	member, err := s.findScoped(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	member.FirstName = request.FirstName
	member.MiddleName = request.MiddleName
	member.LastName = request.LastName
	member.Gender = request.Gender
	member.Age = request.Age
	member.MaritalStatus = request.MaritalStatus
	member.Saved = request.Saved
	member.ChurchRegistrationNumber = request.ChurchRegistrationNumber
	member.Country = request.Country
	member.Region = request.Region
	member.CenterArea = request.CenterArea
	member.Zone = request.Zone
	member.Cell = request.Cell
	member.PostalAddress = request.PostalAddress
	member.MobileNo = request.MobileNo
	member.Email = request.Email
	member.ChurchPosition = request.ChurchPosition
	member.VisitorsCount = request.VisitorsCount
	member.Origin = request.Origin
	member.Residence = request.Residence
	member.Career = request.Career
	member.AttendingDate = request.AttendingDate
	member.PictureURL = request.PictureURL

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionUpdate, "member", member.ID.String(),
		map[string]interface{}{"name": member.FullName()}, meta)

	resp := response_models.ToMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) SoftDelete(ctx context.Context, requester Requester, id uuid.UUID, meta RequestMeta) error {
	member, err := s.findScoped(ctx, requester, id)
	if err != nil {
		return err
	}

	if err := s.memberRepo.SoftDelete(ctx, member.ID); err != nil {
		return utils.ErrDatabaseError
	}

	s.auditService.Log(ctx, &requester.AccountID, db_models.ActionDelete, "member", member.ID.String(),
		map[string]interface{}{"name": member.FullName(), "soft_delete": true}, meta)

	return nil
}

// PublicSearch serves the unauthenticated endpoint: an empty term returns an
// empty set without touching the store, and results are hard-capped.
func (s *MemberService) PublicSearch(ctx context.Context, term string) ([]response_models.PublicMemberResponse, error) {
	if term == "" {
		return []response_models.PublicMemberResponse{}, nil
	}

	members, err := s.memberRepo.Search(ctx, term, repositories.PublicSearchLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return response_models.ToPublicMemberResponses(members), nil
}
