package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/models/request_models"
	"kusanyiko/internal/models/response_models"
	"kusanyiko/internal/repositories"
	"kusanyiko/pkg/utils"
)

const exportHistoryLimit = 20

// ExportResult is a fully rendered export ready to stream to the client.
//
// The excel and pdf formats are textual approximations relabeled with the
// spreadsheet/PDF MIME types; callers must not expect genuine binaries.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ExportServiceInterface interface {
	ExportMembers(ctx context.Context, requester Requester, request request_models.ExportMembersRequest) (*ExportResult, error)
	ExportAnalytics(ctx context.Context, requester Requester, request request_models.ExportAnalyticsRequest) (*ExportResult, error)
	ExportUserActivity(ctx context.Context, requester Requester, request request_models.ExportUserActivityRequest) (*ExportResult, error)
	ExportFinancial(ctx context.Context, requester Requester, request request_models.ExportFinancialRequest) (*ExportResult, error)

	// QuickExportMembers serves the members app's own CSV download with the
	// full column set.
	QuickExportMembers(ctx context.Context, requester Requester) (*ExportResult, error)

	History(ctx context.Context, requester Requester) ([]response_models.ExportHistoryResponse, error)
}

type ExportService struct {
	memberRepo  repositories.MemberRepository
	accountRepo repositories.AccountRepository
	auditRepo   repositories.AuditRepository
	exportRepo  repositories.ExportRepository
	logger      *zap.Logger
}

func NewExportService(
	memberRepo repositories.MemberRepository,
	accountRepo repositories.AccountRepository,
	auditRepo repositories.AuditRepository,
	exportRepo repositories.ExportRepository,
	logger *zap.Logger,
) ExportServiceInterface {
	return &ExportService{
		memberRepo:  memberRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		exportRepo:  exportRepo,
		logger:      logger,
	}
}

func exportFilename(prefix, extension string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), extension)
}

func contentTypeFor(format string) (contentType, extension string) {
	switch format {
	case db_models.ExportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	case db_models.ExportFormatPDF:
		return "application/pdf", "pdf"
	default:
		return "text/csv", "csv"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatTimestamp(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02 15:04:05")
}

// record captures export metadata best-effort; a failed insert never fails
// the export itself.
func (s *ExportService) record(ctx context.Context, requester Requester, exportType, format string, size int, filters map[string]interface{}) {
	if filters == nil {
		filters = map[string]interface{}{}
	}

	entry := &db_models.ExportHistory{
		ExportType:     exportType,
		Format:         format,
		CreatedByID:    requester.AccountID,
		FileSize:       fmt.Sprintf("%.1f KB", float64(size)/1024),
		FiltersApplied: filters,
	}

	if err := s.exportRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("export history write failed",
			zap.String("export_type", exportType),
			zap.String("format", format),
			zap.Error(err))
	}
}

func (s *ExportService) membersForExport(ctx context.Context, requester Requester, filters request_models.MemberExportFilters) ([]db_models.Member, error) {
	filter := repositories.MemberFilter{
		Gender: filters.Gender,
		Region: filters.Region,
	}

	if requester.isAdmin() {
		if filters.CreatedBy != "" {
			owner, err := uuid.Parse(filters.CreatedBy)
			if err == nil {
				filter.CreatedBy = owner
			}
		}
	} else {
		filter.CreatedBy = requester.AccountID
	}

	if filters.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			filter.DateFrom = &t
		}
	}
	if filters.DateTo != "" {
		if t, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			filter.DateTo = &t
		}
	}

	return s.memberRepo.ListAll(ctx, filter)
}

var memberExportHeader = []string{
	"First Name", "Last Name", "Email", "Phone", "Country", "Region",
	"Gender", "Marital Status", "Saved", "Date Registered", "Registered By",
}

func (s *ExportService) ownerUsernames(ctx context.Context, members []db_models.Member) map[uuid.UUID]string {
	owners := map[uuid.UUID]string{}
	for _, m := range members {
		if m.CreatedByID == uuid.Nil {
			continue
		}
		if _, seen := owners[m.CreatedByID]; seen {
			continue
		}
		account, err := s.accountRepo.FindByID(ctx, m.CreatedByID)
		if err == nil && account != nil {
			owners[m.CreatedByID] = account.Username
		}
	}
	return owners
}

func writeMemberRows(members []db_models.Member, owners map[uuid.UUID]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(memberExportHeader); err != nil {
		return nil, err
	}
	for _, m := range members {
		registeredBy := "N/A"
		if name, ok := owners[m.CreatedByID]; ok {
			registeredBy = name
		}
		row := []string{
			m.FirstName,
			m.LastName,
			m.Email,
			m.MobileNo,
			m.Country,
			m.Region,
			m.Gender,
			m.MaritalStatus,
			yesNo(m.Saved),
			formatTimestamp(m.CreatedAt),
			registeredBy,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func writeMemberText(members []db_models.Member) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MEMBERS REPORT\n")
	fmt.Fprintf(&buf, "==================================================\n\n")
	fmt.Fprintf(&buf, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Total Members: %d\n\n", len(members))
	for _, m := range members {
		fmt.Fprintf(&buf, "%s | %s | %s | %s | %s\n",
			m.FullName(), m.Gender, m.Country, m.Region, m.MobileNo)
	}
	return buf.Bytes()
}

func (s *ExportService) ExportMembers(ctx context.Context, requester Requester, request request_models.ExportMembersRequest) (*ExportResult, error) {
	format := request.Format
	if format == "" {
		format = db_models.ExportFormatCSV
	}
	if !db_models.IsValidExportFormat(format) {
		return nil, utils.ErrUnsupportedFormat
	}

	members, err := s.membersForExport(ctx, requester, request.Filters)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var content []byte
	if format == db_models.ExportFormatPDF {
		content = writeMemberText(members)
	} else {
		content, err = writeMemberRows(members, s.ownerUsernames(ctx, members))
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	contentType, extension := contentTypeFor(format)
	result := &ExportResult{
		Content:     content,
		ContentType: contentType,
		Filename:    exportFilename("members", extension),
	}

	s.record(ctx, requester, db_models.ExportTypeMembers, format, len(content), map[string]interface{}{
		"created_by": request.Filters.CreatedBy,
		"region":     request.Filters.Region,
		"gender":     request.Filters.Gender,
		"date_from":  request.Filters.DateFrom,
		"date_to":    request.Filters.DateTo,
	})

	return result, nil
}

func (s *ExportService) analyticsRows(ctx context.Context, request request_models.ExportAnalyticsRequest) ([][]string, error) {
	filter := repositories.MemberFilter{}

	total, err := s.memberRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Members", strconv.FormatInt(total, 10)},
	}

	appendGroup := func(label, column string, f repositories.MemberFilter) error {
		stats, err := s.memberRepo.GroupCount(ctx, f, column)
		if err != nil {
			return err
		}
		for _, stat := range stats {
			rows = append(rows, []string{label + ": " + stat.Value, strconv.FormatInt(stat.Count, 10)})
		}
		return nil
	}

	switch request.Type {
	case "demographics":
		if err := appendGroup("Gender", "gender", filter); err != nil {
			return nil, err
		}
		if err := appendGroup("Marital Status", "marital_status", filter); err != nil {
			return nil, err
		}
		if err := appendGroup("Saved", "saved", filter); err != nil {
			return nil, err
		}
	case "geographical":
		if err := appendGroup("Country", "country", filter); err != nil {
			return nil, err
		}
		if request.Country != "" {
			if err := appendGroup("Region", "region", repositories.MemberFilter{Country: request.Country}); err != nil {
				return nil, err
			}
		}
		if request.Region != "" {
			if err := appendGroup("Area", "center_area", repositories.MemberFilter{Region: request.Region}); err != nil {
				return nil, err
			}
		}
	default: // summary / overview
		if err := appendGroup("Gender", "gender", filter); err != nil {
			return nil, err
		}
		if err := appendGroup("Saved", "saved", filter); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

func (s *ExportService) ExportAnalytics(ctx context.Context, requester Requester, request request_models.ExportAnalyticsRequest) (*ExportResult, error) {
	format := request.Format
	if format == "" {
		format = db_models.ExportFormatPDF
	}
	if format != db_models.ExportFormatPDF && format != db_models.ExportFormatExcel {
		return nil, utils.ErrUnsupportedFormat
	}

	exportType := request.Type
	if exportType == "" {
		exportType = "overview"
	}

	rows, err := s.analyticsRows(ctx, request)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var content []byte
	if format == db_models.ExportFormatPDF {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "ANALYTICS REPORT - %s\n", exportType)
		fmt.Fprintf(&buf, "==================================================\n\n")
		fmt.Fprintf(&buf, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
		for _, row := range rows[1:] {
			fmt.Fprintf(&buf, "%s: %s\n", row[0], row[1])
		}
		content = buf.Bytes()
	} else {
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		if err := writer.WriteAll(rows); err != nil {
			return nil, utils.ErrDatabaseError
		}
		content = buf.Bytes()
	}

	contentType, extension := contentTypeFor(format)
	result := &ExportResult{
		Content:     content,
		ContentType: contentType,
		Filename:    exportFilename("analytics_"+exportType, extension),
	}

	s.record(ctx, requester, db_models.ExportTypeAnalytics, format, len(content), map[string]interface{}{
		"type":    exportType,
		"country": request.Country,
		"region":  request.Region,
	})

	return result, nil
}

func (s *ExportService) ExportUserActivity(ctx context.Context, requester Requester, request request_models.ExportUserActivityRequest) (*ExportResult, error) {
	format := request.Format
	if format == "" {
		format = db_models.ExportFormatCSV
	}
	if format != db_models.ExportFormatCSV && format != db_models.ExportFormatExcel {
		return nil, utils.ErrUnsupportedFormat
	}

	filter := repositories.ActivityFilter{}
	if request.DateRange.StartDate != "" {
		if t, err := time.Parse("2006-01-02", request.DateRange.StartDate); err == nil {
			filter.Start = &t
		}
	}
	if request.DateRange.EndDate != "" {
		if t, err := time.Parse("2006-01-02", request.DateRange.EndDate); err == nil {
			filter.End = &t
		}
	}
	for _, raw := range request.UserIDs {
		if id, err := uuid.Parse(raw); err == nil {
			filter.AccountIDs = append(filter.AccountIDs, id)
		}
	}

	logs, err := s.auditRepo.ListFiltered(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	usernames := map[uuid.UUID]string{}
	for _, entry := range logs {
		if entry.AccountID == nil {
			continue
		}
		if _, seen := usernames[*entry.AccountID]; seen {
			continue
		}
		account, err := s.accountRepo.FindByID(ctx, *entry.AccountID)
		if err == nil && account != nil {
			usernames[*entry.AccountID] = account.Username
		}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"User", "Action", "Resource Type", "Resource ID", "Timestamp", "IP Address"}); err != nil {
		return nil, utils.ErrDatabaseError
	}
	for _, entry := range logs {
		actor := "N/A"
		if entry.AccountID != nil {
			if name, ok := usernames[*entry.AccountID]; ok {
				actor = name
			} else {
				actor = entry.AccountID.String()
			}
		}
		row := []string{
			actor,
			entry.Action,
			entry.ResourceType,
			entry.ResourceID,
			formatTimestamp(entry.CreatedAt),
			entry.IPAddress,
		}
		if err := writer.Write(row); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, utils.ErrDatabaseError
	}
	content := buf.Bytes()

	contentType, extension := contentTypeFor(format)
	result := &ExportResult{
		Content:     content,
		ContentType: contentType,
		Filename:    exportFilename("user_activity", extension),
	}

	s.record(ctx, requester, db_models.ExportTypeUsers, format, len(content), map[string]interface{}{
		"date_range": map[string]interface{}{
			"start_date": request.DateRange.StartDate,
			"end_date":   request.DateRange.EndDate,
		},
		"user_ids": request.UserIDs,
	})

	return result, nil
}

// ExportFinancial is a placeholder stream, retained for frontend parity.
func (s *ExportService) ExportFinancial(ctx context.Context, requester Requester, request request_models.ExportFinancialRequest) (*ExportResult, error) {
	format := request.Format
	if format == "" {
		format = db_models.ExportFormatExcel
	}
	if !db_models.IsValidExportFormat(format) {
		return nil, utils.ErrUnsupportedFormat
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	rows := [][]string{
		{"Date", "Type", "Amount", "Member", "Description"},
		{time.Now().Format("2006-01-02"), "Tithe", "100.00", "Sample Member", "Monthly tithe"},
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, utils.ErrDatabaseError
	}
	content := buf.Bytes()

	result := &ExportResult{
		Content:     content,
		ContentType: "text/csv",
		Filename:    exportFilename("financial", "csv"),
	}

	s.record(ctx, requester, db_models.ExportTypeFinancial, format, len(content), map[string]interface{}{
		"date_range": map[string]interface{}{
			"start_date": request.DateRange.StartDate,
			"end_date":   request.DateRange.EndDate,
		},
	})

	return result, nil
}

var quickExportHeader = []string{
	"First Name", "Middle Name", "Last Name", "Gender", "Age",
	"Marital Status", "Saved", "Church Registration Number",
	"Country", "Region", "Center/Area", "Zone", "Cell",
	"Mobile Number", "Email", "Postal Address",
	"Church Position", "Visitors Count", "Origin",
	"Residence", "Career", "Attending Date", "Created Date",
}

func (s *ExportService) QuickExportMembers(ctx context.Context, requester Requester) (*ExportResult, error) {
	filter := repositories.MemberFilter{}
	if !requester.isAdmin() {
		filter.CreatedBy = requester.AccountID
	}

	members, err := s.memberRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(quickExportHeader); err != nil {
		return nil, utils.ErrDatabaseError
	}
	for _, m := range members {
		row := []string{
			m.FirstName,
			m.MiddleName,
			m.LastName,
			m.Gender,
			strconv.Itoa(m.Age),
			m.MaritalStatus,
			yesNo(m.Saved),
			m.ChurchRegistrationNumber,
			m.Country,
			m.Region,
			m.CenterArea,
			m.Zone,
			m.Cell,
			m.MobileNo,
			m.Email,
			m.PostalAddress,
			m.ChurchPosition,
			strconv.Itoa(m.VisitorsCount),
			m.Origin,
			m.Residence,
			m.Career,
			m.AttendingDate,
			formatTimestamp(m.CreatedAt),
		}
		if err := writer.Write(row); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &ExportResult{
		Content:     buf.Bytes(),
		ContentType: "text/csv",
		Filename:    "members_export.csv",
	}, nil
}

func (s *ExportService) History(ctx context.Context, requester Requester) ([]response_models.ExportHistoryResponse, error) {
	records, err := s.exportRepo.ListByAccount(ctx, requester.AccountID, exportHistoryLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return response_models.ToExportHistoryResponses(records), nil
}
