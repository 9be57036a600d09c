package db_models

import "github.com/google/uuid"

const (
	ExportTypeMembers   = "members"
	ExportTypeAnalytics = "analytics"
	ExportTypeUsers     = "users"
	ExportTypeFinancial = "financial"

	ExportFormatCSV   = "csv"
	ExportFormatExcel = "excel"
	ExportFormatPDF   = "pdf"
)

func IsValidExportFormat(format string) bool {
	switch format {
	case ExportFormatCSV, ExportFormatExcel, ExportFormatPDF:
		return true
	}
	return false
}

type ExportHistory struct {
	BaseModel
	ExportType     string `gorm:"index"`
	Format         string
	CreatedByID    uuid.UUID `gorm:"type:uuid;index"`
	FileSize       string
	DownloadCount  int
	FiltersApplied JSONMap
}
