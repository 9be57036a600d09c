package request_models

type MemberExportFilters struct {
	CreatedBy string `json:"created_by"`
	Region    string `json:"region"`
	Gender    string `json:"gender"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

type ExportMembersRequest struct {
	Format  string              `json:"format"`
	Filters MemberExportFilters `json:"filters"`
}

type ExportAnalyticsRequest struct {
	Format  string `json:"format"`
	Type    string `json:"type"`
	Country string `json:"country"`
	Region  string `json:"region"`
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ExportUserActivityRequest struct {
	Format    string    `json:"format"`
	DateRange DateRange `json:"date_range"`
	UserIDs   []string  `json:"user_ids"`
}

type ExportFinancialRequest struct {
	Format    string    `json:"format"`
	DateRange DateRange `json:"date_range"`
}
