package response_models

import "kusanyiko/internal/models/db_models"

type ActivityResponse struct {
	ID           string            `json:"id"`
	Action       string            `json:"action"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id"`
	Details      db_models.JSONMap `json:"details"`
	IPAddress    string            `json:"ip_address"`
	UserAgent    string            `json:"user_agent"`
	Timestamp    int64             `json:"timestamp"`
}

func ToActivityResponses(logs []db_models.AuditLog) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActivityResponse{
			ID:           l.ID.String(),
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Details:      l.Details,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			Timestamp:    l.CreatedAt,
		})
	}
	return out
}

type ExportHistoryResponse struct {
	ID            string            `json:"id"`
	ExportType    string            `json:"export_type"`
	Format        string            `json:"format"`
	CreatedAt     int64             `json:"created_at"`
	FileSize      string            `json:"file_size"`
	DownloadCount int               `json:"download_count"`
	Filters       db_models.JSONMap `json:"filters_applied"`
}

func ToExportHistoryResponses(items []db_models.ExportHistory) []ExportHistoryResponse {
	out := make([]ExportHistoryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, ExportHistoryResponse{
			ID:            e.ID.String(),
			ExportType:    e.ExportType,
			Format:        e.Format,
			CreatedAt:     e.CreatedAt,
			FileSize:      e.FileSize,
			DownloadCount: e.DownloadCount,
			Filters:       e.FiltersApplied,
		})
	}
	return out
}
