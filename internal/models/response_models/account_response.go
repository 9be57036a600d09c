package response_models

import (
	"kusanyiko/internal/models/db_models"
)

type AccountResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Role              string `json:"role"`
	Status            string `json:"status"`
	Country           string `json:"country"`
	Region            string `json:"region"`
	CreatedAt         int64  `json:"date_joined"`
	LastLoginAt       *int64 `json:"last_login"`
	Locked            bool   `json:"locked"`
	MembersRegistered int64  `json:"members_registered"`
}

func ToAccountResponse(a *db_models.Account, membersRegistered int64) AccountResponse {
	resp := AccountResponse{
		ID:                a.ID.String(),
		Username:          a.Username,
		Email:             a.Email,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		Role:              a.Role,
		Status:            a.Status,
		Country:           a.Country,
		Region:            a.Region,
		CreatedAt:         a.CreatedAt,
		Locked:            a.IsLocked(),
		MembersRegistered: membersRegistered,
	}
	if a.LastLoginAt != nil {
		ts := a.LastLoginAt.Unix()
		resp.LastLoginAt = &ts
	}
	return resp
}

type TokenPairResponse struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    AccountResponse `json:"user"`
}

type UserListResponse struct {
	Results    []AccountResponse `json:"results"`
	TotalCount int64             `json:"total_count"`
}

type UserStatsResponse struct {
	TotalUsers       int64            `json:"total_users"`
	ActiveUsers      int64            `json:"active_users"`
	InactiveUsers    int64            `json:"inactive_users"`
	SuspendedUsers   int64            `json:"suspended_users"`
	RoleDistribution []GroupCountItem `json:"role_distribution"`
	RecentLoginsWeek int64            `json:"recent_logins_week"`
}
