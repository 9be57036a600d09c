package response_models

type GroupCountItem struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type WeeklyCount struct {
	Week  string `json:"week"`
	Count int64  `json:"count"`
}

type AdminStatsResponse struct {
	TotalMembers        int64            `json:"total_members"`
	CountryStats        []GroupCountItem `json:"country_stats"`
	RegionStats         []GroupCountItem `json:"region_stats"`
	GenderStats         []GroupCountItem `json:"gender_stats"`
	MaritalStats        []GroupCountItem `json:"marital_stats"`
	SavedStats          []GroupCountItem `json:"saved_stats"`
	RecentRegistrations int64            `json:"recent_registrations"`
	WeeklyGrowth        []WeeklyCount    `json:"weekly_growth"`
}

type RecentMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt int64  `json:"created_at"`
}

type RegistrantStatsResponse struct {
	TotalRegistered     int64            `json:"total_registered"`
	GenderStats         []GroupCountItem `json:"gender_stats"`
	RegionStats         []GroupCountItem `json:"region_stats"`
	SavedStats          []GroupCountItem `json:"saved_stats"`
	RecentRegistrations int64            `json:"recent_registrations"`
	WeeklyPerformance   []WeeklyCount    `json:"weekly_performance"`
	RecentActivity      []RecentMember   `json:"recent_activity"`
}
