package services

import (
	"context"
	"fmt"
	"time"

	"kusanyiko/internal/models/response_models"
	"kusanyiko/internal/repositories"
	"kusanyiko/pkg/utils"
)

type StatsServiceInterface interface {
	AdminStats(ctx context.Context) (*response_models.AdminStatsResponse, error)
	RegistrantStats(ctx context.Context, requester Requester) (*response_models.RegistrantStatsResponse, error)
}

type StatsService struct {
	memberRepo repositories.MemberRepository
}

func NewStatsService(memberRepo repositories.MemberRepository) StatsServiceInterface {
	return &StatsService{memberRepo: memberRepo}
}

// weeklyCounts builds the trailing per-week growth series, oldest first.
func (s *StatsService) weeklyCounts(ctx context.Context, filter repositories.MemberFilter, weeks int) ([]response_models.WeeklyCount, error) {
	now := time.Now()
	out := make([]response_models.WeeklyCount, 0, weeks)
	for i := weeks; i >= 1; i-- {
		start := now.AddDate(0, 0, -7*i)
		end := now.AddDate(0, 0, -7*(i-1))
		count, err := s.memberRepo.CountCreatedBetween(ctx, filter, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, response_models.WeeklyCount{
			Week:  fmt.Sprintf("Week %d", weeks-i+1),
			Count: count,
		})
	}
	return out, nil
}

func (s *StatsService) groupItems(ctx context.Context, filter repositories.MemberFilter, column string) ([]response_models.GroupCountItem, error) {
	rows, err := s.memberRepo.GroupCount(ctx, filter, column)
	if err != nil {
		return nil, err
	}
	return toGroupCountItems(rows), nil
}

func (s *StatsService) AdminStats(ctx context.Context) (*response_models.AdminStatsResponse, error) {
	filter := repositories.MemberFilter{}

	total, err := s.memberRepo.Count(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	countryStats, err := s.groupItems(ctx, filter, "country")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	regionStats, err := s.groupItems(ctx, filter, "region")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	genderStats, err := s.groupItems(ctx, filter, "gender")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	maritalStats, err := s.groupItems(ctx, filter, "marital_status")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	savedStats, err := s.groupItems(ctx, filter, "saved")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recent, err := s.memberRepo.CountCreatedBetween(ctx, filter, time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	weekly, err := s.weeklyCounts(ctx, filter, 8)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AdminStatsResponse{
		TotalMembers:        total,
		CountryStats:        countryStats,
		RegionStats:         regionStats,
		GenderStats:         genderStats,
		MaritalStats:        maritalStats,
		SavedStats:          savedStats,
		RecentRegistrations: recent,
		WeeklyGrowth:        weekly,
	}, nil
}

func (s *StatsService) RegistrantStats(ctx context.Context, requester Requester) (*response_models.RegistrantStatsResponse, error) {
	filter := repositories.MemberFilter{CreatedBy: requester.AccountID}

	total, err := s.memberRepo.Count(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	genderStats, err := s.groupItems(ctx, filter, "gender")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	regionStats, err := s.groupItems(ctx, filter, "region")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	savedStats, err := s.groupItems(ctx, filter, "saved")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recent, err := s.memberRepo.CountCreatedBetween(ctx, filter, time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	weekly, err := s.weeklyCounts(ctx, filter, 4)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recentMembers, err := s.memberRepo.Recent(ctx, filter, 5)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recentActivity := make([]response_models.RecentMember, 0, len(recentMembers))
	for _, m := range recentMembers {
		recentActivity = append(recentActivity, response_models.RecentMember{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			CreatedAt: m.CreatedAt,
		})
	}

	return &response_models.RegistrantStatsResponse{
		TotalRegistered:     total,
		GenderStats:         genderStats,
		RegionStats:         regionStats,
		SavedStats:          savedStats,
		RecentRegistrations: recent,
		WeeklyPerformance:   weekly,
		RecentActivity:      recentActivity,
	}, nil
}
