package response_models

import (
	"kusanyiko/internal/models/db_models"
)

type MemberResponse struct {
	ID                       string `json:"id"`
	FirstName                string `json:"first_name"`
	MiddleName               string `json:"middle_name"`
	LastName                 string `json:"last_name"`
	Gender                   string `json:"gender"`
	Age                      int    `json:"age"`
	MaritalStatus            string `json:"marital_status"`
	Saved                    bool   `json:"saved"`
	ChurchRegistrationNumber string `json:"church_registration_number"`
	Country                  string `json:"country"`
	Region                   string `json:"region"`
	CenterArea               string `json:"center_area"`
	Zone                     string `json:"zone"`
	Cell                     string `json:"cell"`
	PostalAddress            string `json:"postal_address"`
	MobileNo                 string `json:"mobile_no"`
	Email                    string `json:"email"`
	ChurchPosition           string `json:"church_position"`
	VisitorsCount            int    `json:"visitors_count"`
	Origin                   string `json:"origin"`
	Residence                string `json:"residence"`
	Career                   string `json:"career"`
	AttendingDate            string `json:"attending_date"`
	PictureURL               string `json:"picture"`
	CreatedBy                string `json:"created_by"`
	CreatedAt                int64  `json:"created_at"`
	UpdatedAt                int64  `json:"updated_at"`
}

func ToMemberResponse(m *db_models.Member) MemberResponse {
	return MemberResponse{
		ID:                       m.ID.String(),
		FirstName:                m.FirstName,
		MiddleName:               m.MiddleName,
		LastName:                 m.LastName,
		Gender:                   m.Gender,
		Age:                      m.Age,
		MaritalStatus:            m.MaritalStatus,
		Saved:                    m.Saved,
		ChurchRegistrationNumber: m.ChurchRegistrationNumber,
		Country:                  m.Country,
		Region:                   m.Region,
		CenterArea:               m.CenterArea,
		Zone:                     m.Zone,
		Cell:                     m.Cell,
		PostalAddress:            m.PostalAddress,
		MobileNo:                 m.MobileNo,
		Email:                    m.Email,
		ChurchPosition:           m.ChurchPosition,
		VisitorsCount:            m.VisitorsCount,
		Origin:                   m.Origin,
		Residence:                m.Residence,
		Career:                   m.Career,
		AttendingDate:            m.AttendingDate,
		PictureURL:               m.PictureURL,
		CreatedBy:                m.CreatedByID.String(),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func ToMemberResponses(members []db_models.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, ToMemberResponse(&members[i]))
	}
	return out
}

type MemberListResponse struct {
	Results    []MemberResponse `json:"results"`
	TotalCount int64            `json:"total_count"`
}

// PublicMemberResponse exposes only fields safe for unauthenticated search.
type PublicMemberResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Gender     string `json:"gender"`
	Country    string `json:"country"`
	Region     string `json:"region"`
	Zone       string `json:"zone"`
	Cell       string `json:"cell"`
}

func ToPublicMemberResponses(members []db_models.Member) []PublicMemberResponse {
	out := make([]PublicMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, PublicMemberResponse{
			ID:         m.ID.String(),
			FirstName:  m.FirstName,
			MiddleName: m.MiddleName,
			LastName:   m.LastName,
			Gender:     m.Gender,
			Country:    m.Country,
			Region:     m.Region,
			Zone:       m.Zone,
			Cell:       m.Cell,
		})
	}
	return out
}
