package request_models

type MemberRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	MiddleName    string `json:"middle_name"`
	LastName      string `json:"last_name" binding:"required"`
	Gender        string `json:"gender" binding:"required"`
	Age           int    `json:"age" binding:"required,gt=0"`
	MaritalStatus string `json:"marital_status" binding:"required"`
	Saved         bool   `json:"saved"`

	ChurchRegistrationNumber string `json:"church_registration_number"`
	Country                  string `json:"country" binding:"required"`
	Region                   string `json:"region"`
	CenterArea               string `json:"center_area"`
	Zone                     string `json:"zone" binding:"required"`
	Cell                     string `json:"cell" binding:"required"`
	PostalAddress            string `json:"postal_address"`
	MobileNo                 string `json:"mobile_no" binding:"required"`
	Email                    string `json:"email"`
	ChurchPosition           string `json:"church_position"`
	VisitorsCount            int    `json:"visitors_count"`
	Origin                   string `json:"origin" binding:"required"`
	Residence                string `json:"residence" binding:"required"`
	Career                   string `json:"career"`
	AttendingDate            string `json:"attending_date" binding:"required"`
	PictureURL               string `json:"picture"`
}

// MemberListQuery carries the supported list filters; unrecognized query
// parameters are simply not bound.
type MemberListQuery struct {
	Search    string `form:"search"`
	Gender    string `form:"gender"`
	Region    string `form:"region"`
	Country   string `form:"country"`
	Saved     string `form:"saved"`
	CreatedBy string `form:"created_by"`
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=20"`
}
