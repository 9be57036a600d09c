package db_models

import "github.com/google/uuid"

const (
	GenderMale   = "male"
	GenderFemale = "female"

	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"

	OriginInvited = "invited"
	OriginEfatha  = "efatha"
)

func IsValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}

func IsValidMaritalStatus(status string) bool {
	switch status {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

func IsValidOrigin(origin string) bool {
	return origin == OriginInvited || origin == OriginEfatha
}

type Member struct {
	BaseModel
	FirstName     string
	MiddleName    string
	LastName      string
	Gender        string
	Age           int
	MaritalStatus string
	// Saved means "ameokoka"
	Saved bool

	ChurchRegistrationNumber string
	Country                  string
	Region                   string
	CenterArea               string
	Zone                     string
	Cell                     string
	PostalAddress            string
	MobileNo                 string
	Email                    string
	ChurchPosition           string
	VisitorsCount            int
	Origin                   string
	Residence                string
	Career                   string
	AttendingDate            string
	PictureURL               string

	// Weak reference: no FK constraint, so soft-deleted members survive the
	// removal of the account that registered them.
	CreatedByID uuid.UUID `gorm:"type:uuid;index"`

	// Soft delete flag; deleted rows stay for audit/history.
	IsDeleted bool `gorm:"index"`
}

func (m *Member) FullName() string {
	if m.MiddleName != "" {
		return m.FirstName + " " + m.MiddleName + " " + m.LastName
	}
	return m.FirstName + " " + m.LastName
}
