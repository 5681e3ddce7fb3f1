package domain

// EmergencyContact is a hotline entry shown in the app (towing, police,
// insurance partner). Maintained by the back office.
type EmergencyContact struct {
	Base

	Name   string `gorm:"not null" json:"name"`
	Number string `gorm:"not null" json:"number"`
}

func (EmergencyContact) TableName() string { return "emergency_contacts" }

type FAQ struct {
	Base

	Question string `gorm:"not null" json:"question"`
	Answer   string `gorm:"not null" json:"answer"`
}

func (FAQ) TableName() string { return "faqs" }
