package domain

type IncidentType string

const (
	IncidentAssistance IncidentType = "assistance"
	IncidentAccident   IncidentType = "accident"
)

type AssistanceStatus string

const (
	AssistancePending    AssistanceStatus = "pending"
	AssistanceInProgress AssistanceStatus = "in_progress"
	AssistanceResolved   AssistanceStatus = "resolved"
)

// Assistance is a roadside incident reported from the mobile app: a GPS
// position plus free-text context, optionally with photos for accident
// declarations.
type Assistance struct {
	Base

	UserID            int64            `gorm:"index;not null" json:"user_id"`
	User              User             `gorm:"foreignKey:UserID" json:"-"`
	GpsLatitude       string           `json:"gps_latitude"`
	GpsLongitude      string           `json:"gps_longitude"`
	AddressComplement string           `json:"address_complement"`
	Comment           string           `json:"comment"`
	IncidentType      IncidentType     `gorm:"size:16;index;not null" json:"incident_type"`
	Status            AssistanceStatus `gorm:"size:16;default:pending" json:"status"`

	Images []AssistanceImage `gorm:"foreignKey:AssistanceID" json:"images,omitempty"`
}

func (Assistance) TableName() string { return "assistances" }

// AssistanceImage references an uploaded photo by its object-storage key.
// Download URLs are signed on read, never persisted.
type AssistanceImage struct {
	Base

	AssistanceID int64  `gorm:"index;not null" json:"-"`
	ObjectKey    string `gorm:"not null" json:"-"`
}

func (AssistanceImage) TableName() string { return "assistance_images" }
