package assistance

import (
	"time"

	"github.com/baedyl/Loxea-api/internal/domain"
)

type RequestAssistanceRequest struct {
	Latitude          string `form:"latitude" json:"latitude" binding:"required"`
	Longitude         string `form:"longitude" json:"longitude" binding:"required"`
	AddressComplement string `form:"address_complement" json:"address_complement"`
	Comment           string `form:"comment" json:"comment"`
	IncidentType      string `form:"incident_type" json:"incident_type" binding:"omitempty,oneof=assistance accident"`
}

type UpdateAssistanceRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress resolved"`
}

type ImageResponse struct {
	ImageURL string `json:"image_url"`
}

type UserSummary struct {
	ID                int64  `json:"id"`
	ExternalReference string `json:"external_reference"`
	Name              string `json:"name"`
	Email             string `json:"email"`
}

type AssistanceResponse struct {
	ID                int64                   `json:"id"`
	ExternalReference string                  `json:"external_reference"`
	GpsLatitude       string                  `json:"gps_latitude"`
	GpsLongitude      string                  `json:"gps_longitude"`
	AddressComplement string                  `json:"address_complement"`
	Comment           string                  `json:"comment"`
	IncidentType      domain.IncidentType     `json:"incident_type"`
	Status            domain.AssistanceStatus `json:"status"`
	User              *UserSummary            `json:"user,omitempty"`
	Images            []ImageResponse         `json:"images"`
	CreatedAt         time.Time               `json:"created_at"`
	LastUpdated       time.Time               `json:"last_updated"`
}

type ListResponse struct {
	Assistance []AssistanceResponse `json:"assistance"`
}
