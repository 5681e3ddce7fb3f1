package identification

import "time"

type IdentificationRequest struct {
	ChassisNumber string `json:"chassis_number" binding:"required"`
	PlateNumber   string `json:"plate_number" binding:"required"`
	Type          string `json:"type" binding:"required"`
}

type IdentificationResponse struct {
	ID            int64     `json:"id"`
	ChassisNumber string    `json:"chassis_number"`
	PlateNumber   string    `json:"plate_number"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
}

type ListResponse struct {
	Identifications []IdentificationResponse `json:"identifications"`
}

type UploadResponse struct {
	ProcessedRecords int `json:"processed_records"`
}
