package domain

import "errors"

// ErrDuplicateIdentification is returned by stores when a chassis/plate
// pair is already registered.
var ErrDuplicateIdentification = errors.New("identification already exists")

// Identification is a vehicle identification record imported by the back
// office. Signup is only accepted when the submitted chassis/plate pair
// matches a live row.
type Identification struct {
	Base

	ChassisNumber string `gorm:"index;not null" json:"chassis_number"`
	PlateNumber   string `gorm:"index;not null" json:"plate_number"`
	VehicleType   string `gorm:"column:type" json:"type"`
}

func (Identification) TableName() string { return "identification_details" }
