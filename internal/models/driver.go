package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	FullName      string         `json:"fullName" gorm:"column:full_name;not null"`
	Email         string         `json:"email" gorm:"column:email;unique;not null"`
	PhoneNumber   string         `json:"phoneNumber" gorm:"column:phone_number;not null"`
	LicenseNumber string         `json:"licenseNumber" gorm:"column:license_number"`
	Address       string         `json:"address" gorm:"column:address"`
	ImageURL      string         `json:"imgUrl" gorm:"column:image_url"`
	PartnerID     *uint          `json:"partnerId" gorm:"column:partner_id;index"`
	Available     bool           `json:"available" gorm:"column:available;not null;default:true"`
	DeviceTokens  pq.StringArray `json:"deviceTokens" gorm:"column:device_tokens;type:text[]"`
}

func (Driver) TableName() string {
	return "drivers"
}
