package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type IDType string

const (
	IDTypePassport   IDType = "Passport"
	IDTypeNationalID IDType = "National ID"
)

type Customer struct {
	gorm.Model
	FullName     string         `json:"fullName" gorm:"column:full_name;not null"`
	Email        string         `json:"email" gorm:"column:email;unique;not null"`
	PhoneNumber  string         `json:"phoneNumber" gorm:"column:phone_number;not null"`
	Address      string         `json:"address" gorm:"column:address"`
	ImageURL     string         `json:"imgUrl" gorm:"column:image_url"`
	IDType       IDType         `json:"idType" gorm:"column:id_type"`
	IDNumber     string         `json:"idNumber" gorm:"column:id_number"`
	IDImages     pq.StringArray `json:"idImages" gorm:"column:id_images;type:text[]"`
	DeviceTokens pq.StringArray `json:"deviceTokens" gorm:"column:device_tokens;type:text[]"`
}

func (Customer) TableName() string {
	return "customers"
}
