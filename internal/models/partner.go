package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Partner struct {
	gorm.Model
	FullName       string         `json:"fullName" gorm:"column:full_name;not null"`
	Email          string         `json:"email" gorm:"column:email;unique;not null"`
	PhoneNumber    string         `json:"phoneNumber" gorm:"column:phone_number;not null"`
	Address        string         `json:"address" gorm:"column:address"`
	ImageURL       string         `json:"imgUrl" gorm:"column:image_url"`
	CompanyName    string         `json:"companyName" gorm:"column:company_name"`
	CompanyAddress string         `json:"companyAddress" gorm:"column:company_address"`
	ServiceArea    string         `json:"serviceArea" gorm:"column:service_area"`
	AccountNumber  string         `json:"accountNumber" gorm:"column:account_number"`
	BankName       string         `json:"bankName" gorm:"column:bank_name"`
	UpiID          string         `json:"upiId" gorm:"column:upi_id"`
	TermsAccepted  bool           `json:"termsAccepted" gorm:"column:terms_accepted;not null;default:false"`
	DeviceTokens   pq.StringArray `json:"deviceTokens" gorm:"column:device_tokens;type:text[]"`
}

func (Partner) TableName() string {
	return "partners"
}
