package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CarAvailability string

const (
	CarAvailable     CarAvailability = "available"
	CarUnavailable   CarAvailability = "unavailable"
	CarInMaintenance CarAvailability = "in_maintenance"
)

type Car struct {
	gorm.Model
	Brand              string          `json:"brand" gorm:"column:brand;not null"`
	CarModel           string          `json:"model" gorm:"column:car_model;not null"`
	Year               int             `json:"year" gorm:"column:year;not null"`
	Seats              int             `json:"seats" gorm:"column:seats;not null"`
	FuelType           string          `json:"fuelType" gorm:"column:fuel_type;not null"`
	PricePerDay        float64         `json:"pricePerDay" gorm:"column:price_per_day;not null"`
	RegistrationNumber string          `json:"registrationNumber" gorm:"column:registration_number"`
	Mileage            float64         `json:"mileage" gorm:"column:mileage"`
	Color              string          `json:"color" gorm:"column:color"`
	Description        string          `json:"description" gorm:"column:description"`
	AvailabilityStatus CarAvailability `json:"availabilityStatus" gorm:"column:availability_status;not null;default:available"`
	Latitude           float64         `json:"latitude" gorm:"column:latitude"`
	Longitude          float64         `json:"longitude" gorm:"column:longitude"`
	Features           pq.StringArray  `json:"features" gorm:"column:features;type:text[]"`
	Images             pq.StringArray  `json:"images" gorm:"column:images;type:text[]"`
	PartnerID          uint            `json:"partnerId" gorm:"column:partner_id;not null;index"`
	Partner            *Partner        `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	PickupLocation     string          `json:"pickupLocation" gorm:"column:pickup_location;not null"`
	DropoffLocation    string          `json:"dropoffLocation" gorm:"column:dropoff_location;not null"`
	Category           string          `json:"category" gorm:"column:category;not null"`
	SubCategory        string          `json:"subCategory" gorm:"column:sub_category;not null"`
	TransmissionType   string          `json:"transmissionType" gorm:"column:transmission_type"`
}

func (Car) TableName() string {
	return "cars"
}
