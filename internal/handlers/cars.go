package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCar lists a car under the authenticated partner's fleet. Images are
// sent as multipart files alongside the JSON-encoded car payload.
func CreateCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var input struct {
			Brand              string   `form:"brand" binding:"required"`
			Model              string   `form:"model" binding:"required"`
			Year               int      `form:"year" binding:"required"`
			Seats              int      `form:"seats" binding:"required"`
			FuelType           string   `form:"fuelType" binding:"required"`
			PricePerDay        float64  `form:"pricePerDay" binding:"required"`
			RegistrationNumber string   `form:"registrationNumber"`
			Mileage            float64  `form:"mileage"`
			Color              string   `form:"color"`
			Description        string   `form:"description"`
			Features           []string `form:"features"`
			PickupLocation     string   `form:"pickupLocation" binding:"required"`
			DropoffLocation    string   `form:"dropoffLocation" binding:"required"`
			Category           string   `form:"category" binding:"required"`
			SubCategory        string   `form:"subCategory" binding:"required"`
			TransmissionType   string   `form:"transmissionType"`
			Latitude           float64  `form:"latitude"`
			Longitude          float64  `form:"longitude"`
		}
		if err := c.ShouldBind(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var images []string
		if form, err := c.MultipartForm(); err == nil {
			for _, fileHeader := range form.File["images"] {
				url, err := services.UploadFile(fileHeader, "cars")
				if err != nil {
					respondError(c, 500, "Failed to upload car image")
					return
				}
				images = append(images, url)
			}
		}

		car := models.Car{
			Brand:              input.Brand,
			CarModel:           input.Model,
			Year:               input.Year,
			Seats:              input.Seats,
			FuelType:           input.FuelType,
			PricePerDay:        input.PricePerDay,
			RegistrationNumber: input.RegistrationNumber,
			Mileage:            input.Mileage,
			Color:              input.Color,
			Description:        input.Description,
			AvailabilityStatus: models.CarAvailable,
			Latitude:           input.Latitude,
			Longitude:          input.Longitude,
			Features:           input.Features,
			Images:             images,
			PartnerID:          partnerID,
			PickupLocation:     input.PickupLocation,
			DropoffLocation:    input.DropoffLocation,
			Category:           input.Category,
			SubCategory:        input.SubCategory,
			TransmissionType:   input.TransmissionType,
		}

		if err := db.Create(&car).Error; err != nil {
			respondError(c, 500, "Failed to create car")
			return
		}

		respondOK(c, 201, car, "Car listed successfully")
	}
}

// GetCars lists cars, filterable by category, subCategory and availability
func GetCars(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Car{})

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if subCategory := c.Query("subCategory"); subCategory != "" {
			query = query.Where("sub_category = ?", subCategory)
		}
		if availability := c.Query("availability"); availability != "" {
			query = query.Where("availability_status = ?", availability)
		}

		var cars []models.Car
		if err := query.Find(&cars).Error; err != nil {
			respondError(c, 500, "Failed to fetch cars")
			return
		}
		if len(cars) == 0 {
			respondError(c, 404, "No Cars Found!")
			return
		}

		respondOK(c, 200, cars, "Cars fetched successfully")
	}
}

// GetCarByID returns one car with its partner inlined
func GetCarByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if err := db.Preload("Partner").First(&car, c.Param("carId")).Error; err != nil {
			respondError(c, 404, "Car not found")
			return
		}

		respondOK(c, 200, car, "Car fetched successfully")
	}
}

// GetCarsByPartner lists the authenticated partner's fleet
func GetCarsByPartner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var cars []models.Car
		if err := db.Where("partner_id = ?", partnerID).Find(&cars).Error; err != nil {
			respondError(c, 500, "Failed to fetch cars")
			return
		}
		if len(cars) == 0 {
			respondError(c, 404, "No Cars Found!")
			return
		}

		respondOK(c, 200, cars, "Cars fetched successfully")
	}
}

// UpdateCar updates mutable listing fields of a partner's car
func UpdateCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var car models.Car
		if err := db.First(&car, c.Param("carId")).Error; err != nil {
			respondError(c, 404, "Car not found")
			return
		}
		if car.PartnerID != partnerID {
			respondError(c, 403, "Car does not belong to this partner")
			return
		}

		var input struct {
			PricePerDay        *float64 `json:"pricePerDay"`
			Description        *string  `json:"description"`
			AvailabilityStatus *string  `json:"availabilityStatus" binding:"omitempty,oneof=available unavailable in_maintenance"`
			PickupLocation     *string  `json:"pickupLocation"`
			DropoffLocation    *string  `json:"dropoffLocation"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		if input.PricePerDay != nil {
			car.PricePerDay = *input.PricePerDay
		}
		if input.Description != nil {
			car.Description = *input.Description
		}
		if input.AvailabilityStatus != nil {
			car.AvailabilityStatus = models.CarAvailability(*input.AvailabilityStatus)
		}
		if input.PickupLocation != nil {
			car.PickupLocation = *input.PickupLocation
		}
		if input.DropoffLocation != nil {
			car.DropoffLocation = *input.DropoffLocation
		}

		if err := db.Save(&car).Error; err != nil {
			respondError(c, 500, "Failed to update car")
			return
		}

		respondOK(c, 200, car, "Car updated successfully")
	}
}

// DeleteCar removes a car from the partner's fleet
func DeleteCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var car models.Car
		if err := db.First(&car, c.Param("carId")).Error; err != nil {
			respondError(c, 404, "Car not found")
			return
		}
		if car.PartnerID != partnerID {
			respondError(c, 403, "Car does not belong to this partner")
			return
		}

		if err := db.Delete(&car).Error; err != nil {
			respondError(c, 500, "Failed to delete car")
			return
		}

		respondOK(c, 200, nil, "Car deleted successfully")
	}
}
