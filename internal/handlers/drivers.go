package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDriversByPartner lists the drivers attached to the authenticated
// partner, optionally only the ones currently available.
func GetDriversByPartner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		query := db.Where("partner_id = ?", partnerID)
		if c.Query("available") == "true" {
			query = query.Where("available = ?", true)
		}

		var drivers []models.Driver
		if err := query.Find(&drivers).Error; err != nil {
			respondError(c, 500, "Failed to fetch drivers")
			return
		}
		if len(drivers) == 0 {
			respondError(c, 404, "No Drivers Found!")
			return
		}

		respondOK(c, 200, drivers, "Drivers fetched successfully")
	}
}

// AttachDriverToPartner puts a driver under the partner's management
func AttachDriverToPartner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var input struct {
			DriverID uint `json:"driverId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var driver models.Driver
		if err := db.First(&driver, input.DriverID).Error; err != nil {
			respondError(c, 404, "Driver not found")
			return
		}

		driver.PartnerID = &partnerID
		if err := db.Save(&driver).Error; err != nil {
			respondError(c, 500, "Failed to attach driver")
			return
		}

		respondOK(c, 200, driver, "Driver attached successfully")
	}
}

// UpdateDriverAvailability toggles the authenticated driver's availability
func UpdateDriverAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("linkedId")

		var input struct {
			Available *bool `json:"available" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		if err := db.Model(&models.Driver{}).Where("id = ?", driverID).Update("available", *input.Available).Error; err != nil {
			respondError(c, 500, "Failed to update availability")
			return
		}

		respondOK(c, 200, gin.H{"available": *input.Available}, "Availability updated")
	}
}

// RemoveDriver deletes the driver account and cascades to its bookings
func RemoveDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("linkedId")
		userID := c.GetUint("userId")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("driver_id = ?", driverID).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Driver{}, driverID).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, userID).Error
		})
		if err != nil {
			respondError(c, 500, "Failed to remove driver")
			return
		}

		respondOK(c, 200, nil, "Driver removed successfully")
	}
}
