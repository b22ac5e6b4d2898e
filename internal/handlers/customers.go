package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadIdentification attaches ID documents to the customer profile
func UploadIdentification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.GetUint("linkedId")

		idType := c.PostForm("idType")
		idNumber := c.PostForm("idNumber")
		if idType != string(models.IDTypePassport) && idType != string(models.IDTypeNationalID) {
			respondError(c, 400, "idType must be Passport or National ID")
			return
		}
		if idNumber == "" {
			respondError(c, 400, "idNumber is required")
			return
		}

		form, err := c.MultipartForm()
		if err != nil || len(form.File["idImages"]) == 0 {
			respondError(c, 400, "At least one identification image is required")
			return
		}

		var images []string
		for _, fileHeader := range form.File["idImages"] {
			url, err := services.UploadFile(fileHeader, "identification")
			if err != nil {
				respondError(c, 500, "Failed to upload identification image")
				return
			}
			images = append(images, url)
		}

		var customer models.Customer
		if err := db.First(&customer, customerID).Error; err != nil {
			respondError(c, 404, "Customer not found")
			return
		}

		customer.IDType = models.IDType(idType)
		customer.IDNumber = idNumber
		customer.IDImages = images
		if err := db.Save(&customer).Error; err != nil {
			respondError(c, 500, "Failed to save identification")
			return
		}

		respondOK(c, 200, customer, "Identification uploaded successfully")
	}
}

// RemoveCustomer deletes the account and cascades to its bookings
func RemoveCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.GetUint("linkedId")
		userID := c.GetUint("userId")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("customer_id = ?", customerID).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Customer{}, customerID).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, userID).Error
		})
		if err != nil {
			respondError(c, 500, "Failed to remove customer")
			return
		}

		respondOK(c, 200, nil, "Customer removed successfully")
	}
}
