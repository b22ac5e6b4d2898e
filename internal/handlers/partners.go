package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPartnerByID returns one partner's public profile
func GetPartnerByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var partner models.Partner
		if err := db.First(&partner, c.Param("partnerId")).Error; err != nil {
			respondError(c, 404, "Partner not found")
			return
		}

		respondOK(c, 200, gin.H{
			"id":          partner.ID,
			"fullName":    partner.FullName,
			"phoneNumber": partner.PhoneNumber,
			"companyName": partner.CompanyName,
			"serviceArea": partner.ServiceArea,
			"imgUrl":      partner.ImageURL,
		}, "Partner fetched successfully")
	}
}

// AcceptTerms marks the partner's terms acceptance
func AcceptTerms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		if err := db.Model(&models.Partner{}).Where("id = ?", partnerID).Update("terms_accepted", true).Error; err != nil {
			respondError(c, 500, "Failed to accept terms")
			return
		}
		respondOK(c, 200, nil, "Terms accepted")
	}
}

// UpdatePaymentDetails stores the partner's settlement account
func UpdatePaymentDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var input struct {
			AccountNumber string `json:"accountNumber"`
			BankName      string `json:"bankName"`
			UpiID         string `json:"upiId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		updates := map[string]interface{}{
			"account_number": input.AccountNumber,
			"bank_name":      input.BankName,
			"upi_id":         input.UpiID,
		}
		if err := db.Model(&models.Partner{}).Where("id = ?", partnerID).Updates(updates).Error; err != nil {
			respondError(c, 500, "Failed to update payment details")
			return
		}

		respondOK(c, 200, nil, "Payment details updated")
	}
}

// RemovePartner deletes the partner account and cascades to that partner's
// bookings and fleet.
func RemovePartner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")
		userID := c.GetUint("userId")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("partner_id = ?", partnerID).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Where("partner_id = ?", partnerID).Delete(&models.Car{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Partner{}, partnerID).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, userID).Error
		})
		if err != nil {
			respondError(c, 500, "Failed to remove partner")
			return
		}

		respondOK(c, 200, nil, "Partner removed successfully")
	}
}
