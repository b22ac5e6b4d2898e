package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func appendToken(tokens pq.StringArray, token string) (pq.StringArray, bool) {
	for _, t := range tokens {
		if t == token {
			return tokens, false
		}
	}
	return append(tokens, token), true
}

func removeToken(tokens pq.StringArray, token string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tokens))
	for _, t := range tokens {
		if t != token {
			out = append(out, t)
		}
	}
	return out
}

// RegisterDeviceToken stores an FCM device token on the caller's role
// entity. Registering the same token twice is a no-op.
func RegisterDeviceToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")
		role := c.GetString("role")

		var input struct {
			DeviceToken string `json:"deviceToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var err error
		switch models.Role(role) {
		case models.RoleCustomer:
			var customer models.Customer
			if err = db.First(&customer, linkedID).Error; err == nil {
				if tokens, added := appendToken(customer.DeviceTokens, input.DeviceToken); added {
					customer.DeviceTokens = tokens
					err = db.Save(&customer).Error
				}
			}
		case models.RoleDriver:
			var driver models.Driver
			if err = db.First(&driver, linkedID).Error; err == nil {
				if tokens, added := appendToken(driver.DeviceTokens, input.DeviceToken); added {
					driver.DeviceTokens = tokens
					err = db.Save(&driver).Error
				}
			}
		case models.RolePartner:
			var partner models.Partner
			if err = db.First(&partner, linkedID).Error; err == nil {
				if tokens, added := appendToken(partner.DeviceTokens, input.DeviceToken); added {
					partner.DeviceTokens = tokens
					err = db.Save(&partner).Error
				}
			}
		default:
			respondError(c, 400, "Role does not support device tokens")
			return
		}
		if err != nil {
			respondError(c, 500, "Failed to register device token")
			return
		}

		respondOK(c, 200, nil, "Device token registered")
	}
}

// RemoveDeviceToken drops an FCM device token from the caller's role entity
func RemoveDeviceToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")
		role := c.GetString("role")

		var input struct {
			DeviceToken string `json:"deviceToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var err error
		switch models.Role(role) {
		case models.RoleCustomer:
			var customer models.Customer
			if err = db.First(&customer, linkedID).Error; err == nil {
				customer.DeviceTokens = removeToken(customer.DeviceTokens, input.DeviceToken)
				err = db.Save(&customer).Error
			}
		case models.RoleDriver:
			var driver models.Driver
			if err = db.First(&driver, linkedID).Error; err == nil {
				driver.DeviceTokens = removeToken(driver.DeviceTokens, input.DeviceToken)
				err = db.Save(&driver).Error
			}
		case models.RolePartner:
			var partner models.Partner
			if err = db.First(&partner, linkedID).Error; err == nil {
				partner.DeviceTokens = removeToken(partner.DeviceTokens, input.DeviceToken)
				err = db.Save(&partner).Error
			}
		default:
			respondError(c, 400, "Role does not support device tokens")
			return
		}
		if err != nil {
			respondError(c, 500, "Failed to remove device token")
			return
		}

		respondOK(c, 200, nil, "Device token removed")
	}
}

// GetNotifications lists the caller's in-app notifications, newest first
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")

		var notifications []models.Notification
		if err := db.Where("receiver_id = ?", linkedID).
			Order("created_at DESC").
			Find(&notifications).Error; err != nil {
			respondError(c, 500, "Failed to fetch notifications")
			return
		}
		if len(notifications) == 0 {
			respondError(c, 404, "No Notifications Found!")
			return
		}

		respondOK(c, 200, notifications, "Notifications fetched successfully")
	}
}

// MarkNotificationRead flags one notification as read
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")

		result := db.Model(&models.Notification{}).
			Where("id = ? AND receiver_id = ?", c.Param("notificationId"), linkedID).
			Update("is_read", true)
		if result.Error != nil {
			respondError(c, 500, "Failed to update notification")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, 404, "Notification not found")
			return
		}

		respondOK(c, 200, nil, "Notification marked as read")
	}
}

// DeleteNotification removes one notification of the caller
func DeleteNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")

		result := db.Where("id = ? AND receiver_id = ?", c.Param("notificationId"), linkedID).
			Delete(&models.Notification{})
		if result.Error != nil {
			respondError(c, 500, "Failed to delete notification")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, 404, "Notification not found")
			return
		}

		respondOK(c, 200, nil, "Notification deleted Successfully")
	}
}

// DeleteAllNotifications clears the caller's notification list
func DeleteAllNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkedID := c.GetUint("linkedId")

		if err := db.Where("receiver_id = ?", linkedID).Delete(&models.Notification{}).Error; err != nil {
			respondError(c, 500, "Failed to delete notifications")
			return
		}

		respondOK(c, 200, nil, "Notifications deleted successfully")
	}
}
