package handlers

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/drivehive/drivehive-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Register creates an auth account plus the role entity it acts for.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FullName string `json:"fullName" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Mobile   string `json:"mobile" binding:"required"`
			Password string `json:"password" binding:"required,min=6"`
			Role     string `json:"role" binding:"required,oneof=customer driver partner user"`
			Address  string `json:"address"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			respondError(c, 400, "Email already registered")
			return
		}

		user := models.User{
			FullName: input.FullName,
			Email:    input.Email,
			Mobile:   input.Mobile,
			Password: input.Password,
			Role:     models.Role(input.Role),
		}
		if err := user.HashPassword(); err != nil {
			respondError(c, 500, "Failed to process password")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			switch user.Role {
			case models.RoleCustomer:
				customer := models.Customer{FullName: input.FullName, Email: input.Email, PhoneNumber: input.Mobile, Address: input.Address}
				if err := tx.Create(&customer).Error; err != nil {
					return err
				}
				user.LinkedID = customer.ID
			case models.RoleDriver:
				driver := models.Driver{FullName: input.FullName, Email: input.Email, PhoneNumber: input.Mobile, Address: input.Address}
				if err := tx.Create(&driver).Error; err != nil {
					return err
				}
				user.LinkedID = driver.ID
			case models.RolePartner:
				partner := models.Partner{FullName: input.FullName, Email: input.Email, PhoneNumber: input.Mobile, Address: input.Address}
				if err := tx.Create(&partner).Error; err != nil {
					return err
				}
				user.LinkedID = partner.ID
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			respondError(c, 500, "Failed to register")
			return
		}

		respondOK(c, 201, gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
			"role":     user.Role,
			"linkedId": user.LinkedID,
		}, "Registered successfully")
	}
}

// Login verifies credentials and issues access and refresh tokens
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			respondError(c, 401, "Invalid email or password")
			return
		}
		if err := user.CheckPassword(input.Password); err != nil {
			respondError(c, 401, "Invalid email or password")
			return
		}

		accessToken, err := utils.GenerateAccessToken(&user)
		if err != nil {
			respondError(c, 500, "Failed to generate token")
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(&user)
		if err != nil {
			respondError(c, 500, "Failed to generate token")
			return
		}

		user.RefreshToken = refreshToken
		if err := db.Save(&user).Error; err != nil {
			respondError(c, 500, "Failed to persist session")
			return
		}

		respondOK(c, 200, gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
			"user": gin.H{
				"id":       user.ID,
				"fullName": user.FullName,
				"email":    user.Email,
				"role":     user.Role,
				"linkedId": user.LinkedID,
				"imgUrl":   user.ImageURL,
			},
		}, "Logged in successfully")
	}
}

// RefreshAccessToken exchanges a valid refresh token for a new token pair
func RefreshAccessToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RefreshToken string `json:"refreshToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		token, err := utils.ValidateRefreshToken(input.RefreshToken)
		if err != nil || !token.Valid {
			respondError(c, 401, "Invalid refresh token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondError(c, 401, "Invalid refresh token")
			return
		}

		var user models.User
		if err := db.First(&user, uint(claims["id"].(float64))).Error; err != nil {
			respondError(c, 401, "Invalid refresh token")
			return
		}
		if user.RefreshToken != input.RefreshToken {
			respondError(c, 401, "Refresh token has been revoked")
			return
		}

		accessToken, err := utils.GenerateAccessToken(&user)
		if err != nil {
			respondError(c, 500, "Failed to generate token")
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(&user)
		if err != nil {
			respondError(c, 500, "Failed to generate token")
			return
		}

		user.RefreshToken = refreshToken
		if err := db.Save(&user).Error; err != nil {
			respondError(c, 500, "Failed to persist session")
			return
		}

		respondOK(c, 200, gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		}, "Token refreshed")
	}
}

// Logout clears the stored refresh token
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		if err := db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", "").Error; err != nil {
			respondError(c, 500, "Failed to logout")
			return
		}
		respondOK(c, 200, nil, "Logged out successfully")
	}
}

// GetProfile returns the authenticated account with its role entity
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			respondError(c, 404, "User not found")
			return
		}

		profile := gin.H{"user": user}
		switch user.Role {
		case models.RoleCustomer:
			var customer models.Customer
			if err := db.First(&customer, user.LinkedID).Error; err == nil {
				profile["customer"] = customer
			}
		case models.RoleDriver:
			var driver models.Driver
			if err := db.First(&driver, user.LinkedID).Error; err == nil {
				profile["driver"] = driver
			}
		case models.RolePartner:
			var partner models.Partner
			if err := db.First(&partner, user.LinkedID).Error; err == nil {
				profile["partner"] = partner
			}
		}

		respondOK(c, 200, profile, "Profile fetched")
	}
}

// UpdateProfile updates account fields and, for partners, business details
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			FullName       string `json:"fullName"`
			Mobile         string `json:"mobile"`
			CompanyName    string `json:"company"`
			CompanyAddress string `json:"companyAddress"`
			ServiceArea    string `json:"area"`
			AccountNumber  string `json:"account"`
			UpiID          string `json:"upi"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			respondError(c, 404, "User not found")
			return
		}

		if input.FullName != "" {
			user.FullName = input.FullName
		}
		if input.Mobile != "" {
			user.Mobile = input.Mobile
		}
		if err := db.Save(&user).Error; err != nil {
			respondError(c, 500, "Failed to update profile")
			return
		}

		if user.Role == models.RolePartner {
			updates := map[string]interface{}{}
			if input.CompanyName != "" {
				updates["company_name"] = input.CompanyName
			}
			if input.CompanyAddress != "" {
				updates["company_address"] = input.CompanyAddress
			}
			if input.ServiceArea != "" {
				updates["service_area"] = input.ServiceArea
			}
			if input.AccountNumber != "" {
				updates["account_number"] = input.AccountNumber
			}
			if input.UpiID != "" {
				updates["upi_id"] = input.UpiID
			}
			if len(updates) > 0 {
				if err := db.Model(&models.Partner{}).Where("id = ?", user.LinkedID).Updates(updates).Error; err != nil {
					respondError(c, 500, "Failed to update business info")
					return
				}
			}
		}

		respondOK(c, 200, user, "Profile updated successfully")
	}
}

// UpdatePassword changes the account password after checking the old one
func UpdatePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			OldPassword string `json:"oldPassword" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			respondError(c, 404, "User not found")
			return
		}
		if err := user.CheckPassword(input.OldPassword); err != nil {
			respondError(c, 401, "Old password is incorrect")
			return
		}

		user.Password = input.NewPassword
		if err := user.HashPassword(); err != nil {
			respondError(c, 500, "Failed to process password")
			return
		}
		if err := db.Save(&user).Error; err != nil {
			respondError(c, 500, "Failed to update password")
			return
		}

		respondOK(c, 200, nil, "Password updated successfully")
	}
}

// UploadProfileImage stores an avatar and saves its URL on the account
func UploadProfileImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondError(c, 400, "Image file is required")
			return
		}

		url, err := services.UploadFile(fileHeader, "profiles")
		if err != nil {
			respondError(c, 500, "Failed to upload image")
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Update("image_url", url).Error; err != nil {
			respondError(c, 500, "Failed to save image")
			return
		}

		respondOK(c, 200, gin.H{"imgUrl": url}, "Image uploaded successfully")
	}
}
