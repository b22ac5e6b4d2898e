package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/drivehive/drivehive-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errCarBooked      = errors.New("car is already booked during the specified time")
	errCustomerBooked = errors.New("customer already has a booking during the specified time")
)

// displayBooking shadows the raw timestamps with the listing date format.
type displayBooking struct {
	models.Booking
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func toDisplayBooking(b models.Booking) displayBooking {
	return displayBooking{
		Booking:   b,
		StartDate: utils.FormatDisplayDate(b.StartDate),
		EndDate:   utils.FormatDisplayDate(b.EndDate),
	}
}

func toDisplayBookings(bookings []models.Booking) []displayBooking {
	out := make([]displayBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toDisplayBooking(b))
	}
	return out
}

// CreateBooking creates a booking for the authenticated customer after
// checking that neither the car nor the customer holds an overlapping
// booking. Both checks run again inside the insert transaction, and the
// bookings_car_no_overlap constraint backstops the car-level check, so two
// concurrent requests can never both commit.
func CreateBooking(db *gorm.DB, notifier *services.Notifier, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.GetUint("linkedId")

		var input struct {
			CarID            uint    `json:"carId" binding:"required"`
			PartnerID        uint    `json:"partnerId" binding:"required"`
			IsDriverRequired bool    `json:"isDriverRequired"`
			PickUpLocation   string  `json:"pickUpLocation" binding:"required"`
			ReturnLocation   string  `json:"returnLocation" binding:"required"`
			PickUpDateTime   string  `json:"pickUpDateTime" binding:"required"`
			ReturnDateTime   string  `json:"returnDateTime" binding:"required"`
			TotalRent        float64 `json:"totalRent" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		start, err := utils.ParseBookingTime(input.PickUpDateTime)
		if err != nil {
			respondError(c, 400, "Invalid pickUpDateTime, expected DD/MM/YYYY HH:mm")
			return
		}
		end, err := utils.ParseBookingTime(input.ReturnDateTime)
		if err != nil {
			respondError(c, 400, "Invalid returnDateTime, expected DD/MM/YYYY HH:mm")
			return
		}
		if !start.Before(end) {
			respondError(c, 400, "Pickup time must be before return time")
			return
		}

		var car models.Car
		if err := db.First(&car, input.CarID).Error; err != nil {
			respondError(c, 404, "Car not found")
			return
		}

		var partner models.Partner
		if err := db.First(&partner, input.PartnerID).Error; err != nil {
			respondError(c, 404, "Partner not found")
			return
		}

		driverStatus := models.DriverStatusPending
		if !input.IsDriverRequired {
			// Self-drive bookings skip driver approval entirely
			driverStatus = models.DriverStatusAccepted
		}

		booking := models.Booking{
			Reference:       uuid.New().String(),
			CustomerID:      customerID,
			CarID:           input.CarID,
			PartnerID:       input.PartnerID,
			PickupLocation:  input.PickUpLocation,
			DropoffLocation: input.ReturnLocation,
			StartDate:       start,
			EndDate:         end,
			TotalAmount:     input.TotalRent,
			PaymentStatus:   models.PaymentStatusPending,
			Status:          models.BookingStatusPending,
			PartnerStatus:   models.PartnerStatusPending,
			DriverStatus:    driverStatus,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var conflict models.Booking

			err := tx.Where(
				"car_id = ? AND status <> ? AND start_date <= ? AND end_date >= ?",
				input.CarID, models.BookingStatusCancelled, end, start,
			).First(&conflict).Error
			if err == nil {
				return errCarBooked
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			err = tx.Where(
				"customer_id = ? AND status <> ? AND start_date <= ? AND end_date >= ?",
				customerID, models.BookingStatusCancelled, end, start,
			).First(&conflict).Error
			if err == nil {
				return errCustomerBooked
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			return tx.Create(&booking).Error
		})
		if err != nil {
			switch {
			case errors.Is(err, errCarBooked):
				respondError(c, 400, "Car is already booked during the specified time. Please choose another time.")
			case errors.Is(err, errCustomerBooked):
				respondError(c, 400, "You already have a booking during the specified time. Please choose another time.")
			case strings.Contains(err.Error(), "bookings_car_no_overlap"):
				// Concurrent request won the interval; same answer as the check
				respondError(c, 400, "Car is already booked during the specified time. Please choose another time.")
			default:
				respondError(c, 500, "Failed to create booking")
			}
			return
		}

		notifier.Enqueue(services.BookingAlert{
			ReceiverID:   partner.ID,
			SenderID:     customerID,
			Title:        "New Booking Alert",
			Body:         fmt.Sprintf("Hi %s, A customer has successfully booked your car %s %s. Please check the booking details.", partner.FullName, car.Brand, car.CarModel),
			Type:         "partner",
			BookingID:    booking.ID,
			DeviceTokens: partner.DeviceTokens,
			Data: map[string]string{
				"bookingId":    fmt.Sprintf("%d", booking.ID),
				"click_action": "OPEN_PARTNER_BOOKING_REQUEST",
			},
		})
		hub.SendBookingEvent("partner", partner.ID, "booking_created", booking.ID, booking)

		respondOK(c, 201, gin.H{
			"booking": booking,
			"carData": gin.H{
				"brand":       car.Brand,
				"model":       car.CarModel,
				"pricePerDay": car.PricePerDay,
			},
		}, "Booking created and sent to partner for approval")
	}
}

// GetBookingsByCustomer lists the authenticated customer's bookings
func GetBookingsByCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.GetUint("linkedId")

		var bookings []models.Booking
		if err := db.Where("customer_id = ?", customerID).
			Preload("Car").
			Preload("Driver").
			Find(&bookings).Error; err != nil {
			respondError(c, 500, "Failed to fetch bookings")
			return
		}
		if len(bookings) == 0 {
			respondError(c, 404, "No Bookings Found!")
			return
		}

		respondOK(c, 200, toDisplayBookings(bookings), "Bookings fetched successfully")
	}
}

// GetBookingsByPartner lists the most recent booking requests for the
// authenticated partner's fleet.
func GetBookingsByPartner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var bookings []models.Booking
		if err := db.Where("partner_id = ?", partnerID).
			Preload("Car").
			Preload("Driver").
			Order("created_at DESC").
			Limit(4).
			Find(&bookings).Error; err != nil {
			respondError(c, 500, "Failed to fetch bookings")
			return
		}
		if len(bookings) == 0 {
			respondError(c, 404, "No Bookings Found!")
			return
		}

		respondOK(c, 200, toDisplayBookings(bookings), "All Bookings Fetched")
	}
}

// GetBookingsByDriver lists bookings assigned to the authenticated driver
func GetBookingsByDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("linkedId")

		var bookings []models.Booking
		if err := db.Where("driver_id = ?", driverID).
			Preload("Customer").
			Find(&bookings).Error; err != nil {
			respondError(c, 500, "Failed to fetch bookings")
			return
		}
		if len(bookings) == 0 {
			respondError(c, 404, "Bookings Not found!")
			return
		}

		respondOK(c, 200, bookings, "Bookings fetched successfully")
	}
}

// GetBookingsByCar lists all bookings held against one car
func GetBookingsByCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID := c.Param("carId")

		var bookings []models.Booking
		if err := db.Where("car_id = ?", carID).Find(&bookings).Error; err != nil {
			respondError(c, 500, "Failed to fetch bookings")
			return
		}
		if len(bookings) == 0 {
			respondError(c, 404, "No Bookings Found!")
			return
		}

		respondOK(c, 200, bookings, "Bookings fetched successfully")
	}
}

// GetAllBookings returns every booking. Unpaginated, admin/reporting use.
func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		if err := db.Find(&bookings).Error; err != nil {
			respondError(c, 500, "Failed to fetch bookings")
			return
		}

		respondOK(c, 200, toDisplayBookings(bookings), "Bookings fetched")
	}
}

// GetBookingByID returns the flattened display projection of one booking:
// car, customer and partner fields inlined under renamed keys.
func GetBookingByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookingID uint
		if _, err := fmt.Sscanf(c.Param("bookingId"), "%d", &bookingID); err != nil {
			respondError(c, 400, "Booking ID is required")
			return
		}

		if cached, err := services.GetCachedBookingStatus(c.Request.Context(), bookingID); err == nil && cached != nil {
			respondOK(c, 200, cached, "Booking fetched successfully")
			return
		}

		var booking models.Booking
		if err := db.Preload("Car").
			Preload("Customer").
			Preload("Partner").
			First(&booking, bookingID).Error; err != nil {
			respondError(c, 404, "Booking not found")
			return
		}

		detail := gin.H{
			"id":                 booking.ID,
			"reference":          booking.Reference,
			"startDate":          utils.FormatDisplayDate(booking.StartDate),
			"endDate":            utils.FormatDisplayDate(booking.EndDate),
			"totalAmount":        booking.TotalAmount,
			"pickupLocation":     booking.PickupLocation,
			"dropoffLocation":    booking.DropoffLocation,
			"durationInDays":     booking.DurationInDays,
			"paymentStatus":      booking.PaymentStatus,
			"penalties":          booking.Penalties,
			"partnerStatus":      booking.PartnerStatus,
			"driverStatus":       booking.DriverStatus,
			"status":             booking.Status,
			"partnerId":          booking.PartnerID,
			"driverId":           booking.DriverID,
			"carId":              booking.CarID,
			"customerId":         booking.CustomerID,
			"carModel":           booking.Car.CarModel,
			"carName":            booking.Car.Brand,
			"registrationNumber": booking.Car.RegistrationNumber,
			"pricePerDay":        booking.Car.PricePerDay,
			"carPickupLocation":  booking.Car.PickupLocation,
			"carDropoffLocation": booking.Car.DropoffLocation,
			"cName":              booking.Customer.FullName,
			"cPhone":             booking.Customer.PhoneNumber,
			"cImage":             booking.Customer.ImageURL,
			"partnerName":        booking.Partner.FullName,
			"partnerPhone":       booking.Partner.PhoneNumber,
		}

		if err := services.CacheBookingStatus(c.Request.Context(), booking.ID, detail); err != nil {
			// Cache is an optimization, the join already answered
			fmt.Println("Failed to cache booking status:", err)
		}

		respondOK(c, 200, detail, "Booking fetched successfully")
	}
}

// UpdatePartnerStatus records the partner's approval or rejection. The
// overall status is derived server-side, never taken from the request.
func UpdatePartnerStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			BookingID     uint   `json:"bookingId" binding:"required"`
			PartnerStatus string `json:"partnerStatus" binding:"required,oneof=pending confirmed rejected"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil {
			respondError(c, 404, "Booking not found")
			return
		}

		booking.PartnerStatus = models.PartnerStatus(input.PartnerStatus)
		booking.Status = models.DeriveStatus(booking.PartnerStatus, booking.DriverStatus, booking.PaymentStatus)
		if err := db.Save(&booking).Error; err != nil {
			respondError(c, 500, "Failed to update booking")
			return
		}

		services.InvalidateBookingStatus(c.Request.Context(), booking.ID)
		hub.SendBookingEvent("customer", booking.CustomerID, "partner_status", booking.ID, booking)

		respondOK(c, 200, booking, "Booking updated successfully")
	}
}

// AssignDriver attaches a driver to a booking and alerts both the driver
// and the customer.
func AssignDriver(db *gorm.DB, notifier *services.Notifier, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID := c.GetUint("linkedId")

		var input struct {
			BookingID uint `json:"bookingId" binding:"required"`
			DriverID  uint `json:"driverId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil {
			respondError(c, 404, "Booking not found")
			return
		}

		var driver models.Driver
		if err := db.First(&driver, input.DriverID).Error; err != nil {
			respondError(c, 404, "Driver not found")
			return
		}

		var customer models.Customer
		if err := db.First(&customer, booking.CustomerID).Error; err != nil {
			respondError(c, 404, "Customer not found")
			return
		}

		booking.DriverID = &driver.ID
		if err := db.Save(&booking).Error; err != nil {
			respondError(c, 500, "Failed to update booking")
			return
		}

		services.InvalidateBookingStatus(c.Request.Context(), booking.ID)

		notifier.Enqueue(services.BookingAlert{
			ReceiverID:   driver.ID,
			SenderID:     partnerID,
			Title:        "New Ride Assignment 🚗",
			Body:         fmt.Sprintf("You have been assigned to a new ride. Pickup at %s and drop-off at %s. Start time: %s.", booking.PickupLocation, booking.DropoffLocation, utils.FormatDisplayDate(booking.StartDate)),
			Type:         "driver",
			BookingID:    booking.ID,
			DeviceTokens: driver.DeviceTokens,
			Data: map[string]string{
				"bookingId":    fmt.Sprintf("%d", booking.ID),
				"click_action": "OPEN_DRIVER_BOOKING_REQUEST",
			},
		})
		notifier.Enqueue(services.BookingAlert{
			ReceiverID:   customer.ID,
			SenderID:     partnerID,
			Title:        fmt.Sprintf("Your Booking Confirmed, %s Assigned to Your Ride 🚖", driver.FullName),
			Body:         fmt.Sprintf("Your driver, %s, is on the way. Pickup at %s. Contact: %s.", driver.FullName, booking.PickupLocation, driver.PhoneNumber),
			Type:         "customer",
			BookingID:    booking.ID,
			DeviceTokens: customer.DeviceTokens,
			Data: map[string]string{
				"bookingId":    fmt.Sprintf("%d", booking.ID),
				"click_action": "CUSTOMER_CONFIRMED_NOTIFICATION",
			},
		})

		hub.SendBookingEvent("driver", driver.ID, "driver_assigned", booking.ID, booking)
		hub.SendBookingEvent("customer", customer.ID, "driver_assigned", booking.ID, booking)

		respondOK(c, 200, booking, "Booking updated successfully")
	}
}

// UpdateDriverStatus records the driver's acceptance or rejection of an
// assignment and notifies the customer.
func UpdateDriverStatus(db *gorm.DB, notifier *services.Notifier, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("linkedId")

		var input struct {
			BookingID       uint   `json:"bookingId" binding:"required"`
			DriverStatus    string `json:"driverStatus" binding:"required,oneof=accepted rejected"`
			RejectionReason string `json:"rejectionReason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil {
			respondError(c, 404, "Booking not found")
			return
		}

		var customer models.Customer
		if err := db.First(&customer, booking.CustomerID).Error; err != nil {
			respondError(c, 404, "Customer not found")
			return
		}

		var driver models.Driver
		if err := db.First(&driver, driverID).Error; err != nil {
			respondError(c, 404, "Driver not found")
			return
		}

		booking.DriverStatus = models.DriverStatus(input.DriverStatus)
		if booking.DriverStatus == models.DriverStatusRejected {
			booking.DriverRejectionReason = input.RejectionReason
		}
		booking.Status = models.DeriveStatus(booking.PartnerStatus, booking.DriverStatus, booking.PaymentStatus)
		if err := db.Save(&booking).Error; err != nil {
			respondError(c, 500, "Failed to update booking")
			return
		}

		services.InvalidateBookingStatus(c.Request.Context(), booking.ID)

		notifier.Enqueue(services.BookingAlert{
			ReceiverID:   customer.ID,
			SenderID:     driverID,
			Title:        fmt.Sprintf("Your Booking Confirmed, %s Assigned to Your Ride 🚖", driver.FullName),
			Body:         fmt.Sprintf("Your driver, %s, is on the way. Pickup at %s. Contact: %s.", driver.FullName, booking.PickupLocation, driver.PhoneNumber),
			Type:         "customer",
			BookingID:    booking.ID,
			DeviceTokens: customer.DeviceTokens,
			Data: map[string]string{
				"bookingId":    fmt.Sprintf("%d", booking.ID),
				"click_action": "CUSTOMER_CONFIRMED_NOTIFICATION",
			},
		})
		hub.SendBookingEvent("customer", customer.ID, "driver_status", booking.ID, booking)

		respondOK(c, 200, booking, "Booking updated successfully")
	}
}

// applyPaymentStatus is shared by the authenticated endpoint and the
// payment-gateway webhook. A completed payment books the rental; pending
// and refunded leave the overall status untouched.
func applyPaymentStatus(db *gorm.DB, bookingID uint, paymentStatus models.PaymentStatus) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		return nil, err
	}

	booking.PaymentStatus = paymentStatus
	if paymentStatus == models.PaymentStatusCompleted {
		booking.Status = models.BookingStatusBooked
	}
	if err := db.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingPaymentStatus applies a payment-processor result
func UpdateBookingPaymentStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			BookingID     uint   `json:"bookingId" binding:"required"`
			PaymentStatus string `json:"paymentStatus" binding:"required,oneof=pending completed refunded"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, 400, err.Error())
			return
		}

		booking, err := applyPaymentStatus(db, input.BookingID, models.PaymentStatus(input.PaymentStatus))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, 404, "Booking not found")
				return
			}
			respondError(c, 500, "Failed to update payment status")
			return
		}

		services.InvalidateBookingStatus(c.Request.Context(), booking.ID)
		hub.SendBookingEvent("customer", booking.CustomerID, "payment_status", booking.ID, booking)
		hub.SendBookingEvent("partner", booking.PartnerID, "payment_status", booking.ID, booking)

		respondOK(c, 200, booking, "Payment status updated successfully")
	}
}

// DeleteBookingsByDriver deletes bookings referencing a driver. The route
// reads delete/:driverId and the lookup is by driver reference, not
// booking id.
func DeleteBookingsByDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.Param("driverId")

		result := db.Where("driver_id = ?", driverID).Delete(&models.Booking{})
		if result.Error != nil {
			respondError(c, 500, "Failed to delete booking")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, 404, "Booking not found with the provided ID")
			return
		}

		respondOK(c, 200, gin.H{"deleted": result.RowsAffected}, "Booking deleted successfully")
	}
}
