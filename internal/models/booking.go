package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PartnerStatus string

const (
	PartnerStatusPending   PartnerStatus = "pending"
	PartnerStatusConfirmed PartnerStatus = "confirmed"
	PartnerStatusRejected  PartnerStatus = "rejected"
)

type DriverStatus string

const (
	DriverStatusPending  DriverStatus = "pending"
	DriverStatusAccepted DriverStatus = "accepted"
	DriverStatusRejected DriverStatus = "rejected"
)

type Booking struct {
	gorm.Model
	Reference             string        `json:"reference" gorm:"column:reference;uniqueIndex;not null"`
	CustomerID            uint          `json:"customerId" gorm:"column:customer_id;not null;index"`
	Customer              *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CarID                 uint          `json:"carId" gorm:"column:car_id;not null;index"`
	Car                   *Car          `json:"car,omitempty" gorm:"foreignKey:CarID"`
	PartnerID             uint          `json:"partnerId" gorm:"column:partner_id;not null;index"`
	Partner               *Partner      `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	DriverID              *uint         `json:"driverId" gorm:"column:driver_id;index"`
	Driver                *Driver       `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	PickupLocation        string        `json:"pickupLocation" gorm:"column:pickup_location;not null"`
	DropoffLocation       string        `json:"dropoffLocation" gorm:"column:dropoff_location;not null"`
	StartDate             time.Time     `json:"startDate" gorm:"column:start_date;not null;index"`
	EndDate               time.Time     `json:"endDate" gorm:"column:end_date;not null"`
	DurationInDays        int           `json:"durationInDays" gorm:"column:duration_in_days;not null"`
	TotalAmount           float64       `json:"totalAmount" gorm:"column:total_amount;not null"`
	PaymentStatus         PaymentStatus `json:"paymentStatus" gorm:"column:payment_status;not null;default:pending"`
	Status                BookingStatus `json:"status" gorm:"column:status;not null;default:pending"`
	PartnerStatus         PartnerStatus `json:"partnerStatus" gorm:"column:partner_status;not null;default:pending"`
	DriverStatus          DriverStatus  `json:"driverStatus" gorm:"column:driver_status;not null;default:pending"`
	DriverRejectionReason string        `json:"driverRejectionReason,omitempty" gorm:"column:driver_rejection_reason"`
	Penalties             float64       `json:"penalties" gorm:"column:penalties;not null;default:0"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeSave recomputes the derived duration on every write so callers can
// never set it directly. Mirrors the one-day ceiling used for billing.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() {
		b.DurationInDays = DurationInDays(b.StartDate, b.EndDate)
	}
	return nil
}

// DurationInDays returns ceil((end - start) / 24h).
func DurationInDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// IntervalsOverlap reports whether [aStart, aEnd] intersects [bStart, bEnd].
// Boundaries count as overlap: a booking ending at 10:00 conflicts with one
// starting at 10:00, matching the storage-level exclusion constraint.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// DeriveStatus computes the overall booking status from the three
// independent actor statuses. The API never accepts status directly.
//
// Precedence: any rejection cancels the booking, a completed payment books
// it, full partner+driver approval puts it ongoing, otherwise pending.
func DeriveStatus(partnerStatus PartnerStatus, driverStatus DriverStatus, paymentStatus PaymentStatus) BookingStatus {
	switch {
	case partnerStatus == PartnerStatusRejected || driverStatus == DriverStatusRejected:
		return BookingStatusCancelled
	case paymentStatus == PaymentStatusCompleted:
		return BookingStatusBooked
	case partnerStatus == PartnerStatusConfirmed && driverStatus == DriverStatusAccepted:
		return BookingStatusOngoing
	default:
		return BookingStatusPending
	}
}
