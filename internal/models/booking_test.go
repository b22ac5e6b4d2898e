package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name    string
		aStart  string
		aEnd    string
		bStart  string
		bEnd    string
		overlap bool
	}{
		{"fully contained", "2024-05-01 10:00", "2024-05-03 10:00", "2024-05-01 12:00", "2024-05-02 12:00", true},
		{"partial overlap at end", "2024-05-01 10:00", "2024-05-03 10:00", "2024-05-02 09:00", "2024-05-04 09:00", true},
		{"partial overlap at start", "2024-05-02 09:00", "2024-05-04 09:00", "2024-05-01 10:00", "2024-05-03 10:00", true},
		{"identical intervals", "2024-05-01 10:00", "2024-05-03 10:00", "2024-05-01 10:00", "2024-05-03 10:00", true},
		{"touching boundary counts", "2024-05-01 10:00", "2024-05-03 10:00", "2024-05-03 10:00", "2024-05-05 10:00", true},
		{"disjoint before", "2024-05-01 10:00", "2024-05-02 10:00", "2024-05-03 10:00", "2024-05-04 10:00", false},
		{"disjoint after", "2024-05-05 10:00", "2024-05-06 10:00", "2024-05-01 10:00", "2024-05-04 10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalsOverlap(
				mustTime(t, tt.aStart), mustTime(t, tt.aEnd),
				mustTime(t, tt.bStart), mustTime(t, tt.bEnd),
			)
			assert.Equal(t, tt.overlap, got)
		})
	}
}

func TestDurationInDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		days  int
	}{
		{"exactly two days", "2024-05-01 10:00", "2024-05-03 10:00", 2},
		{"partial day rounds up", "2024-05-01 10:00", "2024-05-03 11:00", 3},
		{"under one day rounds up", "2024-05-01 10:00", "2024-05-01 12:00", 1},
		{"one week", "2024-05-01 00:00", "2024-05-08 00:00", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, DurationInDays(mustTime(t, tt.start), mustTime(t, tt.end)))
		})
	}
}

func TestBookingBeforeSaveRecomputesDuration(t *testing.T) {
	booking := Booking{
		StartDate:      mustTime(t, "2024-05-01 10:00"),
		EndDate:        mustTime(t, "2024-05-04 11:00"),
		DurationInDays: 999, // caller-supplied value must be overwritten
	}

	require.NoError(t, booking.BeforeSave(nil))
	assert.Equal(t, 4, booking.DurationInDays)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		partner PartnerStatus
		driver  DriverStatus
		payment PaymentStatus
		want    BookingStatus
	}{
		{"everything pending", PartnerStatusPending, DriverStatusPending, PaymentStatusPending, BookingStatusPending},
		{"partner rejected cancels", PartnerStatusRejected, DriverStatusAccepted, PaymentStatusPending, BookingStatusCancelled},
		{"driver rejected cancels", PartnerStatusConfirmed, DriverStatusRejected, PaymentStatusPending, BookingStatusCancelled},
		{"rejection beats completed payment", PartnerStatusRejected, DriverStatusAccepted, PaymentStatusCompleted, BookingStatusCancelled},
		{"completed payment books", PartnerStatusPending, DriverStatusPending, PaymentStatusCompleted, BookingStatusBooked},
		{"approved both sides is ongoing", PartnerStatusConfirmed, DriverStatusAccepted, PaymentStatusPending, BookingStatusOngoing},
		{"refund leaves pending", PartnerStatusPending, DriverStatusPending, PaymentStatusRefunded, BookingStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.partner, tt.driver, tt.payment))
		})
	}
}
