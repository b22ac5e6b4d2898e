package utils

import "time"

// Mobile clients submit pickup/return times as "DD/MM/YYYY HH:mm".
const bookingTimeLayout = "02/01/2006 15:04"

// Listing endpoints return dates as e.g. "Jan-02-2006".
const displayDateLayout = "Jan-02-2006"

func ParseBookingTime(value string) (time.Time, error) {
	return time.Parse(bookingTimeLayout, value)
}

func FormatDisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}
