package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingTime(t *testing.T) {
	parsed, err := ParseBookingTime("02/05/2024 09:30")
	require.NoError(t, err)

	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.May, parsed.Month())
	assert.Equal(t, 2, parsed.Day())
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
}

func TestParseBookingTimeRejectsISO(t *testing.T) {
	_, err := ParseBookingTime("2024-05-02T09:30:00Z")
	assert.Error(t, err)
}

func TestFormatDisplayDate(t *testing.T) {
	date := time.Date(2024, time.May, 3, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "May-03-2024", FormatDisplayDate(date))
}
