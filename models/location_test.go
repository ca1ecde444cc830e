package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-01-15 is a Monday.
func monday(hhmm string) time.Time {
	ts, _ := time.Parse("2006-01-02 15:04", "2024-01-15 "+hhmm)
	return ts
}

func TestOperatingHoursIsOpenAt(t *testing.T) {
	hours := OperatingHours{
		"monday":  {Open: "09:00", Close: "18:00", IsOpen: true},
		"tuesday": {Open: "09:00", Close: "18:00", IsOpen: false},
	}

	assert.True(t, hours.IsOpenAt(monday("09:00")))
	assert.True(t, hours.IsOpenAt(monday("12:30")))
	assert.True(t, hours.IsOpenAt(monday("18:00")))
	assert.False(t, hours.IsOpenAt(monday("08:59")))
	assert.False(t, hours.IsOpenAt(monday("18:01")))

	// tuesday is marked closed
	assert.False(t, hours.IsOpenAt(monday("12:00").AddDate(0, 0, 1)))
	// wednesday has no entry at all
	assert.False(t, hours.IsOpenAt(monday("12:00").AddDate(0, 0, 2)))
}

func TestOperatingHoursNextOpening(t *testing.T) {
	hours := OperatingHours{
		"monday":   {Open: "09:00", Close: "18:00", IsOpen: true},
		"thursday": {Open: "10:00", Close: "17:00", IsOpen: true},
	}

	// before monday opening: today still counts
	day, open, ok := hours.NextOpening(monday("07:00"))
	assert.True(t, ok)
	assert.Equal(t, "Monday", day)
	assert.Equal(t, "09:00", open)

	// after monday opening: skip to thursday
	day, open, ok = hours.NextOpening(monday("09:30"))
	assert.True(t, ok)
	assert.Equal(t, "Thursday", day)
	assert.Equal(t, "10:00", open)
}

func TestOperatingHoursNextOpeningNoneScheduled(t *testing.T) {
	hours := OperatingHours{
		"sunday": {Open: "09:00", Close: "18:00", IsOpen: false},
	}
	_, _, ok := hours.NextOpening(monday("12:00"))
	assert.False(t, ok)
}

func TestGeoPointOrder(t *testing.T) {
	p := NewGeoPoint(77.5946, 12.9716)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, 77.5946, p.Lng())
	assert.Equal(t, 12.9716, p.Lat())
	assert.Equal(t, []float64{77.5946, 12.9716}, p.Coordinates)
}
