package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	assert.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	_, err = NewTimeStringFromString("9:30")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestMinutes(t *testing.T) {
	minutes, err := TimeString("10:45").Minutes()
	assert.NoError(t, err)
	assert.Equal(t, 645, minutes)

	minutes, err = TimeString("00:00").Minutes()
	assert.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = TimeString("garbage").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(30)
	assert.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	ts, err = TimeString("10:00").AddMinutes(-15)
	assert.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), ts)
}

func TestAddMinutes_DoesNotWrapMidnight(t *testing.T) {
	_, err := TimeString("23:50").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestOnDate(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	got := TimeString("14:30").OnDate(date)
	assert.Equal(t, time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC), got)

	// Невалидное время трактуется как полночь
	got = TimeString("oops").OnDate(date)
	assert.Equal(t, date, got)
}

func TestOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.True(t, TimeString("18:00").IsAfter("09:30"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}
