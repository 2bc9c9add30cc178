package helper

import (
	"math/rand"
	"room_booking/apperror"
	"room_booking/model"
	"room_booking/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*3600)

func TestNormalizeSlotClockTimes(t *testing.T) {
	slot, err := NormalizeSlot(SlotRequest{Date: "2025-06-02", Start: "09:00", End: "10:30"}, ict)
	require.NoError(t, err)
	require.Equal(t, "2025-06-02", slot.Date.String())
	require.Equal(t, "09:00:00", slot.Start.String())
	require.Equal(t, "10:30:00", slot.End.String())
}

func TestNormalizeSlotTimestampsConvertToZone(t *testing.T) {
	slot, err := NormalizeSlot(SlotRequest{
		Start: "2025-06-02T02:00:00Z",
		End:   "2025-06-02T03:15:00Z",
	}, ict)
	require.NoError(t, err)
	require.Equal(t, "2025-06-02", slot.Date.String())
	require.Equal(t, "09:00:00", slot.Start.String())
	require.Equal(t, "10:15:00", slot.End.String())
}

func TestNormalizeSlotTimestampWinsOverFallback(t *testing.T) {
	slot, err := NormalizeSlot(SlotRequest{
		Start:        "2025-06-03T09:00:00+07:00",
		End:          "11:00",
		FallbackDate: "2025-06-02",
	}, ict)
	require.NoError(t, err)
	require.Equal(t, "2025-06-03", slot.Date.String())
}

func TestNormalizeSlotRejects(t *testing.T) {
	cases := map[string]SlotRequest{
		"end before start":   {Date: "2025-06-02", Start: "10:00", End: "09:00"},
		"zero length":        {Date: "2025-06-02", Start: "10:00", End: "10:00"},
		"missing date":       {Start: "09:00", End: "10:00"},
		"bad date":           {Date: "02/06/2025", Start: "09:00", End: "10:00"},
		"bad start":          {Date: "2025-06-02", Start: "nine", End: "10:00"},
		"spans two dates":    {Start: "2025-06-02T23:00:00+07:00", End: "2025-06-03T01:00:00+07:00"},
		"date contradiction": {Date: "2025-06-01", Start: "2025-06-02T09:00:00+07:00", End: "10:00"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeSlot(req, ict)
			require.Error(t, err)
			require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestOverlapsTouchingIntervalsDoNotConflict(t *testing.T) {
	day, _ := utils.ParseDate("2025-06-02")
	booked := model.Slot{Date: day, Start: clock(t, "09:00"), End: clock(t, "10:00")}

	require.True(t, Overlaps(booked, model.Slot{Date: day, Start: clock(t, "09:30"), End: clock(t, "10:30")}))
	require.False(t, Overlaps(booked, model.Slot{Date: day, Start: clock(t, "10:00"), End: clock(t, "11:00")}))
	require.False(t, Overlaps(booked, model.Slot{Date: day, Start: clock(t, "08:00"), End: clock(t, "09:00")}))

	other, _ := utils.ParseDate("2025-06-03")
	require.False(t, Overlaps(booked, model.Slot{Date: other, Start: clock(t, "09:30"), End: clock(t, "10:30")}))
}

// Compares Overlaps with a minute by minute occupancy check.
func TestOverlapsMatchesOccupancy(t *testing.T) {
	day, _ := utils.ParseDate("2025-06-02")
	rng := rand.New(rand.NewSource(7))
	random := func() model.Slot {
		a := rng.Intn(24 * 60)
		b := rng.Intn(24 * 60)
		for a == b {
			b = rng.Intn(24 * 60)
		}
		if a > b {
			a, b = b, a
		}
		return model.Slot{Date: day, Start: utils.ClockTime(a * 60), End: utils.ClockTime(b * 60)}
	}
	for i := 0; i < 2000; i++ {
		x, y := random(), random()
		shared := false
		for m := int(x.Start) / 60; m < int(x.End)/60; m++ {
			if m >= int(y.Start)/60 && m < int(y.End)/60 {
				shared = true
				break
			}
		}
		require.Equal(t, shared, Overlaps(x, y), "x=%v-%v y=%v-%v", x.Start, x.End, y.Start, y.End)
		require.Equal(t, Overlaps(x, y), Overlaps(y, x))
	}
}

func clock(t *testing.T, s string) utils.ClockTime {
	t.Helper()
	c, err := utils.ParseClock(s)
	require.NoError(t, err)
	return c
}
