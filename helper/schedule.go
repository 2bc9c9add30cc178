package helper

import (
	"room_booking/apperror"
	"room_booking/model"
	"room_booking/utils"
	"strings"
	"time"
)

// SlotRequest is a booking interval as sent by a client. Start and End take
// "HH:MM", "HH:MM:SS" or an RFC 3339 timestamp. FallbackDate is used only
// when neither Date nor a timestamp supplies the date.
type SlotRequest struct {
	Date         string
	Start        string
	End          string
	FallbackDate string
}

type instant struct {
	clock utils.ClockTime
	date  *utils.CustomDate
}

// NormalizeSlot resolves a request into a single date with start and end
// clock times in loc. Intervals are half open, so End must be after Start.
func NormalizeSlot(req SlotRequest, loc *time.Location) (model.Slot, error) {
	start, err := parseInstant(req.Start, loc)
	if err != nil {
		return model.Slot{}, apperror.Validation("invalid startTime %q", req.Start)
	}
	end, err := parseInstant(req.End, loc)
	if err != nil {
		return model.Slot{}, apperror.Validation("invalid endTime %q", req.End)
	}

	var day *utils.CustomDate
	for _, d := range []*utils.CustomDate{start.date, end.date} {
		if d == nil {
			continue
		}
		if day != nil && !day.SameDay(*d) {
			return model.Slot{}, apperror.Validation("startTime and endTime must fall on the same date")
		}
		day = d
	}

	if strings.TrimSpace(req.Date) != "" {
		d, err := utils.ParseDate(req.Date)
		if err != nil {
			return model.Slot{}, apperror.Validation("invalid meetingDate %q", req.Date)
		}
		if day != nil && !day.SameDay(d) {
			return model.Slot{}, apperror.Validation("meetingDate does not match startTime and endTime")
		}
		day = &d
	}

	if day == nil && strings.TrimSpace(req.FallbackDate) != "" {
		d, err := utils.ParseDate(req.FallbackDate)
		if err != nil {
			return model.Slot{}, apperror.Validation("invalid meetingDate %q", req.FallbackDate)
		}
		day = &d
	}
	if day == nil {
		return model.Slot{}, apperror.Validation("meetingDate is required")
	}
	if end.clock <= start.clock {
		return model.Slot{}, apperror.Validation("endTime must be after startTime")
	}
	return model.Slot{Date: *day, Start: start.clock, End: end.clock}, nil
}

func parseInstant(s string, loc *time.Location) (instant, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		d := utils.DateOf(t)
		return instant{clock: utils.ClockOf(t), date: &d}, nil
	}
	c, err := utils.ParseClock(s)
	if err != nil {
		return instant{}, err
	}
	return instant{clock: c}, nil
}

// Overlaps reports whether two half open slots share any instant. Slots
// that only touch at an endpoint do not overlap.
func Overlaps(a, b model.Slot) bool {
	return a.Date.SameDay(b.Date) && a.Start < b.End && b.Start < a.End
}
