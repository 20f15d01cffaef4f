package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/digitalpersonal/guarafood-app-sub001/entity"
)

// IsOpen evaluates the restaurant's operating-hours schedule against now.
// Overnight shifts (close below open) count as open from their start until
// their close on the next day. Missing or malformed schedule data fails
// open: the storefront would rather accept an order than refuse one over
// bad reference data.
func IsOpen(r *entity.Restaurant, now time.Time) bool {
	if r == nil {
		return true
	}
	if !r.Hours.Empty() {
		return weeklyOpen(r.Hours, now)
	}
	if r.OpeningTime != "" && r.ClosingTime != "" {
		return flatOpen(r.OpeningTime, r.ClosingTime, now)
	}
	return true
}

func weeklyOpen(w *entity.WeeklyHours, now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()

	for _, sh := range w.Day(now.Weekday()) {
		open, ok1 := parseClock(sh.Open)
		close, ok2 := parseClock(sh.Close)
		if !ok1 || !ok2 {
			return true
		}
		if close >= open {
			if minute >= open && minute < close {
				return true
			}
		} else if minute >= open || minute < close {
			// Shift spans midnight: still open past 24:00 on the raw
			// comparison, and during the early-morning spillover.
			return true
		}
	}

	// A shift carried over from yesterday's overnight window.
	yesterday := (now.Weekday() + 6) % 7
	for _, sh := range w.Day(yesterday) {
		open, ok1 := parseClock(sh.Open)
		close, ok2 := parseClock(sh.Close)
		if !ok1 || !ok2 {
			return true
		}
		if close < open && minute < close {
			return true
		}
	}
	return false
}

func flatOpen(openStr, closeStr string, now time.Time) bool {
	open, ok1 := parseClock(openStr)
	close, ok2 := parseClock(closeStr)
	if !ok1 || !ok2 {
		return true
	}
	minute := now.Hour()*60 + now.Minute()
	if close >= open {
		return minute >= open && minute < close
	}
	return minute >= open || minute < close
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
