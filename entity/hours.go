package entity

import "time"

// Shift is one open/close pair in "HH:MM" wall-clock strings. A close time
// numerically below the open time means the shift spans midnight.
type Shift struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours holds up to two shifts per weekday.
type WeeklyHours struct {
	Sunday    []Shift `json:"sunday,omitempty"`
	Monday    []Shift `json:"monday,omitempty"`
	Tuesday   []Shift `json:"tuesday,omitempty"`
	Wednesday []Shift `json:"wednesday,omitempty"`
	Thursday  []Shift `json:"thursday,omitempty"`
	Friday    []Shift `json:"friday,omitempty"`
	Saturday  []Shift `json:"saturday,omitempty"`
}

// Day returns the shifts for the given weekday.
func (w *WeeklyHours) Day(d time.Weekday) []Shift {
	if w == nil {
		return nil
	}
	switch d {
	case time.Sunday:
		return w.Sunday
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	}
	return nil
}

// Empty reports whether no weekday carries any shift.
func (w *WeeklyHours) Empty() bool {
	if w == nil {
		return true
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if len(w.Day(d)) > 0 {
			return false
		}
	}
	return true
}
