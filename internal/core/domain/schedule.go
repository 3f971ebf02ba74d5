package domain

import (
	"time"
)

// ScheduleEntry is one open window on a weekday. Times are "HH:MM" in the
// branch's local time; Close is strictly later than Open within the same day
// (enforced at import time, not re-checked here).
type ScheduleEntry struct {
	Day   time.Weekday `json:"day"`
	Open  string       `json:"open_time"`
	Close string       `json:"close_time"`
}

// WeeklySchedule is a branch's weekly open/close schedule, at most one entry
// per weekday. Days without an entry are closed all day.
type WeeklySchedule []ScheduleEntry

// ScheduleInfo describes the current window when open, or the next opening
// when closed. NextOpenDay/NextOpenTime are empty when the schedule has no
// entries at all; callers must not assume a next opening exists.
type ScheduleInfo struct {
	IsOpen       bool   `json:"is_open"`
	OpenTime     string `json:"open_time,omitempty"`
	CloseTime    string `json:"close_time,omitempty"`
	NextOpenDay  string `json:"next_open_day,omitempty"`
	NextOpenTime string `json:"next_open_time,omitempty"`
}

// entryFor returns the entry for a weekday, if any.
func (ws WeeklySchedule) entryFor(day time.Weekday) (ScheduleEntry, bool) {
	for _, e := range ws {
		if e.Day == day {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}

// IsOpenAt reports whether the schedule is open at the given instant.
// The window is half-open: [open, close).
func (ws WeeklySchedule) IsOpenAt(now time.Time) bool {
	e, ok := ws.entryFor(now.Weekday())
	if !ok {
		return false
	}
	hm := now.Format("15:04")
	return hm >= e.Open && hm < e.Close
}

// Resolve computes the open/closed state at the given instant. When closed it
// scans forward day by day, wrapping after Saturday, for at most 7 steps to
// find the next opening. The scan starts at tomorrow: if today's window has
// already closed, the same weekday a week out is a valid answer.
func (ws WeeklySchedule) Resolve(now time.Time) ScheduleInfo {
	if e, ok := ws.entryFor(now.Weekday()); ok {
		hm := now.Format("15:04")
		if hm >= e.Open && hm < e.Close {
			return ScheduleInfo{IsOpen: true, OpenTime: e.Open, CloseTime: e.Close}
		}
		// Today's window hasn't started yet.
		if hm < e.Open {
			return ScheduleInfo{
				NextOpenDay:  now.Weekday().String(),
				NextOpenTime: e.Open,
			}
		}
	}

	for step := 1; step <= 7; step++ {
		day := time.Weekday((int(now.Weekday()) + step) % 7)
		if e, ok := ws.entryFor(day); ok {
			return ScheduleInfo{
				NextOpenDay:  day.String(),
				NextOpenTime: e.Open,
			}
		}
	}

	// Never opens.
	return ScheduleInfo{}
}
