package domain_test

import (
	"testing"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// at builds a time on a fixed week where the weekday is known.
// 2024-01-01 is a Monday.
func at(day time.Weekday, hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		panic(err)
	}
	base := time.Date(2024, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
	offset := (int(day) - int(time.Monday) + 7) % 7
	return base.AddDate(0, 0, offset)
}

func mondayOnly() domain.WeeklySchedule {
	return domain.WeeklySchedule{
		{Day: time.Monday, Open: "08:00", Close: "17:00"},
	}
}

func TestResolve_OpenWithinWindow(t *testing.T) {
	info := mondayOnly().Resolve(at(time.Monday, "10:00"))
	if !info.IsOpen {
		t.Fatal("expected open at Monday 10:00")
	}
	if info.OpenTime != "08:00" || info.CloseTime != "17:00" {
		t.Errorf("expected window 08:00-17:00, got %s-%s", info.OpenTime, info.CloseTime)
	}
}

func TestResolve_ClosedAfterWindow_NextWeek(t *testing.T) {
	info := mondayOnly().Resolve(at(time.Monday, "20:00"))
	if info.IsOpen {
		t.Fatal("expected closed at Monday 20:00")
	}
	if info.NextOpenDay != "Monday" {
		t.Errorf("expected next open Monday, got %q", info.NextOpenDay)
	}
	if info.NextOpenTime != "08:00" {
		t.Errorf("expected next open 08:00, got %q", info.NextOpenTime)
	}
}

func TestResolve_ClosedBeforeWindow_SameDay(t *testing.T) {
	info := mondayOnly().Resolve(at(time.Monday, "06:30"))
	if info.IsOpen {
		t.Fatal("expected closed at Monday 06:30")
	}
	if info.NextOpenDay != "Monday" || info.NextOpenTime != "08:00" {
		t.Errorf("expected Monday 08:00, got %s %s", info.NextOpenDay, info.NextOpenTime)
	}
}

func TestResolve_ClosedOtherDay_ScansForward(t *testing.T) {
	info := mondayOnly().Resolve(at(time.Tuesday, "12:00"))
	if info.IsOpen {
		t.Fatal("expected closed on Tuesday")
	}
	if info.NextOpenDay != "Monday" {
		t.Errorf("expected scan to wrap to Monday, got %q", info.NextOpenDay)
	}
}

func TestResolve_EmptySchedule_NoNextOpen(t *testing.T) {
	var ws domain.WeeklySchedule
	info := ws.Resolve(at(time.Wednesday, "12:00"))
	if info.IsOpen {
		t.Fatal("expected closed for empty schedule")
	}
	if info.NextOpenDay != "" || info.NextOpenTime != "" {
		t.Errorf("expected no next opening, got %s %s", info.NextOpenDay, info.NextOpenTime)
	}
}

func TestIsOpenAt_Boundaries(t *testing.T) {
	ws := mondayOnly()

	if !ws.IsOpenAt(at(time.Monday, "08:00")) {
		t.Error("open time itself should count as open")
	}
	if ws.IsOpenAt(at(time.Monday, "17:00")) {
		t.Error("close time itself should count as closed (half-open window)")
	}
	if ws.IsOpenAt(at(time.Sunday, "12:00")) {
		t.Error("unscheduled day should be closed")
	}
}

func TestIsOpenAt_FullWeek(t *testing.T) {
	ws := domain.WeeklySchedule{
		{Day: time.Saturday, Open: "09:00", Close: "14:00"},
		{Day: time.Sunday, Open: "10:00", Close: "13:00"},
	}

	if !ws.IsOpenAt(at(time.Saturday, "09:30")) {
		t.Error("expected open Saturday morning")
	}

	// Friday evening: the next opening is Saturday, one step forward.
	info := ws.Resolve(at(time.Friday, "22:00"))
	if info.NextOpenDay != "Saturday" || info.NextOpenTime != "09:00" {
		t.Errorf("expected Saturday 09:00, got %s %s", info.NextOpenDay, info.NextOpenTime)
	}
}
