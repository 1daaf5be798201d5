package entity

import (
	"fmt"
	"time"
)

// Slot is one bookable window on a doctor's daily grid.
type Slot struct {
	StartTime string
	Available bool
}

// ParseClock parses a wall-clock value into minutes since midnight. Postgres
// renders TIME columns as "HH:MM:SS", so both forms are accepted.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, err
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NormalizeClock reduces a clock string to its canonical "HH:MM" form, trimming
// the seconds component Postgres appends when a TIME column is read back.
func NormalizeClock(s string) string {
	if len(s) > 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// BuildSlots generates the ordered slot grid between startTime and endTime at the
// given granularity. A slot is unavailable when its start is in the taken set or,
// for same-day requests, when it starts at or before nowMinutes (pass a negative
// nowMinutes for future dates). A slot must fit entirely inside the working window.
func BuildSlots(startTime, endTime string, slotMinutes int, taken map[string]bool, nowMinutes int) ([]Slot, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot granularity must be positive, got %d", slotMinutes)
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return nil, fmt.Errorf("parse working-hours start %q: %w", startTime, err)
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return nil, fmt.Errorf("parse working-hours end %q: %w", endTime, err)
	}

	var slots []Slot
	for at := start; at+slotMinutes <= end; at += slotMinutes {
		clock := FormatClock(at)
		available := !taken[clock] && at > nowMinutes
		slots = append(slots, Slot{StartTime: clock, Available: available})
	}
	return slots, nil
}

// OnSlotGrid reports whether clock lands exactly on the doctor's slot grid and the
// slot fits inside the working window.
func OnSlotGrid(startTime, endTime string, slotMinutes int, clock string) (bool, error) {
	if slotMinutes <= 0 {
		return false, fmt.Errorf("slot granularity must be positive, got %d", slotMinutes)
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return false, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return false, err
	}
	at, err := ParseClock(clock)
	if err != nil {
		return false, err
	}
	if at < start || at+slotMinutes > end {
		return false, nil
	}
	return (at-start)%slotMinutes == 0, nil
}
