package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidTime     = errors.New("time must be in HH:MM format")
	ErrInvalidRange    = errors.New("end time must be after start time")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

const clockLayout = "15:04"

// Verification calls are offered every 30 minutes between 15:00 and 18:00.
const (
	VerificationCallStart    = "15:00"
	VerificationCallEnd      = "18:00"
	VerificationCallDuration = 30
)

// GenerateSlots returns HH:MM slot starts from start at durationMinutes steps.
// A slot is emitted only if it ends at or before end, so a window shorter than
// one duration yields no slots. Arithmetic is local wall clock.
func GenerateSlots(start, end string, durationMinutes int) ([]string, error) {
	from, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseClock(end)
	if err != nil {
		return nil, err
	}
	if to <= from {
		return nil, ErrInvalidRange
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	slots := make([]string, 0, (to-from)/durationMinutes)
	for cur := from; cur+durationMinutes <= to; cur += durationMinutes {
		slots = append(slots, FormatClock(cur))
	}
	return slots, nil
}

// VerificationCallSlots lists the slots offered for the verification call.
func VerificationCallSlots() []string {
	slots, _ := GenerateSlots(VerificationCallStart, VerificationCallEnd, VerificationCallDuration)
	return slots
}

// ParseClock returns minutes since midnight for a zero-padded HH:MM string.
func ParseClock(s string) (int, error) {
	if len(s) != len(clockLayout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MergeSlots unions two slot lists, dropping duplicates, in ascending order.
func MergeSlots(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				merged = append(merged, s)
			}
		}
	}
	sort.Strings(merged)
	return merged
}

// RemoveSlot returns slots without the given one and whether it was present.
func RemoveSlot(slots []string, slot string) ([]string, bool) {
	out := make([]string, 0, len(slots))
	found := false
	for _, s := range slots {
		if s == slot {
			found = true
			continue
		}
		out = append(out, s)
	}
	return out, found
}

// Contains reports whether slot is one of slots.
func Contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
