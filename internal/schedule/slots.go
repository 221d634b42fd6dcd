package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Slot is a daily start time on the slot roster, independent of any particular day.
type Slot struct {
	Hour   int
	Minute int
}

// ParseSlot parses an "HH:MM" clock time. A trailing ":SS" of zero seconds is accepted.
func ParseSlot(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid slot %q: expected HH:MM", s)
	}
	if t.Second() != 0 {
		return Slot{}, fmt.Errorf("invalid slot %q: seconds must be zero", s)
	}
	return Slot{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// SlotOf returns the clock time of t in t's own location.
func SlotOf(t time.Time) Slot {
	return Slot{Hour: t.Hour(), Minute: t.Minute()}
}

// String returns the slot as "HH:MM".
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// On returns the slot's start time on the calendar day of day, in day's location.
func (s Slot) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, s.Hour, s.Minute, 0, 0, day.Location())
}

// Window returns the start and end of a one hour talk in this slot on day.
func (s Slot) Window(day time.Time) (start, end time.Time) {
	start = s.On(day)
	return start, start.Add(TalkDuration)
}

// MarshalText implements encoding.TextMarshaler.
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slot) UnmarshalText(b []byte) error {
	parsed, err := ParseSlot(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Roster is the fixed, ordered list of daily start times talks may be booked into.
type Roster []Slot

// DefaultRoster is six one hour talks with transition breaks and a lunch after the third.
var DefaultRoster = Roster{
	{Hour: 10, Minute: 0},
	{Hour: 11, Minute: 10},
	{Hour: 12, Minute: 20},
	{Hour: 14, Minute: 20},
	{Hour: 15, Minute: 30},
	{Hour: 16, Minute: 40},
}

// ParseRoster parses a comma separated list of HH:MM slots. Slots must be strictly increasing.
func ParseRoster(s string) (Roster, error) {
	var roster Roster
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		slot, err := ParseSlot(part)
		if err != nil {
			return nil, err
		}
		if n := len(roster); n > 0 && !roster[n-1].before(slot) {
			return nil, fmt.Errorf("slot roster must be strictly increasing: %s follows %s", slot, roster[n-1])
		}
		roster = append(roster, slot)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("slot roster is empty")
	}
	return roster, nil
}

// Contains reports whether slot is on the roster.
func (r Roster) Contains(slot Slot) bool {
	return r.indexOf(slot) >= 0
}

func (r Roster) indexOf(slot Slot) int {
	for i, s := range r {
		if s == slot {
			return i
		}
	}
	return -1
}

// String returns the roster in the same format ParseRoster accepts.
func (r Roster) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

func (s Slot) before(o Slot) bool {
	if s.Hour != o.Hour {
		return s.Hour < o.Hour
	}
	return s.Minute < o.Minute
}

// AvailableSlots returns the roster slots on day whose start time is not in booked,
// in roster order. Only exact start time collisions count as booked; end times and
// partial overlaps are not considered. An empty result means nothing can be booked.
func AvailableSlots(roster Roster, day time.Time, booked []time.Time) []Slot {
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Unix()] = struct{}{}
	}
	out := make([]Slot, 0, len(roster))
	for _, slot := range roster {
		if _, ok := taken[slot.On(day).Unix()]; ok {
			continue
		}
		out = append(out, slot)
	}
	return out
}
