// Package schedule lays out a day of talks and computes which roster slots are still free.
// Everything here is a pure function over its inputs.
package schedule

import (
	"sort"
	"time"
)

// Durations used when laying out a day.
const (
	TalkDuration       = time.Hour
	LunchDuration      = time.Hour
	TransitionDuration = 10 * time.Minute

	// lunchAfterIndex is the zero-based index of the talk after which lunch is served.
	lunchAfterIndex = 2
)

// EntryKind distinguishes talks from breaks in a laid out day.
type EntryKind string

const (
	KindTalk       EntryKind = "talk"
	KindLunch      EntryKind = "lunch"
	KindTransition EntryKind = "transition"
)

// Entry is one window in a laid out day. Item is the caller's talk value for KindTalk
// entries and the zero value for breaks.
type Entry[T any] struct {
	Kind      EntryKind `json:"kind"`
	Item      T         `json:"item,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// IsBreak reports whether the entry is a lunch or transition break.
func (e Entry[T]) IsBreak() bool {
	return e.Kind == KindLunch || e.Kind == KindTransition
}

// LayoutDay assigns each talk a one hour window starting at dayStart, in the given order.
// A lunch break follows the third talk when more talks remain; every other pair of
// consecutive talks is separated by a transition break. No break follows the last talk.
func LayoutDay[T any](dayStart time.Time, talks []T) []Entry[T] {
	if len(talks) == 0 {
		return []Entry[T]{}
	}
	out := make([]Entry[T], 0, 2*len(talks)-1)
	cursor := dayStart
	for i, talk := range talks {
		end := cursor.Add(TalkDuration)
		out = append(out, Entry[T]{Kind: KindTalk, Item: talk, StartTime: cursor, EndTime: end})
		cursor = end

		if i == len(talks)-1 {
			break
		}
		kind, d := KindTransition, TransitionDuration
		if i == lunchAfterIndex {
			kind, d = KindLunch, LunchDuration
		}
		out = append(out, Entry[T]{Kind: kind, StartTime: cursor, EndTime: cursor.Add(d)})
		cursor = cursor.Add(d)
	}
	return out
}

// Talks returns only the talk entries of a laid out day, in order.
func Talks[T any](entries []Entry[T]) []Entry[T] {
	out := make([]Entry[T], 0, (len(entries)+1)/2)
	for _, e := range entries {
		if e.Kind == KindTalk {
			out = append(out, e)
		}
	}
	return out
}

// LayoutBooked places already booked talks at their own windows, ordered by start time.
// A break is emitted only between talks in adjacent roster slots: lunch after the third
// roster slot, a transition otherwise. Talks in non-adjacent slots, or off the roster,
// get no break between them.
func LayoutBooked[T any](roster Roster, talks []T, window func(T) (start, end time.Time)) []Entry[T] {
	type placed struct {
		item       T
		start, end time.Time
		idx        int
	}
	ps := make([]placed, len(talks))
	for i, t := range talks {
		start, end := window(t)
		ps[i] = placed{item: t, start: start, end: end, idx: roster.indexOf(SlotOf(start))}
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].start.Before(ps[j].start) })

	out := make([]Entry[T], 0, 2*len(ps))
	for i, p := range ps {
		if i > 0 {
			prev := ps[i-1]
			if prev.idx >= 0 && p.idx == prev.idx+1 && p.start.After(prev.end) {
				kind := KindTransition
				if prev.idx == lunchAfterIndex {
					kind = KindLunch
				}
				out = append(out, Entry[T]{Kind: kind, StartTime: prev.end, EndTime: p.start})
			}
		}
		out = append(out, Entry[T]{Kind: KindTalk, Item: p.item, StartTime: p.start, EndTime: p.end})
	}
	return out
}
