package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 1, h, m, 0, 0, time.UTC)
}

func talks(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("talk-%d", i)
	}
	return out
}

func TestLayoutDay_FourTalks(t *testing.T) {
	got := LayoutDay(at(10, 0), talks(4))

	want := []Entry[string]{
		{Kind: KindTalk, Item: "talk-0", StartTime: at(10, 0), EndTime: at(11, 0)},
		{Kind: KindTransition, StartTime: at(11, 0), EndTime: at(11, 10)},
		{Kind: KindTalk, Item: "talk-1", StartTime: at(11, 10), EndTime: at(12, 10)},
		{Kind: KindTransition, StartTime: at(12, 10), EndTime: at(12, 20)},
		{Kind: KindTalk, Item: "talk-2", StartTime: at(12, 20), EndTime: at(13, 20)},
		{Kind: KindLunch, StartTime: at(13, 20), EndTime: at(14, 20)},
		{Kind: KindTalk, Item: "talk-3", StartTime: at(14, 20), EndTime: at(15, 20)},
	}
	require.Equal(t, want, got)
}

func TestLayoutDay_SixTalksMatchDefaultRoster(t *testing.T) {
	day := at(0, 0)
	entries := Talks(LayoutDay(DefaultRoster[0].On(day), talks(6)))
	require.Len(t, entries, len(DefaultRoster))
	for i, e := range entries {
		assert.Equal(t, DefaultRoster[i].On(day), e.StartTime, "talk %d", i)
		assert.Equal(t, TalkDuration, e.EndTime.Sub(e.StartTime))
	}
}

func TestLayoutDay_Properties(t *testing.T) {
	start := at(9, 30)
	for n := 0; n <= 8; n++ {
		t.Run(fmt.Sprintf("%d talks", n), func(t *testing.T) {
			entries := LayoutDay(start, talks(n))
			if n == 0 {
				require.Empty(t, entries)
				return
			}
			require.Len(t, entries, 2*n-1)
			assert.Equal(t, KindTalk, entries[len(entries)-1].Kind, "no trailing break")

			lunches := 0
			talkIdx := 0
			for i, e := range entries {
				assert.True(t, e.StartTime.Before(e.EndTime))
				if i > 0 {
					assert.Equal(t, entries[i-1].EndTime, e.StartTime, "entries are contiguous")
				}
				switch e.Kind {
				case KindTalk:
					assert.Equal(t, fmt.Sprintf("talk-%d", talkIdx), e.Item)
					assert.Equal(t, time.Hour, e.EndTime.Sub(e.StartTime))
					talkIdx++
				case KindLunch:
					lunches++
					assert.Equal(t, 3, talkIdx, "lunch follows the third talk")
					assert.Equal(t, LunchDuration, e.EndTime.Sub(e.StartTime))
				case KindTransition:
					assert.NotEqual(t, 3, talkIdx)
					assert.Equal(t, TransitionDuration, e.EndTime.Sub(e.StartTime))
				}
			}
			if n > 3 {
				assert.Equal(t, 1, lunches)
			} else {
				assert.Zero(t, lunches)
			}
			for k, e := range Talks(entries)[1:] {
				prev := Talks(entries)[k]
				assert.True(t, e.StartTime.After(prev.EndTime), "talk %d starts after talk %d ends", k+1, k)
			}
		})
	}
}

func TestLayoutDay_Idempotent(t *testing.T) {
	in := talks(5)
	first := LayoutDay(at(10, 0), in)
	second := LayoutDay(at(10, 0), in)
	require.Equal(t, first, second)
	require.Equal(t, talks(5), in, "input is not modified")
}

func TestEntry_IsBreak(t *testing.T) {
	assert.False(t, Entry[string]{Kind: KindTalk}.IsBreak())
	assert.True(t, Entry[string]{Kind: KindLunch}.IsBreak())
	assert.True(t, Entry[string]{Kind: KindTransition}.IsBreak())
}

type booking struct {
	name  string
	start time.Time
}

func bookingWindow(b booking) (time.Time, time.Time) {
	return b.start, b.start.Add(TalkDuration)
}

func TestLayoutBooked(t *testing.T) {
	tests := []struct {
		name     string
		bookings []booking
		want     []Entry[booking]
	}{
		{
			name: "empty day",
			want: []Entry[booking]{},
		},
		{
			name:     "gap keeps stored times and emits no break",
			bookings: []booking{{"late", at(16, 40)}, {"early", at(10, 0)}},
			want: []Entry[booking]{
				{Kind: KindTalk, Item: booking{"early", at(10, 0)}, StartTime: at(10, 0), EndTime: at(11, 0)},
				{Kind: KindTalk, Item: booking{"late", at(16, 40)}, StartTime: at(16, 40), EndTime: at(17, 40)},
			},
		},
		{
			name:     "adjacent slots around lunch",
			bookings: []booking{{"b", at(14, 20)}, {"a", at(12, 20)}, {"c", at(15, 30)}},
			want: []Entry[booking]{
				{Kind: KindTalk, Item: booking{"a", at(12, 20)}, StartTime: at(12, 20), EndTime: at(13, 20)},
				{Kind: KindLunch, StartTime: at(13, 20), EndTime: at(14, 20)},
				{Kind: KindTalk, Item: booking{"b", at(14, 20)}, StartTime: at(14, 20), EndTime: at(15, 20)},
				{Kind: KindTransition, StartTime: at(15, 20), EndTime: at(15, 30)},
				{Kind: KindTalk, Item: booking{"c", at(15, 30)}, StartTime: at(15, 30), EndTime: at(16, 30)},
			},
		},
		{
			name:     "off roster talk gets no break",
			bookings: []booking{{"a", at(10, 0)}, {"x", at(11, 5)}},
			want: []Entry[booking]{
				{Kind: KindTalk, Item: booking{"a", at(10, 0)}, StartTime: at(10, 0), EndTime: at(11, 0)},
				{Kind: KindTalk, Item: booking{"x", at(11, 5)}, StartTime: at(11, 5), EndTime: at(12, 5)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LayoutBooked(DefaultRoster, tt.bookings, bookingWindow)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutBooked_FullDayMatchesLayoutDay(t *testing.T) {
	day := at(0, 0)
	bookings := make([]booking, len(DefaultRoster))
	for i, s := range DefaultRoster {
		bookings[i] = booking{name: fmt.Sprintf("talk-%d", i), start: s.On(day)}
	}
	booked := LayoutBooked(DefaultRoster, bookings, bookingWindow)
	laid := LayoutDay(DefaultRoster[0].On(day), bookings)
	require.Len(t, booked, len(laid))
	for i := range laid {
		assert.Equal(t, laid[i].Kind, booked[i].Kind, "entry %d", i)
		assert.Equal(t, laid[i].StartTime, booked[i].StartTime, "entry %d", i)
		assert.Equal(t, laid[i].EndTime, booked[i].EndTime, "entry %d", i)
	}
}
