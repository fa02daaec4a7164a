package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SavedEvent is an event the user saved. Date uses the "January 2, 2006"
// layout and Time the "3:04 PM" layout.
type SavedEvent struct {
	ID    string
	Title string
	Date  string
	Time  string
}

// SavedEvents returns the user's saved events.
func SavedEvents() []SavedEvent {
	return []SavedEvent{
		{ID: "1", Title: "Tech Leaders Summit 2025", Date: "November 20, 2025", Time: "9:00 AM"},
		{ID: "2", Title: "Digital Marketing Conference", Date: "November 22, 2025", Time: "2:00 PM"},
		{ID: "3", Title: "Startup Networking Summit", Date: "November 25, 2025", Time: "6:00 PM"},
	}
}

const (
	savedDateLayout     = "January 2, 2006"
	savedDateTimeLayout = "January 2, 2006 3:04 PM"
)

// Start returns when the event begins in loc. A missing time means
// midnight.
func (e SavedEvent) Start(loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(e.Time) == "" {
		return time.ParseInLocation(savedDateLayout, e.Date, loc)
	}
	return time.ParseInLocation(savedDateTimeLayout, e.Date+" "+e.Time, loc)
}

// UpcomingSaved returns the earliest event starting after now. Events with
// unparsable dates are skipped.
func UpcomingSaved(events []SavedEvent, now time.Time) (SavedEvent, time.Time, bool) {
	type dated struct {
		ev    SavedEvent
		start time.Time
	}
	var upcoming []dated
	for _, ev := range events {
		start, err := ev.Start(now.Location())
		if err != nil || !start.After(now) {
			continue
		}
		upcoming = append(upcoming, dated{ev, start})
	}
	if len(upcoming) == 0 {
		return SavedEvent{}, time.Time{}, false
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].start.Before(upcoming[j].start)
	})
	return upcoming[0].ev, upcoming[0].start, true
}

// Countdown is the time left until an event, truncated to minutes.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
}

// IsZero reports whether nothing is left.
func (c Countdown) IsZero() bool {
	return c == Countdown{}
}

func (c Countdown) String() string {
	unit := func(n int, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}
	parts := make([]string, 0, 3)
	if c.Days > 0 {
		parts = append(parts, unit(c.Days, "day", "days"))
	}
	parts = append(parts, unit(c.Hours, "hour", "hours"), unit(c.Minutes, "minute", "minutes"))
	return strings.Join(parts, " ")
}

// ComputeCountdown returns the time left until the earliest upcoming event,
// or the zero Countdown when there is none.
func ComputeCountdown(events []SavedEvent, now time.Time) Countdown {
	_, start, ok := UpcomingSaved(events, now)
	if !ok {
		return Countdown{}
	}
	left := start.Sub(now)
	if left <= 0 {
		return Countdown{}
	}
	day := 24 * time.Hour
	return Countdown{
		Days:    int(left / day),
		Hours:   int(left % day / time.Hour),
		Minutes: int(left % time.Hour / time.Minute),
	}
}

// RunCountdown computes the countdown to the saved events immediately and
// then on every tick of interval, passing each value to fn. It returns when
// ctx is done. A nil clock means time.Now; a non-positive interval means one
// minute.
func RunCountdown(ctx context.Context, interval time.Duration, now func() time.Time, fn func(Countdown)) {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = time.Minute
	}
	events := SavedEvents()

	fn(ComputeCountdown(events, now()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ComputeCountdown(events, now()))
		}
	}
}
