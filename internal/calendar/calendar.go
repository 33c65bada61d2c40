package calendar

import (
	"fmt"
	"time"
)

// DateWindow is a concrete historical range resolved from a requested day
// count. Start/End are second-precision epoch bounds for a range query.
type DateWindow struct {
	Start       int64
	End         int64
	CoveredDays int
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsMarketHoliday reports the fixed set of observed US market holidays.
// Fixed-date holidays are not shifted when they fall on a weekend.
func IsMarketHoliday(t time.Time) bool {
	month := t.Month()
	day := t.Day()
	year := t.Year()

	switch month {
	case time.January:
		return day == 1
	case time.July:
		return day == 4
	case time.December:
		return day == 25
	case time.November:
		// Thanksgiving: fourth Thursday
		first := time.Date(year, time.November, 1, 0, 0, 0, 0, t.Location())
		firstThursday := 1 + (int(time.Thursday)-int(first.Weekday())+7)%7
		return day == firstThursday+21
	case time.May:
		// Memorial Day: last Monday
		last := time.Date(year, time.June, 0, 0, 0, 0, 0, t.Location())
		offset := int(last.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		return day == last.Day()-offset
	case time.September:
		// Labor Day: first Monday
		first := time.Date(year, time.September, 1, 0, 0, 0, 0, t.Location())
		firstMonday := 1 + (int(time.Monday)-int(first.Weekday())+7)%7
		return day == firstMonday
	}
	return false
}

// IsTradingDay reports whether the market is open on the given date.
func IsTradingDay(t time.Time) bool {
	return !IsWeekend(t) && !IsMarketHoliday(t)
}

// MostRecentTradingDay walks backward from the given date until it lands on
// a trading day. Weekend/holiday runs are short, so the walk terminates
// within a few iterations.
func MostRecentTradingDay(from time.Time) time.Time {
	t := from
	for !IsTradingDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// ResolveWindow computes the optimal historical window for the requested
// number of days, anchored at now.
//
// In calendar-day mode the window is padded with a buffer so short windows
// still cover enough trading observations: 1.5x the requested days for
// requests of three days or fewer, 0.3x otherwise.
//
// In business-day mode the window ends on the most recent trading day and
// walks backward counting trading days. A one-day request is widened to two
// trading days so a chart always has a segment to draw. The walk gives up
// after requestedDays*4 calendar days to guarantee termination.
func ResolveWindow(requestedDays int, businessDays bool, now time.Time) DateWindow {
	if !businessDays {
		buffer := ceilMul(requestedDays, 0.3)
		if requestedDays <= 3 {
			buffer = ceilMul(requestedDays, 1.5)
		}
		start := now.AddDate(0, 0, -(requestedDays + buffer))
		return DateWindow{
			Start:       start.Unix(),
			End:         now.Unix(),
			CoveredDays: requestedDays + buffer,
		}
	}

	end := MostRecentTradingDay(now)

	if requestedDays == 1 {
		start := end
		for found := 0; found < 1; {
			start = start.AddDate(0, 0, -1)
			if IsTradingDay(start) {
				found++
			}
		}
		return DateWindow{Start: start.Unix(), End: end.Unix(), CoveredDays: 2}
	}

	start := end
	found := 0
	walked := 0
	for found < requestedDays {
		start = start.AddDate(0, 0, -1)
		walked++
		if IsTradingDay(start) {
			found++
		}
		if walked > requestedDays*4 {
			break
		}
	}
	return DateWindow{Start: start.Unix(), End: end.Unix(), CoveredDays: walked}
}

// DescribeWindow renders a human-readable label for a resolved window.
func DescribeWindow(requestedDays int, businessDays bool, w DateWindow) string {
	startStr := time.Unix(w.Start, 0).Format("Jan 2")
	endStr := time.Unix(w.End, 0).Format("Jan 2")

	if requestedDays == 1 {
		if businessDays {
			return fmt.Sprintf("Last business day (%s)", endStr)
		}
		return fmt.Sprintf("Last day (%s)", endStr)
	}

	dayType := "days"
	if businessDays {
		dayType = "business days"
	}
	return fmt.Sprintf("Last %d %s (%s - %s)", requestedDays, dayType, startStr, endStr)
}

func ceilMul(n int, k float64) int {
	v := float64(n) * k
	c := int(v)
	if v > float64(c) {
		c++
	}
	return c
}
