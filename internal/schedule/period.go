// Package schedule implements the calendar core: week/day period windowing
// and the time-slot grid the views render.
package schedule

import (
	"fmt"
	"time"
)

// View selects the calendar layout.
type View string

const (
	ViewWeek View = "week"
	ViewDay  View = "day"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool { return v == ViewWeek || v == ViewDay }

// Working hours of the salon; one grid row per entry and the selectable
// hour set of the time picker.
const (
	firstHour = 9
	lastHour  = 19
)

// Hours returns the grid's row axis, "09:00".."19:00".
func Hours() []string {
	out := make([]string, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}

// HourValues returns the selectable hour strings for the time picker.
func HourValues() []string {
	out := make([]string, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		out = append(out, fmt.Sprintf("%02d", h))
	}
	return out
}

// MinuteValues returns the selectable minute strings, 5-minute granularity.
func MinuteValues() []string {
	out := make([]string, 0, 12)
	for m := 0; m < 60; m += 5 {
		out = append(out, fmt.Sprintf("%02d", m))
	}
	return out
}

// Russian month names in the genitive case, as the period label uses them.
var months = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Short weekday headers for the week grid, Monday first.
var daysShort = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// StartOfWeek returns the Monday of the ISO week containing t, at midnight
// in t's location. Sunday counts as day 7, not 0.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -(wd - 1))
}

// ISODate renders t's calendar day as YYYY-MM-DD. Uses the date in t's own
// location; a UTC conversion here would shift the day near midnight.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseISODate parses a YYYY-MM-DD string in the given location.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

// FormatWeekRange renders the week label, e.g. "3–9 июня 2024".
// Month and year follow the week's last day, as the original label did.
func FormatWeekRange(t time.Time) string {
	start := StartOfWeek(t)
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%d–%d %s %d", start.Day(), end.Day(), months[end.Month()-1], end.Year())
}

// FormatDay renders the day label, e.g. "3 июня 2024".
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// DayShort returns the two-letter weekday header for t.
func DayShort(t time.Time) string {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return daysShort[wd-1]
}

// Period is the active calendar window: a view plus its anchor date. The
// effective range of a week period is always Monday–Sunday around the
// anchor; a day period covers the anchor alone.
type Period struct {
	View   View
	Anchor time.Time
}

// NewPeriod builds a period anchored at t's calendar day.
func NewPeriod(view View, t time.Time) Period {
	if !view.Valid() {
		view = ViewWeek
	}
	year, month, day := t.Date()
	return Period{View: view, Anchor: time.Date(year, month, day, 0, 0, 0, 0, t.Location())}
}

// WithView keeps the anchor and switches the layout.
func (p Period) WithView(view View) Period {
	return NewPeriod(view, p.Anchor)
}

// Next shifts the anchor forward by one period (7 days or 1 day).
func (p Period) Next() Period {
	return NewPeriod(p.View, p.Anchor.AddDate(0, 0, p.step()))
}

// Prev shifts the anchor back by one period.
func (p Period) Prev() Period {
	return NewPeriod(p.View, p.Anchor.AddDate(0, 0, -p.step()))
}

func (p Period) step() int {
	if p.View == ViewDay {
		return 1
	}
	return 7
}

// Days lists the calendar days in view: 7 for a week, 1 for a day.
func (p Period) Days() []time.Time {
	if p.View == ViewDay {
		return []time.Time{p.Anchor}
	}
	start := StartOfWeek(p.Anchor)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// Range returns the inclusive fetch window as ISO date strings. Endpoints
// always cross the data-fetching boundary in this form.
func (p Period) Range() (dateFrom, dateTo string) {
	days := p.Days()
	return ISODate(days[0]), ISODate(days[len(days)-1])
}

// Label renders the human-readable period caption.
func (p Period) Label() string {
	if p.View == ViewDay {
		return FormatDay(p.Anchor)
	}
	return FormatWeekRange(p.Anchor)
}
