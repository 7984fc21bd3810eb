package schedule

import (
	"time"

	"github.com/grooming-is/schedule-web/internal/groomapi"
)

// Grid is the rendered time-slot matrix for one period: a row per working
// hour, a column per day in view, bookings stacked inside matching cells.
// It is a pure snapshot; every navigation rebuilds it from scratch.
type Grid struct {
	Period Period
	Days   []time.Time
	Hours  []string

	cells map[string][]groomapi.Booking
}

func cellKey(dateISO, hour string) string {
	return dateISO + " " + hour
}

// BuildGrid places bookings into cells. A booking lands in the single cell
// matching its date and its start hour; bookings outside the visible dates
// or the working-hour axis are dropped. A non-empty masterFilter hides
// bookings of other masters; the fetch itself is never re-scoped by it.
func BuildGrid(p Period, bookings []groomapi.Booking, masterFilter groomapi.ID) *Grid {
	g := &Grid{
		Period: p,
		Days:   p.Days(),
		Hours:  Hours(),
		cells:  make(map[string][]groomapi.Booking),
	}

	visible := make(map[string]bool, len(g.Days))
	for _, d := range g.Days {
		visible[ISODate(d)] = true
	}

	for _, b := range bookings {
		if masterFilter != "" && b.MasterID != masterFilter {
			continue
		}
		if !visible[b.Date] {
			continue
		}
		hour := startHourLabel(b.StartTime)
		if hour == "" {
			continue
		}
		key := cellKey(b.Date, hour)
		g.cells[key] = append(g.cells[key], b)
	}

	return g
}

// startHourLabel maps a booking's "HH:MM" start onto its hour row, or ""
// when the hour lies outside the grid axis. An order may start at 10:05;
// it is drawn in the 10:00 row.
func startHourLabel(startTime string) string {
	if len(startTime) < 5 || startTime[2] != ':' {
		return ""
	}
	hh := startTime[:2]
	if hh < "09" || hh > "19" {
		return ""
	}
	return hh + ":00"
}

// At returns the bookings stacked in the cell for (day, hour label).
func (g *Grid) At(day time.Time, hour string) []groomapi.Booking {
	return g.cells[cellKey(ISODate(day), hour)]
}

// AtISO is At keyed by an ISO date string.
func (g *Grid) AtISO(dateISO, hour string) []groomapi.Booking {
	return g.cells[cellKey(dateISO, hour)]
}

// Total counts the bookings drawn on the grid after filtering.
func (g *Grid) Total() int {
	n := 0
	for _, cell := range g.cells {
		n += len(cell)
	}
	return n
}
