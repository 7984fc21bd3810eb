package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays", date(2024, time.June, 3), date(2024, time.June, 3)},
		{"wednesday", date(2024, time.June, 5), date(2024, time.June, 3)},
		{"sunday counts as day seven", date(2024, time.June, 9), date(2024, time.June, 3)},
		{"crosses month boundary", date(2024, time.March, 1), date(2024, time.February, 26)},
		{"crosses year boundary", date(2025, time.January, 1), date(2024, time.December, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if !got.Equal(tt.want) {
				t.Fatalf("StartOfWeek(%s) = %s, want %s", tt.in, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Fatalf("StartOfWeek(%s) = %s, not a Monday", tt.in, got.Weekday())
			}
			if again := StartOfWeek(got); !again.Equal(got) {
				t.Fatalf("StartOfWeek not idempotent: %s -> %s", got, again)
			}
		})
	}
}

func TestStartOfWeek_StripsClock(t *testing.T) {
	in := time.Date(2024, time.June, 5, 18, 45, 12, 0, time.Local)
	got := StartOfWeek(in)
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight, got %s", got)
	}
}

func TestPeriodDays_WeekSpansSevenConsecutiveDays(t *testing.T) {
	p := NewPeriod(ViewWeek, date(2024, time.June, 7))
	days := p.Days()
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if !days[0].Equal(StartOfWeek(p.Anchor)) {
		t.Fatalf("week starts at %s, want %s", days[0], StartOfWeek(p.Anchor))
	}
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("days not consecutive at %d: %s after %s", i, days[i], days[i-1])
		}
	}
}

func TestPeriodRange(t *testing.T) {
	week := NewPeriod(ViewWeek, date(2024, time.June, 5))
	from, to := week.Range()
	if from != "2024-06-03" || to != "2024-06-09" {
		t.Fatalf("week range = %s..%s", from, to)
	}

	day := NewPeriod(ViewDay, date(2024, time.June, 5))
	from, to = day.Range()
	if from != "2024-06-05" || to != "2024-06-05" {
		t.Fatalf("day range = %s..%s", from, to)
	}
}

func TestPeriodNavigation(t *testing.T) {
	week := NewPeriod(ViewWeek, date(2024, time.June, 5))
	if got := ISODate(week.Next().Anchor); got != "2024-06-12" {
		t.Fatalf("week next anchor = %s", got)
	}
	if got := ISODate(week.Prev().Anchor); got != "2024-05-29" {
		t.Fatalf("week prev anchor = %s", got)
	}

	day := NewPeriod(ViewDay, date(2024, time.June, 5))
	if got := ISODate(day.Next().Anchor); got != "2024-06-06" {
		t.Fatalf("day next anchor = %s", got)
	}
	if got := ISODate(day.Prev().Anchor); got != "2024-06-04" {
		t.Fatalf("day prev anchor = %s", got)
	}
}

func TestISODateRoundTrip(t *testing.T) {
	for _, s := range []string{"2024-06-03", "2024-12-31", "2025-01-01", "2024-02-29"} {
		parsed, err := ParseISODate(s, time.Local)
		if err != nil {
			t.Fatalf("ParseISODate(%s): %v", s, err)
		}
		if got := ISODate(parsed); got != s {
			t.Fatalf("round trip %s -> %s", s, got)
		}
	}
}

func TestISODate_LateEveningKeepsLocalDay(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2024, time.June, 3, 23, 30, 0, 0, loc)
	if got := ISODate(in); got != "2024-06-03" {
		t.Fatalf("ISODate shifted the day: %s", got)
	}
}

func TestPeriodLabels(t *testing.T) {
	week := NewPeriod(ViewWeek, date(2024, time.June, 5))
	if got := week.Label(); got != "3–9 июня 2024" {
		t.Fatalf("week label = %q", got)
	}

	day := NewPeriod(ViewDay, date(2024, time.June, 5))
	if got := day.Label(); got != "5 июня 2024" {
		t.Fatalf("day label = %q", got)
	}
}

func TestHoursAxis(t *testing.T) {
	hours := Hours()
	if len(hours) != 11 {
		t.Fatalf("len(hours) = %d, want 11", len(hours))
	}
	if hours[0] != "09:00" || hours[len(hours)-1] != "19:00" {
		t.Fatalf("hours = %v", hours)
	}

	minutes := MinuteValues()
	if len(minutes) != 12 {
		t.Fatalf("len(minutes) = %d, want 12", len(minutes))
	}
	if minutes[0] != "00" || minutes[1] != "05" || minutes[11] != "55" {
		t.Fatalf("minutes = %v", minutes)
	}
}

func TestDayShort(t *testing.T) {
	if got := DayShort(date(2024, time.June, 3)); got != "Пн" {
		t.Fatalf("monday header = %q", got)
	}
	if got := DayShort(date(2024, time.June, 9)); got != "Вс" {
		t.Fatalf("sunday header = %q", got)
	}
}
