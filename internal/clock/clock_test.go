package clock

import (
	"testing"
	"time"
)

func TestFixed_SetAdvance(t *testing.T) {
	loc := time.FixedZone("TRT", 3*3600)
	start := time.Date(2024, 6, 10, 13, 45, 0, 0, loc)
	c := NewFixed(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now=%v want %v", c.Now(), start)
	}
	if c.Location() != loc {
		t.Fatalf("Location=%v want %v", c.Location(), loc)
	}
	c.Advance(30 * time.Minute)
	if got := c.Now().Format(TimeLayout); got != "14:15" {
		t.Fatalf("after advance got %s", got)
	}
	c.Set(start.AddDate(0, 0, 1))
	if got := FormatDate(c.Now()); got != "2024-06-11" {
		t.Fatalf("after set got %s", got)
	}
}

func TestToday_TruncatesInLocation(t *testing.T) {
	loc := time.FixedZone("TRT", 3*3600)
	// 22:30 UTC is already the next day in UTC+3.
	c := NewFixed(time.Date(2024, 6, 9, 22, 30, 0, 0, time.UTC).In(loc))
	got := Today(c)
	if FormatDate(got) != "2024-06-10" || got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("Today=%v", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(d) != "2024-06-10" {
		t.Fatalf("roundtrip got %s", FormatDate(d))
	}
	for _, bad := range []string{"", "2024-6-10", "10-06-2024", "2024-02-30", "2024-06-10T00:00"} {
		if _, err := ParseDate(bad, time.UTC); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSystem_DefaultsToUTC(t *testing.T) {
	s := NewSystem(nil)
	if s.Location() != time.UTC {
		t.Fatalf("Location=%v", s.Location())
	}
	if s.Now().Location() != time.UTC {
		t.Fatalf("Now not in UTC")
	}
}
