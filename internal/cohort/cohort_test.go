package cohort

import (
	"testing"
	"time"
)

func TestLabelFormats(t *testing.T) {
	ts := time.Date(2019, time.August, 7, 23, 15, 0, 0, time.UTC)

	cases := []struct {
		format string
		want   string
	}{
		{"%Y", "2019"},
		{"%Y-%m", "2019-08"},
		{"%Y-%m-%d", "2019-08-07"},
		{"%Y %q", "2019 Q3"},
		{"%j", "219"},
		{"%Y%%", "2019%"},
		{"", "2019"},
	}

	for _, tc := range cases {
		f, err := New(tc.format)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tc.format, err)
		}
		if got := f.Label(ts); got != tc.want {
			t.Errorf("Label with format %q = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestLabelUsesUTC(t *testing.T) {
	// 2019-12-31 23:30 -05:00 is 2020 in UTC
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2019, time.December, 31, 23, 30, 0, 0, loc)

	f, err := New("%Y")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := f.Label(ts); got != "2020" {
		t.Errorf("Expected UTC year 2020, got %q", got)
	}
}

func TestInvalidFormats(t *testing.T) {
	for _, format := range []string{"%x", "%Y%", "%H:%M"} {
		if _, err := New(format); err == nil {
			t.Errorf("Expected error for format %q", format)
		}
	}
}
