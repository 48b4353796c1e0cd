package dates

import (
	"testing"
	"time"
)

func TestCanonicalize_DisplayFormat(t *testing.T) {
	t.Parallel()

	n := New(time.UTC)

	got, ok := n.Canonicalize("25.12.2025")
	if !ok {
		t.Fatal("Expected 25.12.2025 to be valid")
	}
	if got != "2025-12-25T00:00:00.000Z" {
		t.Errorf("Expected 2025-12-25T00:00:00.000Z, got %s", got)
	}
}

func TestCanonicalize_Table(t *testing.T) {
	t.Parallel()

	n := New(time.UTC)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"display", "01.02.2024", "2024-02-01T00:00:00.000Z", true},
		{"display with spaces", " 01.02.2024 ", "2024-02-01T00:00:00.000Z", true},
		{"leap day", "29.02.2024", "2024-02-29T00:00:00.000Z", true},
		{"invalid leap day", "29.02.2023", "", false},
		{"invalid day", "31.02.2025", "", false},
		{"zero day", "00.01.2025", "", false},
		{"invalid month", "12.13.2025", "", false},
		{"iso date", "2025-12-25", "2025-12-25T00:00:00.000Z", true},
		{"iso datetime", "2025-12-25T13:45:00", "2025-12-25T00:00:00.000Z", true},
		{"rfc3339", "2025-12-25T13:45:00Z", "2025-12-25T00:00:00.000Z", true},
		{"iso instant mid-day", "2025-12-25T10:30:00.000Z", "2025-12-25T00:00:00.000Z", true},
		{"offset crossing midnight", "2025-12-25T01:30:00+02:00", "2025-12-24T00:00:00.000Z", true},
		{"canonical pass-through", "2025-12-25T00:00:00.000Z", "2025-12-25T00:00:00.000Z", true},
		{"slashes", "2025/12/25", "2025-12-25T00:00:00.000Z", true},
		{"garbage", "next tuesday", "", false},
		{"short display", "1.2.2024", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Canonicalize(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Canonicalize(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalize_UsesLocationForCalendarDay(t *testing.T) {
	t.Parallel()

	kyiv := time.FixedZone("EET", 2*60*60)
	n := New(kyiv)

	got, ok := n.Canonicalize("25.12.2025")
	if !ok {
		t.Fatal("Expected valid date")
	}
	// Midnight in UTC+2 is 22:00 UTC the previous day
	if got != "2025-12-24T22:00:00.000Z" {
		t.Errorf("Expected 2025-12-24T22:00:00.000Z, got %s", got)
	}

	if display := n.Display(got); display != "25.12.2025" {
		t.Errorf("Expected display 25.12.2025, got %s", display)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	n := New(time.UTC)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"2025-12-25T00:00:00.000Z", "25.12.2025"},
		{"2025-01-05", "05.01.2025"},
		{"05.01.2025", "05.01.2025"},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		if got := n.Display(tt.input); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if got := n.DisplayOr("", "—"); got != "—" {
		t.Errorf("Expected placeholder, got %q", got)
	}
}

func TestRoundTrip_DisplayThenCanonicalize(t *testing.T) {
	t.Parallel()

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("EET", 2*60*60),
		time.FixedZone("PST", -8*60*60),
		time.FixedZone("NPT", 5*60*60+45*60),
	}

	start := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)
	for _, loc := range zones {
		n := New(loc)
		for i := 0; i < 800; i += 7 {
			x := n.Format(start.AddDate(0, 0, i))

			want, ok := n.Canonicalize(x)
			if !ok {
				t.Fatalf("canonical value %s should parse", x)
			}
			got, ok := n.Canonicalize(n.Display(x))
			if !ok {
				t.Fatalf("display of %s should parse", x)
			}
			if got != want {
				t.Errorf("[%s] Canonicalize(Display(%s)) = %s, want %s", loc, x, got, want)
			}
		}
	}
}

func TestToday(t *testing.T) {
	n := New(time.UTC)
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := n.Today(now); got != "2025-03-14T00:00:00.000Z" {
		t.Errorf("Expected start of day, got %s", got)
	}
}

func TestParseInstant(t *testing.T) {
	t.Parallel()

	got, ok := ParseInstant("2025-12-25T10:30:00.000Z")
	if !ok {
		t.Fatal("Expected instant to parse")
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("Expected time to be kept, got %v", got)
	}

	if _, ok := ParseInstant(""); ok {
		t.Error("Expected empty instant to be rejected")
	}
	if _, ok := ParseInstant("25.12.2025"); ok {
		t.Error("Expected display format to be rejected as an instant")
	}
}

func TestLoadLocation(t *testing.T) {
	if loc, err := LoadLocation(""); err != nil || loc != time.Local {
		t.Errorf("Expected Local for empty name, got %v, %v", loc, err)
	}
	if loc, err := LoadLocation("UTC"); err != nil || loc != time.UTC {
		t.Errorf("Expected UTC, got %v, %v", loc, err)
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("Expected error for unknown zone")
	}
}
