package trips

import (
	"errors"
	"testing"
	"time"
)

func TestParseRangeExpandsDates(t *testing.T) {
	start, end, err := ParseRange("2024-03-01", "2024-03-31", time.UTC)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, end)
	}
}

func TestParseRangeKeepsExactInstants(t *testing.T) {
	start, end, err := ParseRange("2024-03-01T10:30:00Z", "2024-03-01T12:00:00Z", time.UTC)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Fatalf("expected exact start, got %v", start)
	}
	if end.Hour() != 12 || end.Minute() != 0 {
		t.Fatalf("expected exact end, got %v", end)
	}
}

func TestParseRangeUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	start, _, err := ParseRange("2024-03-01", "2024-03-01", loc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start.UTC())
	}
}

func TestParseRangeErrors(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  error
	}{
		{name: "start after end", start: "2024-03-02", end: "2024-03-01", want: ErrInvalidRange},
		{name: "garbage", start: "yesterday", end: "2024-03-01", want: ErrInvalidRange},
		{name: "half open", start: "2024-03-01", end: "", want: ErrRangeRequired},
	}

	for _, tc := range cases {
		_, _, err := ParseRange(tc.start, tc.end, time.UTC)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestParseRangeEmpty(t *testing.T) {
	start, end, err := ParseRange("", "", time.UTC)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !start.IsZero() || !end.IsZero() {
		t.Fatalf("expected open range")
	}
}
