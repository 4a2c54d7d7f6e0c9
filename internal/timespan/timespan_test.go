package timespan

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2.05:30:00", "2 days, 5 hours, 30 minutes"},
		{"05:30:00", "5 hours, 30 minutes"},
		{"1.00:01:00", "1 day, 1 minute"},
		{"00:00:45", "0 seconds"},
		{"not-a-duration", "Invalid TimeSpan format"},
		{"2.05:30:00.123", "2 days, 5 hours, 30 minutes"},
		{"5:30:00", "5 hours, 30 minutes"},
		{"01:01:01", "1 hour, 1 minute"},
		{"0.00:00:00", "0 seconds"},
		{"3.00:00:00.5", "3 days"},
		{"23:59:59.9999999", "23 hours, 59 minutes"},
		{"123456789012345678901234567890.01:00:00", "123456789012345678901234567890 days, 1 hour"},
		{"007.02:00:00", "7 days, 2 hours"},
		{"", "Invalid TimeSpan format"},
		{"24:00:00", "Invalid TimeSpan format"},
		{"1.24:00:00", "Invalid TimeSpan format"},
		{"10:60:00", "Invalid TimeSpan format"},
		{"10:00:60", "Invalid TimeSpan format"},
		{"10-00-00", "Invalid TimeSpan format"},
		{"1000", "Invalid TimeSpan format"},
		{"1.5:00:00", "Invalid TimeSpan format"},
		{"05:30:00.", "Invalid TimeSpan format"},
	}

	for _, tt := range tests {
		if got := Format(tt.input); got != tt.expected {
			t.Errorf("Format(%q) = %q; expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatDeterministic(t *testing.T) {
	inputs := []string{"2.05:30:00", "00:00:45", "garbage", "1.00:01:00.0000001"}
	for _, in := range inputs {
		first := Format(in)
		for i := 0; i < 5; i++ {
			if got := Format(in); got != first {
				t.Fatalf("Format(%q) changed between calls: %q then %q", in, first, got)
			}
		}
	}
}

func TestParse(t *testing.T) {
	span, err := Parse("12.03:04:05.678")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Span{Days: "12", Hours: 3, Minutes: 4, Seconds: 5}
	if span != want {
		t.Errorf("Parse = %+v, want %+v", span, want)
	}

	span, err = Parse("7:08:09")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want = Span{Days: "0", Hours: 7, Minutes: 8, Seconds: 9}
	if span != want {
		t.Errorf("Parse = %+v, want %+v", span, want)
	}

	if _, err := Parse("7:8:9"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Parse(7:8:9) error = %v, want ErrInvalidFormat", err)
	}
}
