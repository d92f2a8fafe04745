package processor

import (
	"errors"
	"testing"

	"trebuchet/models"
)

func TestCalibrate(t *testing.T) {
	cases := []struct {
		text  string
		value int
	}{
		{"1abc2", 12},
		{"pqr3stu8vwx", 38},
		{"a1b2c3d4e5f", 15},
		{"treb7uchet", 77},
		{"two1nine", 29},
		{"eightwothree", 83},
		{"7", 77},
		{"zero", 0},
	}
	e := NewExtractor(true)
	for i, c := range cases {
		got, err := e.Calibrate(models.InputLine{Number: i + 1, Text: c.text})
		if err != nil {
			t.Fatalf("Calibrate(%q): %v", c.text, err)
		}
		if got.Value != c.value {
			t.Errorf("Calibrate(%q) = %d, want %d", c.text, got.Value, c.value)
		}
		if got.Line != i+1 {
			t.Errorf("Calibrate(%q) line = %d", c.text, got.Line)
		}
	}
}

func TestCalibrateSingleDigitUsesSameElement(t *testing.T) {
	got, err := NewExtractor(true).Calibrate(models.InputLine{Number: 1, Text: "ab7cd"})
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if got.First != 7 || got.Last != 7 || len(got.Digits) != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

// A line without digits is fatal for the run, never skipped or defaulted.
func TestCalibrateNoDigits(t *testing.T) {
	for _, text := range []string{"", "abcdef", "on e"} {
		_, err := NewExtractor(true).Calibrate(models.InputLine{Number: 3, Text: text})
		if !errors.Is(err, ErrNoDigits) {
			t.Errorf("Calibrate(%q) err = %v, want ErrNoDigits", text, err)
		}
	}
}

func TestCalibrateLiteralOnlyRejectsWords(t *testing.T) {
	_, err := NewExtractor(false).Calibrate(models.InputLine{Number: 1, Text: "eightwo"})
	if !errors.Is(err, ErrNoDigits) {
		t.Fatalf("err = %v, want ErrNoDigits", err)
	}
}
