package processor

import (
	"errors"
	"fmt"

	"trebuchet/models"
)

// ErrNoDigits is returned for a line that yields an empty digit sequence.
// The run is expected to stop on it; callers must not skip the line.
var ErrNoDigits = errors.New("line contains fewer than one digit")

// Calibrate decodes one line into its two-digit calibration value.
func (e Extractor) Calibrate(line models.InputLine) (models.CalibrationValue, error) {
	digits := e.Extract(line.Text)
	if len(digits) == 0 {
		return models.CalibrationValue{}, fmt.Errorf("line %d %q: %w", line.Number, line.Text, ErrNoDigits)
	}

	first := digits[0]
	last := digits[len(digits)-1]
	return models.CalibrationValue{
		Line:   line.Number,
		Digits: digits,
		First:  first,
		Last:   last,
		Value:  first*10 + last,
	}, nil
}
