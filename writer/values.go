package writer

import (
	"bufio"
	"fmt"
	"io"

	"trebuchet/models"
)

// ValueWriter prints calibration values and the final tally, one decimal
// integer per line. Every line is flushed as soon as it is written.
type ValueWriter struct {
	out     *bufio.Writer
	written int
}

func NewValueWriter(w io.Writer) *ValueWriter {
	return &ValueWriter{out: bufio.NewWriter(w)}
}

// WriteValue prints the value decoded from one line.
func (vw *ValueWriter) WriteValue(v models.CalibrationValue) error {
	if err := vw.writeInt(v.Value); err != nil {
		return fmt.Errorf("write value for line %d: %w", v.Line, err)
	}
	vw.written++
	return nil
}

// WriteTally prints the sum of all values.
func (vw *ValueWriter) WriteTally(tally int) error {
	if err := vw.writeInt(tally); err != nil {
		return fmt.Errorf("write tally: %w", err)
	}
	return nil
}

// Written returns how many values have been printed.
func (vw *ValueWriter) Written() int {
	return vw.written
}

func (vw *ValueWriter) writeInt(n int) error {
	if _, err := fmt.Fprintln(vw.out, n); err != nil {
		return err
	}
	return vw.out.Flush()
}
