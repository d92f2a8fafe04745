package reader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"trebuchet/logger"
	"trebuchet/models"
)

// DefaultMaxLineBytes bounds a single input line when no limit is configured.
const DefaultMaxLineBytes = 1024 * 1024

// LineReader yields numbered lines from an input stream.
type LineReader struct {
	scanner *bufio.Scanner
	line    int
	log     *logger.Log
}

// NewLineReader wraps r. maxLineBytes <= 0 selects DefaultMaxLineBytes.
func NewLineReader(r io.Reader, maxLineBytes int) *LineReader {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	initial := 64 * 1024
	if initial > maxLineBytes {
		initial = maxLineBytes
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)

	log := logger.GetLogger()
	log.WithComponent("line_reader").WithFields(logger.Fields{
		"max_line_bytes": maxLineBytes,
	}).Debug("line reader initialized")

	return &LineReader{scanner: scanner, log: log}
}

// Next returns the next line. It reports false at end of stream or on a read
// error; Err distinguishes the two.
func (lr *LineReader) Next() (models.InputLine, bool) {
	if !lr.scanner.Scan() {
		return models.InputLine{}, false
	}
	lr.line++
	text := strings.TrimSuffix(lr.scanner.Text(), "\r")
	logger.IncrementLineRead(len(text))
	return models.InputLine{Number: lr.line, Text: text}, true
}

// Err returns the first non-EOF error encountered while reading.
func (lr *LineReader) Err() error {
	if err := lr.scanner.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lr.line+1, err)
	}
	return nil
}

// Lines returns the number of lines read so far.
func (lr *LineReader) Lines() int {
	return lr.line
}
