package models

import (
	"time"
)

// InputLine is a single line read from the input stream.
type InputLine struct {
	Number int    // 1-based position in the stream
	Text   string // line without its terminator
}

// CalibrationValue is the decoded result for one input line.
type CalibrationValue struct {
	Line   int   `json:"line"`
	Digits []int `json:"digits"`
	First  int   `json:"first"`
	Last   int   `json:"last"`
	Value  int   `json:"value"`
}

// RunSummary describes a completed (or aborted) pass over the input.
type RunSummary struct {
	RunID    string        `json:"run_id"`
	Lines    int           `json:"lines"`
	Digits   int           `json:"digits"`
	Tally    int           `json:"tally"`
	Duration time.Duration `json:"duration"`
}
