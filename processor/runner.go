package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"trebuchet/logger"
	"trebuchet/models"
)

// LineSource supplies input lines in order.
type LineSource interface {
	Next() (models.InputLine, bool)
	Err() error
}

// ValueSink receives per-line values and the final tally.
type ValueSink interface {
	WriteValue(models.CalibrationValue) error
	WriteTally(int) error
}

// Runner drives a single pass: read a line, decode it, print it, add it to
// the tally. The tally is printed only after the source is exhausted.
type Runner struct {
	extractor Extractor
	source    LineSource
	sink      ValueSink
	runID     string
	mu        sync.Mutex
	running   bool
	log       *logger.Log
}

func NewRunner(extractor Extractor, source LineSource, sink ValueSink) *Runner {
	return &Runner{
		extractor: extractor,
		source:    source,
		sink:      sink,
		runID:     uuid.NewString(),
		log:       logger.GetLogger(),
	}
}

// RunID identifies this runner in logs and metrics.
func (r *Runner) RunID() string {
	return r.runID
}

// Run consumes the source until end of stream and returns the summary.
// A line without digits aborts the run with an error wrapping ErrNoDigits;
// values already written stay written and the tally is not printed.
func (r *Runner) Run(ctx context.Context) (models.RunSummary, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return models.RunSummary{}, fmt.Errorf("runner already running")
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	log := r.log.WithComponent("runner").WithFields(logger.Fields{
		"run_id":        r.runID,
		"spelled_words": r.extractor.SpelledWords,
	})
	log.Info("starting calibration run")

	start := time.Now()
	summary := models.RunSummary{RunID: r.runID}

	for {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("run cancelled after %d lines: %w", summary.Lines, err)
		}

		line, ok := r.source.Next()
		if !ok {
			break
		}

		value, err := r.extractor.Calibrate(line)
		if err != nil {
			summary.Duration = time.Since(start)
			log.WithFields(logger.Fields{"line": line.Number}).WithError(err).Debug("line has no digits")
			return summary, err
		}

		if err := r.sink.WriteValue(value); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		summary.Lines++
		summary.Digits += len(value.Digits)
		summary.Tally += value.Value
		logger.IncrementDigits(len(value.Digits))

		log.WithFields(logger.Fields{
			"line":   line.Number,
			"digits": value.Digits,
			"value":  value.Value,
			"tally":  summary.Tally,
		}).Debug("line calibrated")
	}

	if err := r.source.Err(); err != nil {
		summary.Duration = time.Since(start)
		log.WithError(err).Debug("input stream failed")
		return summary, err
	}

	if err := r.sink.WriteTally(summary.Tally); err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}

	summary.Duration = time.Since(start)
	logger.LogPerformanceEntry(log, "runner", "calibrate_stream", summary.Duration, logger.Fields{
		"lines":  summary.Lines,
		"digits": summary.Digits,
		"tally":  summary.Tally,
	})
	log.Info("calibration run completed")

	return summary, nil
}
