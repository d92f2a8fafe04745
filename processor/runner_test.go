package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"trebuchet/logger"
	"trebuchet/reader"
	"trebuchet/writer"
)

func runLines(t *testing.T, ctx context.Context, spelled bool, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(
		NewExtractor(spelled),
		reader.NewLineReader(strings.NewReader(input), 0),
		writer.NewValueWriter(&out),
	)
	_, err := r.Run(ctx)
	return out.String(), err
}

func TestRunnerExample(t *testing.T) {
	out, err := runLines(t, context.Background(), true, "1abc2\npqr3stu8vwx\na1b2c3d4e5f\ntreb7uchet\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "12\n38\n15\n77\n142\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunnerSpelledExample(t *testing.T) {
	input := strings.Join([]string{
		"two1nine",
		"eightwothree",
		"abcone2threexyz",
		"xtwone3four",
		"4nineeightseven2",
		"zoneight234",
		"7pqrstsixteen",
	}, "\n")
	out, err := runLines(t, context.Background(), true, input)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "29\n83\n13\n24\n42\n14\n76\n281\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunnerSummary(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(
		NewExtractor(true),
		reader.NewLineReader(strings.NewReader("two1nine\n7\n"), 0),
		writer.NewValueWriter(&out),
	)
	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Lines != 2 || summary.Digits != 4 || summary.Tally != 106 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.RunID == "" || summary.RunID != r.RunID() {
		t.Fatalf("run id mismatch: %q vs %q", summary.RunID, r.RunID())
	}
}

func TestRunnerEmptyInput(t *testing.T) {
	out, err := runLines(t, context.Background(), true, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "0\n" {
		t.Fatalf("output = %q, want tally 0", out)
	}
}

// Values before the bad line stay printed; the tally never is.
func TestRunnerStopsOnLineWithoutDigits(t *testing.T) {
	out, err := runLines(t, context.Background(), true, "1abc2\nabcdef\ntreb7uchet\n")
	if !errors.Is(err, ErrNoDigits) {
		t.Fatalf("err = %v, want ErrNoDigits", err)
	}
	if out != "12\n" {
		t.Fatalf("output = %q, want only the first value", out)
	}
}

// The caller reports the failure; the runner itself stays below error level.
func TestRunnerDoesNotLogFailureAsError(t *testing.T) {
	var logs bytes.Buffer
	log := logger.GetLogger()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	before := logger.Snapshot().Errors["runner"]
	if _, err := runLines(t, context.Background(), true, "abcdef\n"); !errors.Is(err, ErrNoDigits) {
		t.Fatalf("err = %v, want ErrNoDigits", err)
	}
	if strings.Contains(logs.String(), `"level":"error"`) {
		t.Fatalf("runner logged at error level: %s", logs.String())
	}
	if after := logger.Snapshot().Errors["runner"]; after != before {
		t.Fatalf("runner error count changed: %d -> %d", before, after)
	}
}

func TestRunnerLiteralMode(t *testing.T) {
	out, err := runLines(t, context.Background(), false, "two1nine\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "11\n11\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := runLines(t, ctx, true, "1abc2\n")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if out != "" {
		t.Fatalf("output = %q, want nothing", out)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) { return 0, errors.New("closed") }

func TestRunnerWriteFailure(t *testing.T) {
	r := NewRunner(
		NewExtractor(true),
		reader.NewLineReader(strings.NewReader("1abc2\n"), 0),
		writer.NewValueWriter(brokenWriter{}),
	)
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestRunnerReadFailure(t *testing.T) {
	// a single line longer than the reader limit
	var out bytes.Buffer
	r := NewRunner(
		NewExtractor(true),
		reader.NewLineReader(strings.NewReader(strings.Repeat("1", 64)+"\n"), 16),
		writer.NewValueWriter(&out),
	)
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected read error")
	}
	if out.Len() != 0 {
		t.Fatalf("tally printed after read failure: %q", out.String())
	}
}
