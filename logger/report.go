package logger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

var (
	linesRead       int64
	bytesRead       int64
	digitsExtracted int64
	warnCounts      sync.Map // map[string]*int64, keyed by component
	errorCounts     sync.Map // map[string]*int64, keyed by component
)

func bump(m *sync.Map, component string) {
	v, _ := m.LoadOrStore(component, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

func recordWarn(component string) {
	bump(&warnCounts, component)
}

func recordError(component string) {
	bump(&errorCounts, component)
}

// IncrementLineRead counts one input line of size bytes.
func IncrementLineRead(size int) {
	atomic.AddInt64(&linesRead, 1)
	atomic.AddInt64(&bytesRead, int64(size))
}

// IncrementDigits counts digits extracted from one line.
func IncrementDigits(n int) {
	atomic.AddInt64(&digitsExtracted, int64(n))
}

// Counters is a point-in-time copy of the run counters.
type Counters struct {
	LinesRead       int64
	BytesRead       int64
	DigitsExtracted int64
	Warns           map[string]int64
	Errors          map[string]int64
}

// Snapshot returns the current counter values.
func Snapshot() Counters {
	return Counters{
		LinesRead:       atomic.LoadInt64(&linesRead),
		BytesRead:       atomic.LoadInt64(&bytesRead),
		DigitsExtracted: atomic.LoadInt64(&digitsExtracted),
		Warns:           collect(&warnCounts),
		Errors:          collect(&errorCounts),
	}
}

func collect(m *sync.Map) map[string]int64 {
	out := map[string]int64{}
	m.Range(func(k, v any) bool {
		out[k.(string)] = atomic.LoadInt64(v.(*int64))
		return true
	})
	return out
}

func sum(m map[string]int64) int64 {
	var total int64
	for _, v := range m {
		total += v
	}
	return total
}

// StartReport logs a runtime report every interval until ctx is done.
// Used when the log level is "report" and input arrives slowly.
func StartReport(ctx context.Context, log *Log, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				LogReport(ctx, log)
			}
		}
	}()
}

// LogReport logs the current counters with process memory usage and
// publishes them to CloudWatch when it is configured.
func LogReport(ctx context.Context, log *Log) {
	c := Snapshot()

	var usedMB float64
	if vm, err := mem.VirtualMemory(); err == nil {
		usedMB = float64(vm.Used) / 1024 / 1024
	}

	log.WithComponent("report").WithFields(Fields{
		"lines_read":       c.LinesRead,
		"bytes_read":       c.BytesRead,
		"digits_extracted": c.DigitsExtracted,
		"warns":            c.Warns,
		"errors":           c.Errors,
		"goroutines":       runtime.NumGoroutine(),
		"memory_mb":        int64(usedMB),
	}).Info("runtime report")

	publishMetrics(ctx, []cwtypes.MetricDatum{
		{MetricName: aws.String("LinesRead"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(c.LinesRead))},
		{MetricName: aws.String("BytesRead"), Unit: cwtypes.StandardUnitBytes, Value: aws.Float64(float64(c.BytesRead))},
		{MetricName: aws.String("DigitsExtracted"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(c.DigitsExtracted))},
		{MetricName: aws.String("Warnings"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(sum(c.Warns)))},
		{MetricName: aws.String("Errors"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(sum(c.Errors)))},
		{MetricName: aws.String("MemoryMB"), Unit: cwtypes.StandardUnitMegabytes, Value: aws.Float64(usedMB)},
	})
}
