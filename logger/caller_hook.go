package logger

import (
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// wrapperFuncs are skipped when resolving the caller of a log call. Only the
// wrapper methods of this package are listed, so code in package logger that
// logs (reports, tests) is still reported as the caller.
var wrapperFuncs = []string{
	"sirupsen/logrus",
	"trebuchet/logger.(*Log).",
	"trebuchet/logger.(*Entry).",
	"trebuchet/logger.LogPerformanceEntry",
}

const maxCallerDepth = 16

// callerHook points entry.Caller at the first frame outside logrus and the
// wrappers in this package, so file:line shows the real call site.
type callerHook struct{}

func (h *callerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *callerHook) Fire(entry *logrus.Entry) error {
	pcs := make([]uintptr, maxCallerDepth)
	// runtime.Callers, Fire, and the logrus hook dispatch.
	n := runtime.Callers(4, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isWrapperFrame(frame.Function) {
			f := frame
			entry.Caller = &f
			return nil
		}
		if !more {
			return nil
		}
	}
}

func isWrapperFrame(fn string) bool {
	for _, prefix := range wrapperFuncs {
		if strings.Contains(fn, prefix) {
			return true
		}
	}
	return false
}
