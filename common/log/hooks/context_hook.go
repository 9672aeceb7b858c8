package hooks

import (
	"fmt"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

// contextHook adds the "file:line" of the logging callsite to every entry.
type contextHook struct {
	trimPrefix string
}

func NewContextHook() contextHook {
	return contextHook{trimPrefix: "fleetsim/"}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isLoggingFrame(frame.File) {
			file := frame.File
			if idx := strings.LastIndex(file, hook.trimPrefix); idx >= 0 {
				file = file[idx+len(hook.trimPrefix):]
			}
			entry.Data["file:line"] = fmt.Sprintf("%s:%d", file, frame.Line)
			return nil
		}
		if !more {
			return nil
		}
	}
}

func isLoggingFrame(file string) bool {
	return strings.Contains(file, "sirupsen/logrus") || strings.HasSuffix(file, "context_hook.go")
}
