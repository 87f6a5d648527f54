package runtime

import (
	"log"
	"os"
)

// logger is the package-wide debug-log sink. The teacher never pulls in a
// third-party logger for this subsystem (internal/diagnostics/demo.go and
// internal/packagemanager/httpserver.go both use the standard library
// "log" package), so the STM core follows suit. Nothing on the hot path
// logs; this is strictly for the "silent no-op (debug log)" cases §7 names.
var logger = log.New(os.Stderr, "stm: ", log.LstdFlags)

// SetLogger overrides the destination for debug-log lines (bad region/clock
// ids, zombie usage in release builds). Passing nil restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.New(os.Stderr, "stm: ", log.LstdFlags)
		return
	}

	logger = l
}
