package rolandqd

/*------------------------------------------------------------------
 *
 * Purpose:	Map the CLI's --verbose levels onto a leveled logger.
 *
 * Description:	0 silent, 1 summary, 2 debug, 3 dump intermediate
 *		blocks (the dump itself is handled by hex_dump.go,
 *		triggered by callers checking Verbose() >= 3).
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet/log.Logger configured from a --verbose level.
type Logger struct {
	*log.Logger
	level int
}

// NewLogger returns a Logger for verbose level v (0-3).
func NewLogger(v int) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	switch {
	case v <= 0:
		l.SetLevel(log.FatalLevel)
	case v == 1:
		l.SetLevel(log.InfoLevel)
	default:
		l.SetLevel(log.DebugLevel)
	}
	return &Logger{Logger: l, level: v}
}

// Verbose returns the configured verbosity level.
func (l *Logger) Verbose() int {
	return l.level
}
