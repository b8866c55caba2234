// Package logging is the leveled front end to the standard logger used by
// every leetshell package. Lines carry a DEBUG:, INFO:, WARN: or ERROR:
// prefix so the log file can be grepped by severity.
package logging

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int32(l))
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case; "warning" is an alias for warn.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(LevelInfo))
}

// SetLevel drops every message below l. The default is LevelInfo.
func SetLevel(l Level) {
	minLevel.Store(int32(l))
}

func CurrentLevel() Level {
	return Level(minLevel.Load())
}

func Enabled(l Level) bool {
	return l >= CurrentLevel()
}

func logf(l Level, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	log.Printf(l.String()+": "+format, args...)
}

func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }
func Info(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Error(format string, args ...any) { logf(LevelError, format, args...) }
