package logger

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Level is the severity of a log message. Levels are totally ordered:
// LevelDebug < LevelVerbose < LevelInfo < LevelWarn < LevelError.
type Level int8

const (
	LevelDebug Level = iota
	LevelVerbose
	LevelInfo
	LevelWarn
	LevelError
)

// ErrUnknownLevel is returned by ParseLevel for names outside the five levels.
var ErrUnknownLevel = errors.New("unknown log level")

var levelNames = [...]string{
	LevelDebug:   "debug",
	LevelVerbose: "verbose",
	LevelInfo:    "info",
	LevelWarn:    "warn",
	LevelError:   "error",
}

// Levels returns every level in ascending severity.
func Levels() []Level {
	return []Level{LevelDebug, LevelVerbose, LevelInfo, LevelWarn, LevelError}
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and ignores surrounding whitespace; "warning" is accepted for LevelWarn.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, errors.Wrapf(ErrUnknownLevel, "%q (valid: %s)", s, strings.Join(levelNames[:], ", "))
}

// String returns the lower-case level name.
func (l Level) String() string {
	if l.valid() {
		return levelNames[l]
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// Tag returns the upper-case name used in rendered log lines.
func (l Level) Tag() string {
	return strings.ToUpper(l.String())
}

// Slog maps the level onto log/slog. Verbose sits between slog's debug and
// info levels.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelVerbose:
		return slog.LevelDebug + 2
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, errors.Wrapf(ErrUnknownLevel, "%d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l Level) valid() bool {
	return l >= LevelDebug && l <= LevelError
}

// ShouldLog reports whether a message at level passes a filter configured
// with minLevel.
func ShouldLog(minLevel, level Level) bool {
	return level >= minLevel
}
