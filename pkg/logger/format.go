package logger

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the layout of the timestamp prefix of a rendered line.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is a single log event. It is built per call, handed to each sink
// and not retained.
type Record struct {
	Level   Level
	Time    time.Time
	Message string
}

// Line renders the record as "<timestamp> [<LEVEL>]: <message>".
func (r Record) Line() string {
	var b strings.Builder
	b.Grow(len(TimestampLayout) + len(r.Message) + 12)
	b.WriteString(r.Time.Format(TimestampLayout))
	b.WriteString(" [")
	b.WriteString(r.Level.Tag())
	b.WriteString("]: ")
	b.WriteString(r.Message)
	return b.String()
}

// Join renders each part as text and joins them with single spaces.
// Embedded newlines are kept as-is.
func Join(parts ...any) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return text(parts[0])
	}

	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text(p))
	}
	return b.String()
}

func text(part any) string {
	switch v := part.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// ParseLine is the inverse of Record.Line. The timestamp is read in the
// local time zone. It reports false for lines not in the rendered format.
func ParseLine(line string) (Record, bool) {
	if len(line) < len(TimestampLayout)+len(" []: ") || line[len(TimestampLayout)] != ' ' {
		return Record{}, false
	}
	ts, err := time.ParseInLocation(TimestampLayout, line[:len(TimestampLayout)], time.Local)
	if err != nil {
		return Record{}, false
	}

	rest := line[len(TimestampLayout)+1:]
	if !strings.HasPrefix(rest, "[") {
		return Record{}, false
	}
	end := strings.Index(rest, "]: ")
	if end < 0 {
		return Record{}, false
	}
	level, err := ParseLevel(rest[1:end])
	if err != nil {
		return Record{}, false
	}

	return Record{Level: level, Time: ts, Message: rest[end+3:]}, true
}
