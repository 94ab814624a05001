package logs

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

// levelPriority defines the priority of each log level
// higher value = more severe
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// ParseLevel maps a config string to a Level, falling back to INFO.
func ParseLevel(s string) Level {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[l]; ok {
		return l
	}
	return INFO
}

type Entry struct {
	TimeStamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Component string    `json:"component,omitempty"`
	Message   string    `json:"message"`
}

func (e Entry) String() string {
	if e.Component == "" {
		return fmt.Sprintf("%s %-5s %s", e.TimeStamp.Format(time.RFC3339), e.Level, e.Message)
	}
	return fmt.Sprintf("%s %-5s [%s] %s", e.TimeStamp.Format(time.RFC3339), e.Level, e.Component, e.Message)
}

// sink is shared by a logger and the component loggers derived from it.
type sink struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	out     io.Writer
}

// Logger keeps the most recent entries in memory and optionally mirrors
// every recorded entry to a writer.
type Logger struct {
	sink      *sink
	level     Level
	component string
}

// level: minimum log level to record (DEBUG, INFO, WARN, ERROR)
//
// maxSize: maximum number of log entries kept in memory
func NewLogger(maxSize int, level Level) *Logger {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Logger{
		sink: &sink{
			entries: make([]Entry, 0, maxSize),
			maxSize: maxSize,
		},
		level: level,
	}
}

// SetOutput mirrors entries to w. A nil writer disables mirroring.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.out = w
}

// With returns a logger that tags entries with component and shares
// the same buffer.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		sink:      l.sink,
		level:     l.level,
		component: component,
	}
}

// log applies level filtering and ring buffer behavior
func (l *Logger) log(level Level, msg string) {
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	entry := Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Component: l.component,
		Message:   msg,
	}

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxSize {
		// drop the oldest entry
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, entry)

	if s.out != nil {
		fmt.Fprintln(s.out, entry.String())
	}
}

func (l *Logger) Debug(msg string) { l.log(DEBUG, msg) }
func (l *Logger) Info(msg string)  { l.log(INFO, msg) }
func (l *Logger) Warn(msg string)  { l.log(WARN, msg) }
func (l *Logger) Error(msg string) { l.log(ERROR, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.log(DEBUG, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.log(INFO, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(WARN, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ERROR, fmt.Sprintf(format, args...)) }

// GetLast returns up to n of the newest entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}

	start := len(s.entries) - n
	out := make([]Entry, n)
	copy(out, s.entries[start:])
	return out
}
