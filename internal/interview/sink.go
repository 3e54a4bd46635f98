package interview

import (
	"go.uber.org/zap"

	"github.com/hireloop/interviewer/internal/utils"
)

// EventKind classifies a presentation notification.
type EventKind string

const (
	EventGreeting  EventKind = "greeting"
	EventQuestion  EventKind = "question"
	EventInterim   EventKind = "interim"
	EventAnswer    EventKind = "answer"
	EventRationale EventKind = "rationale"
	EventReport    EventKind = "report"
)

// Sink receives presentation updates from the controller. The core never
// renders anything itself; a Sink is free to print, draw, or drop events.
type Sink interface {
	Event(kind EventKind, text string)
}

const interimPreviewLimit = 80

// LogSink renders presentation updates as structured log events.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wraps the logger into a Sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Event(kind EventKind, text string) {
	switch kind {
	case EventInterim:
		// Interim transcripts arrive word by word; keep them at debug and
		// truncated so the console stays readable.
		s.logger.Debug("interim transcript", zap.String("text", utils.TruncateForLog(text, interimPreviewLimit)))
	default:
		s.logger.Info(string(kind), zap.String("text", text))
	}
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Event(EventKind, string) {}
