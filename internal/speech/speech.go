// Package speech defines the capability contracts for spoken interaction:
// a Speaker that plays one utterance at a time and a Recognizer that emits a
// stream of transcript events. Engines are injected collaborators; the
// interview core only depends on these interfaces.
package speech

import "context"

// Event is one transcript update from a recognizer. Interim events carry
// partial text for live display; a Final event carries a complete transcript.
type Event struct {
	Text  string
	Final bool
}

// Speaker plays back a single utterance. Speak returns when playback ends or
// fails; callers must not start a new utterance while one is active.
type Speaker interface {
	Name() string
	Speak(ctx context.Context, text string) error
}

// Recognizer is a streaming speech-input source. Start begins a capture and
// returns the ordered event stream; the channel is closed when the capture
// ends. Stop releases the underlying engine and must be safe to call more
// than once.
type Recognizer interface {
	Name() string
	Start(ctx context.Context) (<-chan Event, error)
	Stop()
}
