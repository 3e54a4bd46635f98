package speech

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hireloop/interviewer/internal/utils"
)

// ScriptRecognizer plays back a fixed list of answers, one per Start call.
// Each capture emits cumulative interim events word by word and then a final
// transcript. It backs the --answers demo mode and the interview tests.
type ScriptRecognizer struct {
	mu      sync.Mutex
	answers []string
	delay   time.Duration
	next    int
	cancel  context.CancelFunc
}

// NewScriptRecognizer builds a recognizer over the scripted answers. The
// delay is applied between consecutive events of one capture.
func NewScriptRecognizer(answers []string, delay time.Duration) *ScriptRecognizer {
	return &ScriptRecognizer{answers: answers, delay: delay}
}

func (r *ScriptRecognizer) Name() string { return "script" }

// Remaining reports how many scripted answers have not been consumed yet.
func (r *ScriptRecognizer) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.answers) - r.next
}

// Start emits the next scripted answer. When the script is exhausted the
// returned stream closes immediately, which captures treat as no response.
func (r *ScriptRecognizer) Start(ctx context.Context) (<-chan Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make(chan Event)

	if r.next >= len(r.answers) {
		close(events)
		return events, nil
	}

	answer := r.answers[r.next]
	r.next++

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go func() {
		defer close(events)

		words := strings.Fields(answer)
		for i := range words {
			if i == len(words)-1 {
				break
			}
			if !send(runCtx, events, Event{Text: strings.Join(words[:i+1], " ")}) {
				return
			}
			if utils.WaitFor(runCtx, r.delay) != nil {
				return
			}
		}

		send(runCtx, events, Event{Text: answer, Final: true})
	}()

	return events, nil
}

// Stop cancels the in-flight emission. Safe to call repeatedly.
func (r *ScriptRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case <-ctx.Done():
		return false
	case events <- ev:
		return true
	}
}
