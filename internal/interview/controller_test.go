package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hireloop/interviewer/internal/catalog"
	"github.com/hireloop/interviewer/internal/evaluate"
)

type stubSpeaker struct {
	spoken []string
	err    error
}

func (s *stubSpeaker) Name() string { return "stub" }

func (s *stubSpeaker) Speak(_ context.Context, text string) error {
	s.spoken = append(s.spoken, text)
	return s.err
}

type stubCapturer struct {
	answers []string
	next    int
	calls   []string

	// onCapture runs before an answer is returned; used to inject a stop
	// signal mid-capture.
	onCapture func(prompt string)
}

func (s *stubCapturer) Capture(_ context.Context, prompt string) string {
	s.calls = append(s.calls, prompt)
	if s.onCapture != nil {
		s.onCapture(prompt)
	}
	if s.next >= len(s.answers) {
		return ""
	}
	answer := s.answers[s.next]
	s.next++
	return answer
}

type sinkEvent struct {
	kind EventKind
	text string
}

type recordingSink struct {
	events []sinkEvent
}

func (s *recordingSink) Event(kind EventKind, text string) {
	s.events = append(s.events, sinkEvent{kind: kind, text: text})
}

func (s *recordingSink) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(s.events))
	for _, ev := range s.events {
		kinds = append(kinds, ev.kind)
	}
	return kinds
}

func testJob(questions ...string) *catalog.JobTemplate {
	if len(questions) == 0 {
		questions = []string{"Q1"}
	}
	return &catalog.JobTemplate{
		Title:     "QA Engineer",
		Skills:    []string{"testing", "automation"},
		Questions: questions,
	}
}

func TestRunFullCoverageNoFollowup(t *testing.T) {
	job := testJob("Q1", "Q2")
	capt := &stubCapturer{answers: []string{
		"testing and automation every day",
		"automation first, testing always",
	}}
	speaker := &stubSpeaker{}
	sink := &recordingSink{}

	c := NewController("qa", job, speaker, capt, sink, zap.NewNop())
	session := c.Run(context.Background())

	if c.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", c.State())
	}

	if len(session.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(session.Steps))
	}

	for i, step := range session.Steps {
		if step.Followup {
			t.Fatalf("step %d unexpectedly marked as follow-up", i)
		}
		if step.Question != job.Questions[i] {
			t.Fatalf("step %d question mismatch: %q", i, step.Question)
		}
	}

	if session.FinalScore == nil {
		t.Fatalf("expected a final score")
	}

	if session.EndedAt != nil {
		t.Fatalf("normal completion must not stamp EndedAt")
	}

	if session.CompletedAt == nil {
		t.Fatalf("expected CompletedAt on normal completion")
	}

	// Greeting and every question are spoken.
	if len(speaker.spoken) != 3 {
		t.Fatalf("expected 3 utterances, got %v", speaker.spoken)
	}
	if !strings.Contains(speaker.spoken[0], "QA Engineer") {
		t.Fatalf("greeting does not name the role: %q", speaker.spoken[0])
	}
}

func TestRunFollowupPolicy(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{answers: []string{
		"I only do testing", // misses automation
		"",                  // follow-up answer: misses everything
	}}
	sink := &recordingSink{}

	c := NewController("qa", job, nil, capt, sink, zap.NewNop())
	session := c.Run(context.Background())

	if len(session.Steps) != 2 {
		t.Fatalf("expected primary + follow-up, got %d steps", len(session.Steps))
	}

	followup := session.Steps[1]
	if !followup.Followup {
		t.Fatalf("second step must be a follow-up")
	}

	want := "You didn't mention automation. Can you describe any experience with automation?"
	if followup.Question != want {
		t.Fatalf("unexpected follow-up phrasing: %q", followup.Question)
	}

	if len(capt.calls) != 2 || capt.calls[1] != want {
		t.Fatalf("follow-up was not captured with its own prompt: %v", capt.calls)
	}

	// The follow-up answer missed every skill, yet no third step exists:
	// follow-ups never chain.
	if c.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", c.State())
	}
}

func TestRunFollowupTargetsFirstMissingSkill(t *testing.T) {
	job := &catalog.JobTemplate{
		Title:     "Customer Support Specialist",
		Skills:    []string{"communication", "empathy", "troubleshooting", "patience"},
		Questions: []string{"Q1"},
	}
	capt := &stubCapturer{answers: []string{""}} // timeout-style empty answer

	c := NewController("support", job, nil, capt, nil, zap.NewNop())
	session := c.Run(context.Background())

	if len(session.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(session.Steps))
	}

	if session.Steps[0].Score != 0 || session.Steps[0].Answer != "" {
		t.Fatalf("empty answer must be recorded with score 0: %+v", session.Steps[0])
	}

	if !strings.Contains(session.Steps[1].Question, "communication") {
		t.Fatalf("follow-up must target the first skill in template order: %q", session.Steps[1].Question)
	}
}

func TestRunAggregatesAllSteps(t *testing.T) {
	job := testJob("Q1", "Q2")
	answers := []string{
		"testing and automation all day long", // full coverage, no follow-up
		"I only do testing",                   // triggers follow-up
		"automation experience for 2 years",   // follow-up answer
	}
	capt := &stubCapturer{answers: answers}

	c := NewController("qa", job, nil, capt, nil, zap.NewNop())
	session := c.Run(context.Background())

	if len(session.Steps) != 3 {
		t.Fatalf("expected 3 steps (2 primary + 1 follow-up), got %d", len(session.Steps))
	}

	sum := 0
	for i, answer := range answers {
		res := evaluate.Evaluate(answer, job)
		if session.Steps[i].Score != res.Score {
			t.Fatalf("step %d score mismatch: got %d, want %d", i, session.Steps[i].Score, res.Score)
		}
		sum += res.Score
	}

	want := (sum*2 + 3) / 6 // round(sum/3) for non-negative sums
	if session.FinalScore == nil || *session.FinalScore != want {
		t.Fatalf("expected final score %d, got %v", want, session.FinalScore)
	}
}

func TestStopMidCapture(t *testing.T) {
	job := testJob("Q1", "Q2", "Q3")
	capt := &stubCapturer{answers: []string{
		"testing and automation daily",
		"this answer must be discarded",
	}}

	c := NewController("qa", job, nil, capt, nil, zap.NewNop())
	capt.onCapture = func(prompt string) {
		if prompt == "Q2" {
			c.Stop()
		}
	}

	session := c.Run(context.Background())

	if c.State() != StateStopped {
		t.Fatalf("expected stopped state, got %s", c.State())
	}

	if len(session.Steps) != 1 {
		t.Fatalf("expected only the first step to survive, got %d", len(session.Steps))
	}

	if session.EndedAt == nil {
		t.Fatalf("expected EndedAt on early termination")
	}

	if session.FinalScore == nil || *session.FinalScore != session.Steps[0].Score {
		t.Fatalf("final score must cover the single recorded step, got %v", session.FinalScore)
	}

	// Q3 was never asked.
	if len(capt.calls) != 2 {
		t.Fatalf("expected 2 capture calls, got %v", capt.calls)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{}

	c := NewController("qa", job, nil, capt, nil, zap.NewNop())
	capt.onCapture = func(string) {
		c.Stop()
		c.Stop()
	}

	session := c.Run(context.Background())

	if c.State() != StateStopped {
		t.Fatalf("expected stopped state, got %s", c.State())
	}

	if len(session.Steps) != 0 {
		t.Fatalf("expected no steps, got %d", len(session.Steps))
	}

	if session.FinalScore != nil {
		t.Fatalf("a session with zero steps must not have a final score")
	}

	// Stop after termination stays a no-op.
	c.Stop()
	if c.State() != StateStopped {
		t.Fatalf("state changed after redundant stop: %s", c.State())
	}
}

func TestStopBeforeRunSkipsGreeting(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{answers: []string{"testing and automation"}}
	speaker := &stubSpeaker{}
	sink := &recordingSink{}

	c := NewController("qa", job, speaker, capt, sink, zap.NewNop())
	c.Stop()
	session := c.Run(context.Background())

	if c.State() != StateStopped {
		t.Fatalf("expected stopped state, got %s", c.State())
	}

	if len(speaker.spoken) != 0 {
		t.Fatalf("nothing may be spoken after a stop request, got %v", speaker.spoken)
	}

	if len(sink.events) != 0 {
		t.Fatalf("no presentation events expected after a stop request, got %v", sink.kinds())
	}

	if len(capt.calls) != 0 || len(session.Steps) != 0 {
		t.Fatalf("no turns expected after a stop request, got %d calls, %d steps", len(capt.calls), len(session.Steps))
	}

	if session.EndedAt == nil {
		t.Fatalf("expected EndedAt on early termination")
	}
}

func TestStopAfterCompletionIsNoop(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{answers: []string{"testing and automation"}}

	c := NewController("qa", job, nil, capt, nil, zap.NewNop())
	session := c.Run(context.Background())

	if c.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", c.State())
	}

	c.Stop()

	if c.State() != StateCompleted {
		t.Fatalf("stop after completion must not change state, got %s", c.State())
	}

	if session.EndedAt != nil {
		t.Fatalf("stop after completion must not stamp EndedAt")
	}
}

func TestSpeakerErrorsAreSwallowed(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{answers: []string{"testing and automation"}}
	speaker := &stubSpeaker{err: errors.New("audio device gone")}

	c := NewController("qa", job, speaker, capt, nil, zap.NewNop())
	session := c.Run(context.Background())

	if c.State() != StateCompleted {
		t.Fatalf("speaker errors must not abort the interview, got state %s", c.State())
	}

	if len(session.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(session.Steps))
	}
}

func TestSinkReceivesPresentationEvents(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{answers: []string{"testing and automation"}}
	sink := &recordingSink{}

	c := NewController("qa", job, nil, capt, sink, zap.NewNop())
	c.Run(context.Background())

	want := []EventKind{EventGreeting, EventQuestion, EventAnswer, EventRationale, EventReport}
	got := sink.kinds()
	if len(got) != len(want) {
		t.Fatalf("unexpected event sequence: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRunIsSingleShot(t *testing.T) {
	job := testJob("Q1")
	capt := &stubCapturer{answers: []string{"testing and automation", "never used"}}

	c := NewController("qa", job, nil, capt, nil, zap.NewNop())
	first := c.Run(context.Background())
	second := c.Run(context.Background())

	if first != second {
		t.Fatalf("expected the same session from a repeated run")
	}

	if len(first.Steps) != 1 {
		t.Fatalf("expected no additional steps, got %d", len(first.Steps))
	}
}
