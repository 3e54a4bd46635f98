package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hireloop/interviewer/internal/catalog"
	"github.com/hireloop/interviewer/internal/evaluate"
	"github.com/hireloop/interviewer/internal/logger"
	"github.com/hireloop/interviewer/internal/speech"
)

// Capturer collects one answer for a prompt. It never fails; an empty string
// means no response.
type Capturer interface {
	Capture(ctx context.Context, prompt string) string
}

// Controller drives one interview run: greet, then for each catalog question
// ask, capture, evaluate, record, and possibly ask one follow-up; finally
// aggregate the score. It owns the Session exclusively and is the only
// component that mutates it.
type Controller struct {
	jobKey   string
	job      *catalog.JobTemplate
	speaker  speech.Speaker
	capturer Capturer
	sink     Sink
	log      *zap.Logger

	mu            sync.Mutex
	state         State
	session       *Session
	cancel        context.CancelFunc
	stopRequested bool
}

// NewController wires a controller for the given role. Nil collaborators
// degrade gracefully: a nil speaker is log-only output, a nil sink drops
// presentation events.
func NewController(jobKey string, job *catalog.JobTemplate, speaker speech.Speaker, capturer Capturer, sink Sink, log *zap.Logger) *Controller {
	if speaker == nil {
		speaker = speech.NullSpeaker{}
	}
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		jobKey:   jobKey,
		job:      job,
		speaker:  speaker,
		capturer: capturer,
		sink:     sink,
		log:      log,
		state:    StateIdle,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the session under interview. Nil before Run. Callers must
// treat it as read-only.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Run executes the interview to completion or until stopped and returns the
// finalized session. It is single-shot: a second call returns the existing
// session unchanged.
func (c *Controller) Run(ctx context.Context) *Session {
	runCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.state != StateIdle || c.session != nil {
		c.mu.Unlock()
		cancel()
		c.log.Warn("interview already running or finished")
		return c.session
	}
	c.session = NewSession(c.jobKey, c.job.Title)
	c.cancel = cancel
	c.log = logger.WithSessionFields(c.log, c.session.ID, c.jobKey)
	c.mu.Unlock()
	defer cancel()

	c.log.Info("interview started", zap.String("job_title", c.job.Title), zap.Int("questions", len(c.job.Questions)))

	// A stop may already have been requested between construction and Run;
	// honor it before the greeting is spoken.
	if !c.stopPending() {
		c.transition(StateGreeting)
		greeting := fmt.Sprintf("Hello and welcome. This is a mock interview for the %s role. Let's begin.", c.job.Title)
		c.sink.Event(EventGreeting, greeting)
		c.say(runCtx, greeting)
	}

	for _, question := range c.job.Questions {
		if c.stopPending() {
			break
		}

		result, recorded := c.turn(runCtx, question, false)
		if !recorded {
			break
		}

		if len(result.MissingSkills) > 0 {
			// One follow-up per primary question, about the first skill
			// the template lists among the gaps. Follow-ups never chain.
			skill := result.MissingSkills[0]
			followup := fmt.Sprintf("You didn't mention %s. Can you describe any experience with %s?", skill, skill)
			if _, ok := c.turn(runCtx, followup, true); !ok {
				break
			}
		}

		c.transition(StateAdvancing)
	}

	c.finish()
	return c.session
}

// Stop requests early termination. It may be called from any goroutine at
// any suspension point; calling it twice, or after the interview completed,
// is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopRequested || c.state.Terminal() {
		return
	}

	c.stopRequested = true
	c.log.Info("stop requested", zap.String("state", string(c.state)))

	if c.cancel != nil {
		c.cancel()
	}
}

// turn runs one ask/capture/evaluate sequence and appends the resulting
// step. It reports false without recording anything when a stop arrived
// during the turn.
func (c *Controller) turn(ctx context.Context, question string, followup bool) (evaluate.Result, bool) {
	askState, captureState, evalState := StateAskingQuestion, StateCapturingAnswer, StateEvaluating
	if followup {
		askState, captureState, evalState = StateAskingFollowup, StateCapturingFollowup, StateEvaluatingFollowup
	}

	c.transition(askState)
	c.sink.Event(EventQuestion, question)
	c.say(ctx, question)

	if c.stopPending() {
		return evaluate.Result{}, false
	}

	c.transition(captureState)
	answer := c.capturer.Capture(ctx, question)

	if c.stopPending() {
		// The in-flight answer is discarded; already-recorded steps stand.
		return evaluate.Result{}, false
	}

	c.transition(evalState)
	result := evaluate.Evaluate(answer, c.job)

	c.session.append(Step{
		Question:  question,
		Answer:    answer,
		Score:     result.Score,
		Rationale: result.Rationale,
		Followup:  followup,
	})

	c.sink.Event(EventAnswer, answer)
	c.sink.Event(EventRationale, result.Rationale)
	c.log.Info("step recorded",
		zap.Int("step", len(c.session.Steps)),
		zap.Int("score", result.Score),
		zap.Bool("followup", followup),
		zap.Strings("missing_skills", result.MissingSkills),
	)

	return result, true
}

func (c *Controller) finish() {
	c.mu.Lock()
	stopped := c.stopRequested
	c.mu.Unlock()

	if stopped {
		now := time.Now()
		c.session.EndedAt = &now
	}

	c.session.Finalize()

	if c.session.FinalScore != nil {
		report := fmt.Sprintf("Final score: %d/100 over %d answers.", *c.session.FinalScore, len(c.session.Steps))
		c.sink.Event(EventReport, report)
		c.log.Info("interview finalized",
			zap.Int("final_score", *c.session.FinalScore),
			zap.Int("steps", len(c.session.Steps)),
			zap.Bool("stopped", stopped),
		)
	} else {
		c.log.Info("interview ended without any recorded answers", zap.Bool("stopped", stopped))
	}

	if stopped {
		c.transition(StateStopped)
		return
	}
	c.transition(StateCompleted)
}

func (c *Controller) say(ctx context.Context, text string) {
	if err := c.speaker.Speak(ctx, text); err != nil {
		// Speech output failures degrade to log-only; the interview
		// proceeds.
		c.log.Warn("speech output failed",
			zap.String("speaker", c.speaker.Name()),
			zap.Error(err),
		)
	}
}

func (c *Controller) stopPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopRequested
}

func (c *Controller) transition(next State) {
	c.mu.Lock()
	prev := c.state
	c.state = next
	c.mu.Unlock()

	c.log.Debug("state transition",
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
}
