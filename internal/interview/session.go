// Package interview owns the interview session: the turn-sequencing state
// machine, the recorded steps, final-score aggregation, and the JSON export
// of a finished run.
package interview

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// State names one phase of the interview state machine.
type State string

const (
	StateIdle               State = "idle"
	StateGreeting           State = "greeting"
	StateAskingQuestion     State = "asking_question"
	StateCapturingAnswer    State = "capturing_answer"
	StateEvaluating         State = "evaluating"
	StateAskingFollowup     State = "asking_followup"
	StateCapturingFollowup  State = "capturing_followup_answer"
	StateEvaluatingFollowup State = "evaluating_followup"
	StateAdvancing          State = "advancing"
	StateCompleted          State = "completed"
	StateStopped            State = "stopped"
)

// Terminal reports whether the state ends the interview.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateStopped
}

// Step records one evaluated question/answer exchange. Immutable once
// appended to the session.
type Step struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Score     int       `json:"score"`
	Rationale string    `json:"rationale"`
	Timestamp time.Time `json:"timestamp"`
	Followup  bool      `json:"followup"`
}

// Session is one complete interview run. It is owned exclusively by the
// Controller for its lifetime; collaborators only ever read it.
type Session struct {
	ID          string     `json:"id"`
	JobKey      string     `json:"jobKey"`
	JobTitle    string     `json:"jobTitle"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Steps       []Step     `json:"steps"`
	FinalScore  *int       `json:"finalScore,omitempty"`
}

// NewSession creates a fresh session for the given role.
func NewSession(jobKey, jobTitle string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		JobKey:    jobKey,
		JobTitle:  jobTitle,
		StartedAt: time.Now(),
		Steps:     []Step{},
	}
}

// append records a step, stamping its timestamp.
func (s *Session) append(step Step) {
	step.Timestamp = time.Now()
	s.Steps = append(s.Steps, step)
}

// Finalize computes the final score as the rounded mean over all steps,
// follow-ups included, and stamps the completion time. It is a no-op on a
// session with no steps, which therefore never gets a final score.
func (s *Session) Finalize() {
	if len(s.Steps) == 0 {
		return
	}

	sum := 0
	for _, step := range s.Steps {
		sum += step.Score
	}

	score := int(math.Round(float64(sum) / float64(len(s.Steps))))
	now := time.Now()
	s.FinalScore = &score
	s.CompletedAt = &now
}
