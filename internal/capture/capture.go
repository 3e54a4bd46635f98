// Package capture collects a single interview answer, abstracting over
// whether a speech recognizer is available. A capture never fails: every
// failure mode resolves to a string, possibly empty.
package capture

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hireloop/interviewer/internal/speech"
)

// DefaultTimeout bounds how long a capture waits for a final transcript.
const DefaultTimeout = 20 * time.Second

// Capturer runs one answer-collection turn at a time. The interview
// controller is strictly sequential, so overlapping captures are a caller
// bug; the active flag only surfaces it in logs.
type Capturer struct {
	recognizer speech.Recognizer
	timeout    time.Duration
	logger     *zap.Logger

	// Interim receives partial transcripts for live display. Optional.
	Interim func(text string)
	// Manual is invoked when no recognizer is available or it fails to
	// start. Optional; when nil the answer is an empty string.
	Manual func(prompt string) (string, error)

	active bool
}

// New builds a Capturer. A nil recognizer means every capture falls back to
// manual input. A non-positive timeout selects DefaultTimeout.
func New(recognizer speech.Recognizer, timeout time.Duration, logger *zap.Logger) *Capturer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Capturer{
		recognizer: recognizer,
		timeout:    timeout,
		logger:     logger,
	}
}

// Capture collects one answer for the given prompt. It resolves with the
// first non-empty final transcript, or an empty string on timeout,
// cancellation, or an ended stream.
func (c *Capturer) Capture(ctx context.Context, prompt string) string {
	if c.active {
		c.logger.Warn("capture requested while another capture is active", zap.String("prompt", prompt))
	}
	c.active = true
	defer func() { c.active = false }()

	if c.recognizer == nil {
		return c.manual(prompt)
	}

	events, err := c.recognizer.Start(ctx)
	if err != nil {
		c.logger.Warn("speech recognizer failed to start, falling back to manual input",
			zap.String("recognizer", c.recognizer.Name()),
			zap.Error(err),
		)
		return c.manual(prompt)
	}
	// The engine holds the input stream open until told otherwise, no
	// matter which side of the race wins.
	defer c.recognizer.Stop()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("capture cancelled")
			return ""
		case <-timer.C:
			c.logger.Debug("capture timed out", zap.Duration("timeout", c.timeout))
			return ""
		case ev, ok := <-events:
			if !ok {
				c.logger.Debug("recognizer stream ended without a final transcript")
				return ""
			}

			if !ev.Final {
				if c.Interim != nil {
					c.Interim(ev.Text)
				}
				continue
			}

			text := strings.TrimSpace(ev.Text)
			if text == "" {
				continue
			}

			return text
		}
	}
}

func (c *Capturer) manual(prompt string) string {
	if c.Manual == nil {
		return ""
	}

	answer, err := c.Manual(prompt)
	if err != nil {
		c.logger.Debug("manual input unavailable", zap.Error(err))
		return ""
	}

	return strings.TrimSpace(answer)
}
