package speech

import (
	"context"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// candidate TTS binaries, in preference order.
var ttsBinaries = []string{"say", "espeak-ng", "espeak"}

var lookPath = exec.LookPath

// ExecSpeaker speaks by shelling out to a local text-to-speech binary.
// The process inherits the context, so cancelling an interview kills an
// in-flight utterance.
type ExecSpeaker struct {
	binary string
	logger *zap.Logger
}

// NewExecSpeaker locates a usable TTS binary on PATH. An error here means no
// speech output is available on this machine; callers are expected to fall
// back to a NullSpeaker.
func NewExecSpeaker(logger *zap.Logger) (*ExecSpeaker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, name := range ttsBinaries {
		path, err := lookPath(name)
		if err != nil {
			continue
		}

		logger.Debug("found text-to-speech binary", zap.String("binary", path))
		return &ExecSpeaker{binary: path, logger: logger}, nil
	}

	return nil, fmt.Errorf("no text-to-speech binary found (tried %v)", ttsBinaries)
}

func (s *ExecSpeaker) Name() string { return "exec:" + s.binary }

func (s *ExecSpeaker) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, s.binary, text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speaking via %s: %w", s.binary, err)
	}

	return nil
}

// NullSpeaker completes every utterance instantly. Used when speech output is
// unsupported or disabled, so the interview proceeds log-only.
type NullSpeaker struct{}

func (NullSpeaker) Name() string { return "null" }

func (NullSpeaker) Speak(context.Context, string) error { return nil }
