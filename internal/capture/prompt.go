package capture

import (
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// TerminalPrompt asks the candidate to type an answer. It is the production
// Manual fallback; outside a terminal it reports no answer so unattended runs
// degrade to empty responses instead of hanging.
func TerminalPrompt(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	input := promptui.Prompt{
		Label:     prompt,
		AllowEdit: true,
	}

	answer, err := input.Run()
	if err != nil {
		// Treat ^C and any terminal error as an empty answer; capture
		// failures never abort the interview.
		return "", err
	}

	return answer, nil
}
