package eval

import (
	"context"

	"github.com/rickchristie/stride"
)

// ScriptedIO is a [stride.UserIO] that answers AskUser prompts from a fixed
// queue and discards echoes. An exhausted queue answers "", so a case that
// asks more questions than its script covers still terminates.
type ScriptedIO struct {
	answers []string
}

var _ stride.UserIO = (*ScriptedIO)(nil)

// NewScriptedIO returns a ScriptedIO replaying the given answers in order.
func NewScriptedIO(answers ...string) *ScriptedIO {
	return &ScriptedIO{answers: answers}
}

// Prompt returns the next queued answer, or "" when the queue is empty.
func (io *ScriptedIO) Prompt(_ context.Context, _ string) (string, error) {
	if len(io.answers) == 0 {
		return "", nil
	}
	answer := io.answers[0]
	io.answers = io.answers[1:]
	return answer, nil
}

// Echo discards the message.
func (io *ScriptedIO) Echo(_ string) {}
