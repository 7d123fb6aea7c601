package stride

import "context"

// UserIO is the user-interaction capability injected into the loop: it lets
// an [AskUser] action pause the task to collect input, and lets the loop echo
// executed actions back to whoever is watching.
//
// The CLI backs it with an interactive terminal; the eval harness backs it
// with scripted answers; servers typically leave it nil, which makes AskUser
// fail with [ErrNoUserIO] instead of blocking forever on input that can
// never arrive.
type UserIO interface {
	// Prompt asks the user for input and blocks until they answer.
	Prompt(ctx context.Context, request string) (string, error)

	// Echo prints one line of output to the user.
	Echo(message string)
}
