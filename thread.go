package stride

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNoActions is returned by [Thread.Last] when the thread has no history.
var ErrNoActions = errors.New("no actions in thread")

// Thread is a user query plus the ordered history of actions taken to answer
// it. History is append-only: actions are recorded in execution order and
// never reordered or removed. Its string form is pasted verbatim into driver
// prompts so the model can see what has already happened.
//
// A thread is identified by a short unique id assigned at creation and never
// reassigned. Once added to a [ThreadStore] the store entry owns the thread;
// the loop holds a transient reference while processing it.
type Thread struct {
	// ID is the short unique identifier, assigned by NewThread.
	ID string `json:"id"`

	// Query is the user query driving the thread. Follow-up user messages
	// append to it; the loop itself never writes it.
	Query string `json:"query"`

	// Actions is the executed history, in execution order. Append via Add.
	Actions []Action `json:"actions"`
}

// NewThread creates a thread for the given query with a fresh id.
func NewThread(query string) *Thread {
	return &Thread{ID: NewThreadID(), Query: query}
}

// NewThreadID returns a short unique thread identifier, the first eight hex
// characters of a random UUID.
func NewThreadID() string {
	return uuid.NewString()[:8]
}

// Add appends an action to the history and returns the thread for chaining.
func (t *Thread) Add(action Action) *Thread {
	t.Actions = append(t.Actions, action)
	return t
}

// Last returns the most recently appended action, or a failure carrying
// [ErrNoActions] when the thread is empty.
func (t *Thread) Last() Result[Action] {
	if len(t.Actions) == 0 {
		return Fail[Action](ErrNoActions.Error())
	}
	return Ok(t.Actions[len(t.Actions)-1])
}

// String renders the query and the bracketed, comma-joined action history:
//
//	User query: what is 2 + 3?
//	Thread: [Add(a=2, b=3), result=5]
func (t *Thread) String() string {
	rendered := make([]string, len(t.Actions))
	for i, action := range t.Actions {
		rendered[i] = action.String()
	}
	return fmt.Sprintf("User query: %s\nThread: [%s]", t.Query, strings.Join(rendered, ", "))
}

// ThreadStore is a concurrent-safe registry of live threads keyed by id.
// Multiple requests may add, look up and clear threads at the same time
// without corrupting the mapping. The canonical implementation is
// store.InMemory.
type ThreadStore interface {
	// Add inserts the thread under its id and returns it for chaining.
	// Adding a thread whose id is already present replaces the entry.
	Add(t *Thread) *Thread

	// Get returns the thread stored under id, or a failure when no such
	// thread exists.
	Get(id string) Result[*Thread]

	// Clear removes every thread from the store.
	Clear()
}
