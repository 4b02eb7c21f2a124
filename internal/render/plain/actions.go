package plain

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"
)

// Action is an abstract intent behind a button click.
type Action string

const (
	ActionSubmit        Action = "submit"
	ActionApprove       Action = "approve"
	ActionDecline       Action = "decline"
	ActionOpen          Action = "open"
	ActionClose         Action = "close"
	ActionSaveDraft     Action = "save-draft"
	ActionGenericSubmit Action = "generic-submit"
)

// Actions lists every action InferAction can return.
var Actions = []Action{
	ActionSubmit, ActionApprove, ActionDecline, ActionOpen, ActionClose, ActionSaveDraft, ActionGenericSubmit,
}

// actionRules are checked in order; the first rule with a word matching one of
// its keywords wins.
var actionRules = []struct {
	action Action
	words  []string
}{
	{ActionSaveDraft, []string{"save draft", "save as draft", "draft"}},
	{ActionDecline, []string{"decline", "reject", "deny"}},
	{ActionApprove, []string{"approve", "accept", "confirm", "award"}},
	{ActionClose, []string{"cancel", "close", "dismiss", "back"}},
	{ActionOpen, []string{"open", "view", "show", "details", "edit"}},
	{ActionSubmit, []string{"submit", "send", "request", "save", "apply"}},
}

// InferAction guesses an action from a button's visible text. A keyword
// matches at the start of a word, so "Viewing" opens but "Review" does not.
// It is a best-effort heuristic for preview interactivity: wording it does not
// recognize falls back to ActionGenericSubmit, and a label like "Reject draft"
// resolves to whichever rule comes first.
func InferAction(text string) Action {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	t := " " + strings.Join(words, " ")
	for _, r := range actionRules {
		for _, w := range r.words {
			if strings.Contains(t, " "+w) {
				return r.action
			}
		}
	}
	return ActionGenericSubmit
}

// Click is one button press reported by the preview.
type Click struct {
	Action Action `json:"action"`
	Text   string `json:"text,omitempty"`
	NodeID string `json:"nodeId,omitempty"`
}

// Handler reacts to a click.
type Handler func(ctx context.Context, c Click) (string, error)

// ErrNoHandler is returned by Dispatch when neither the action nor
// ActionGenericSubmit has a handler.
var ErrNoHandler = errors.New("plain: no handler for action")

// ActionTable maps actions to handlers for one render session. It is passed
// to the backend and to whatever receives clicks.
type ActionTable struct {
	mu       sync.RWMutex
	handlers map[Action]Handler
}

// NewActionTable creates an empty table.
func NewActionTable() *ActionTable {
	return &ActionTable{handlers: make(map[Action]Handler)}
}

// Handle registers h for a, replacing any previous handler.
func (t *ActionTable) Handle(a Action, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[a] = h
}

// Resolve returns the action that Dispatch would run for a.
func (t *ActionTable) Resolve(a Action) (Action, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.handlers[a]; ok {
		return a, true
	}
	if _, ok := t.handlers[ActionGenericSubmit]; ok {
		return ActionGenericSubmit, true
	}
	return "", false
}

// Dispatch runs the handler for c.Action, or the generic-submit handler when
// that action has none.
func (t *ActionTable) Dispatch(ctx context.Context, c Click) (string, error) {
	a, ok := t.Resolve(c.Action)
	if !ok {
		return "", ErrNoHandler
	}
	t.mu.RLock()
	h := t.handlers[a]
	t.mu.RUnlock()
	return h(ctx, c)
}
