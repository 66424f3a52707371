// README: Conversation aggregate, step state machine, and status definitions.
package conversation

import (
	"errors"
	"time"

	"farelink/internal/types"
)

// Step tracks how far the search-building dialogue has progressed.
type Step string

const (
	StepInitial    Step = "initial"
	StepCollecting Step = "collecting"
	StepConfirming Step = "confirming"
	StepComplete   Step = "complete"
)

// Status is the conversation-level lifecycle, orthogonal to Step.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

var (
	ErrNotFound   = errors.New("conversation not found")
	ErrCompleted  = errors.New("conversation already completed")
	ErrBadRequest = errors.New("bad request")
)

type Conversation struct {
	ID        types.ID
	UserID    string
	Status    Status
	Step      Step
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID             int64
	ConversationID types.ID
	Role           string // "user" or "assistant"
	Content        string
	CreatedAt      time.Time
}

// AllowedStepTransitions represents the step flow as code. Complete is
// terminal: the only way out is starting a fresh specification.
var AllowedStepTransitions = map[Step][]Step{
	StepInitial:    {StepCollecting, StepConfirming, StepComplete},
	StepCollecting: {StepCollecting, StepConfirming, StepComplete},
	StepConfirming: {StepCollecting, StepConfirming, StepComplete},
}

func CanTransition(from, to Step) bool {
	next, ok := AllowedStepTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// NextStep applies the transition rule after a merge-and-evaluate cycle:
// completeness wins, otherwise the extractor's suggested step drives the
// move, defaulting to collecting when no usable signal exists.
func NextStep(current Step, complete bool, suggested string) Step {
	if current == StepComplete {
		return StepComplete
	}
	if complete {
		return StepComplete
	}
	target := StepCollecting
	if s := Step(suggested); s == StepCollecting || s == StepConfirming {
		target = s
	}
	if !CanTransition(current, target) {
		return current
	}
	return target
}
