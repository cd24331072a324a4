package auth

import (
	"context"

	"github.com/viant/grocery/client"
	"github.com/viant/grocery/schema"
)

// Phase represents presentation phase of a submitted action
type Phase int

const (
	Idle Phase = iota
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// State is emitted to the presentation layer
type State struct {
	Phase       Phase
	Message     string
	FieldErrors map[string]string
	Err         error
}

func (s State) Terminal() bool {
	return s.Phase == Succeeded || s.Phase == Failed
}

// Watch runs action asynchronously. The returned channel yields Submitting, then
// exactly one terminal state and is closed.
func Watch(ctx context.Context, action func(ctx context.Context) State) <-chan State {
	ret := make(chan State, 2)
	ret <- State{Phase: Submitting}
	go func() {
		defer close(ret)
		state := action(ctx)
		if !state.Terminal() {
			state.Phase = Failed
		}
		ret <- state
	}()
	return ret
}

// Outcome maps a call result to a terminal state: pipeline errors use a generic
// message, business failures the envelope message and field errors.
func Outcome[T any](response *schema.Response[T], err error) State {
	if err != nil {
		return State{Phase: Failed, Message: client.Message(err), Err: err}
	}
	if response.OK() {
		return State{Phase: Succeeded, Message: response.Message}
	}
	state := State{Phase: Failed, FieldErrors: response.FieldErrors()}
	if response != nil {
		state.Message = response.Message
	}
	return state
}
