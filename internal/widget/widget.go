// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget holds the chat session state and the actions that mutate it.
package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/jeranaias/promptchat/internal/api"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultGreeting = "Hi! 👋, try to prompt and see what happens."
	DefaultModel    = "huggingface-projects/llama-3.2-3B-Instruct"
)

// Errors returned by Begin. Both mean no request must be sent.
var (
	// ErrEmptyQuestion is returned when the question is zero-length.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a question is already being answered")
)

// =============================================================================
// TYPES
// =============================================================================

// Interaction is one transcript entry.
type Interaction struct {
	IsBot   bool
	Message string
}

// State is a copy of the session state. Mutating it has no effect on the
// widget.
type State struct {
	APIKey       string
	Model        string
	Processing   bool
	Question     string
	Interactions []Interaction

	// LastFailed is set when the most recent submission settled without an
	// answer. It is cleared by the next Begin.
	LastFailed bool
}

// Request is the snapshot of the state taken when a submission begins.
type Request struct {
	APIKey    string
	Model     string
	UserInput string
}

// Observer receives a state snapshot after every mutation.
type Observer func(State)

// AppendHook is invoked after an entry has been appended and observers have
// been notified. index is the position of entry in the transcript.
type AppendHook func(index int, entry Interaction)

// Options configures a new Widget.
type Options struct {
	Greeting string
	Model    string
	APIKey   string
}

// Widget is the chat session store.
type Widget struct {
	mu sync.Mutex

	state State

	nextID    int
	observers map[int]Observer
	order     []int
	hooks     []AppendHook
}

// New creates a widget whose transcript holds the greeting as its only entry.
func New(opts Options) *Widget {
	if opts.Greeting == "" {
		opts.Greeting = DefaultGreeting
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Widget{
		state: State{
			APIKey: opts.APIKey,
			Model:  opts.Model,
			Interactions: []Interaction{
				{IsBot: true, Message: opts.Greeting},
			},
		},
		observers: make(map[int]Observer),
	}
}

// =============================================================================
// READS
// =============================================================================

// Snapshot returns a copy of the current state.
func (w *Widget) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyStateLocked()
}

// Processing reports whether a submission is in flight.
func (w *Widget) Processing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Processing
}

func (w *Widget) copyStateLocked() State {
	s := w.state
	s.Interactions = make([]Interaction, len(w.state.Interactions))
	copy(s.Interactions, w.state.Interactions)
	return s
}

// =============================================================================
// ACTIONS
// =============================================================================

// SetQuestion replaces the pending question text.
func (w *Widget) SetQuestion(text string) {
	w.mutate(func(s *State) bool {
		if s.Question == text {
			return false
		}
		s.Question = text
		return true
	})
}

// SetAPIKey replaces the API key held in memory. The key is not validated.
func (w *Widget) SetAPIKey(key string) {
	w.mutate(func(s *State) bool {
		if s.APIKey == key {
			return false
		}
		s.APIKey = key
		return true
	})
}

// SelectModel replaces the active model identifier. The identifier is not
// checked against any list.
func (w *Widget) SelectModel(modelID string) {
	w.mutate(func(s *State) bool {
		if s.Model == modelID {
			return false
		}
		s.Model = modelID
		return true
	})
}

// Begin starts a submission of the current question. It appends the user
// entry, sets Processing and returns the request to send.
//
// Whitespace is not trimmed: only a zero-length question is rejected.
func (w *Widget) Begin() (Request, error) {
	w.mu.Lock()
	if w.state.Processing {
		w.mu.Unlock()
		return Request{}, ErrBusy
	}
	if len(w.state.Question) == 0 {
		w.mu.Unlock()
		return Request{}, ErrEmptyQuestion
	}

	entry := Interaction{IsBot: false, Message: w.state.Question}
	w.state.Interactions = append(w.state.Interactions, entry)
	index := len(w.state.Interactions) - 1
	w.state.Processing = true
	w.state.LastFailed = false

	req := Request{
		APIKey:    w.state.APIKey,
		Model:     w.state.Model,
		UserInput: w.state.Question,
	}
	snapshot := w.copyStateLocked()
	observers, hooks := w.listenersLocked()
	w.mu.Unlock()

	notify(observers, snapshot)
	fire(hooks, index, entry)
	return req, nil
}

// Settle finishes the submission started by Begin. A successful answer
// appends a bot entry and clears the question. A nil or unsuccessful answer
// leaves both unchanged. Settle without a submission in flight is a no-op.
func (w *Widget) Settle(answer *api.Answer) {
	w.mu.Lock()
	if !w.state.Processing {
		w.mu.Unlock()
		return
	}

	w.state.Processing = false

	appended := false
	var entry Interaction
	var index int
	if answer != nil && answer.Success {
		entry = Interaction{IsBot: true, Message: answer.Message}
		w.state.Interactions = append(w.state.Interactions, entry)
		index = len(w.state.Interactions) - 1
		w.state.Question = ""
		appended = true
	} else {
		w.state.LastFailed = true
	}

	snapshot := w.copyStateLocked()
	observers, hooks := w.listenersLocked()
	w.mu.Unlock()

	notify(observers, snapshot)
	if appended {
		fire(hooks, index, entry)
	}
}

// Ask runs a whole submission cycle synchronously: Begin, the outbound call,
// then Settle. It reports whether a bot entry was appended.
func (w *Widget) Ask(ctx context.Context, asker api.Asker) (bool, error) {
	req, err := w.Begin()
	if err != nil {
		return false, err
	}

	answer := asker.Ask(ctx, req.APIKey, req.Model, req.UserInput)
	w.Settle(answer)
	return answer != nil && answer.Success, nil
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers an observer and returns a func that removes it.
// Observers are called outside the widget lock, in registration order.
func (w *Widget) Subscribe(observer Observer) func() {
	if observer == nil {
		return func() {}
	}

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.observers[id] = observer
	w.order = append(w.order, id)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.observers, id)
			for i, oid := range w.order {
				if oid == id {
					w.order = append(w.order[:i], w.order[i+1:]...)
					break
				}
			}
		})
	}
}

// OnAppend registers a hook invoked once per appended entry, after observers.
func (w *Widget) OnAppend(hook AppendHook) {
	if hook == nil {
		return
	}
	w.mu.Lock()
	w.hooks = append(w.hooks, hook)
	w.mu.Unlock()
}

// mutate applies fn under the lock and notifies observers when fn reports a
// change.
func (w *Widget) mutate(fn func(s *State) bool) {
	w.mu.Lock()
	if !fn(&w.state) {
		w.mu.Unlock()
		return
	}
	snapshot := w.copyStateLocked()
	observers, _ := w.listenersLocked()
	w.mu.Unlock()

	notify(observers, snapshot)
}

func (w *Widget) listenersLocked() ([]Observer, []AppendHook) {
	observers := make([]Observer, 0, len(w.order))
	for _, id := range w.order {
		observers = append(observers, w.observers[id])
	}
	hooks := make([]AppendHook, len(w.hooks))
	copy(hooks, w.hooks)
	return observers, hooks
}

func notify(observers []Observer, s State) {
	for _, o := range observers {
		// Each observer gets its own transcript slice.
		c := s
		c.Interactions = append([]Interaction(nil), s.Interactions...)
		o(c)
	}
}

func fire(hooks []AppendHook, index int, entry Interaction) {
	for _, h := range hooks {
		h(index, entry)
	}
}
