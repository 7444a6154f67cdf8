// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/promptchat/internal/api"
	"github.com/jeranaias/promptchat/internal/logging"
	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/widget"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// scriptedReader replays lines and then returns io.EOF.
type scriptedReader struct {
	lines   []string
	secrets []string
	noTTY   bool
	history []string
	prompts []string
	closed  bool
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) PasswordPrompt(prompt string) (string, error) {
	if r.noTTY {
		return "", liner.ErrNotTerminalOutput
	}
	r.prompts = append(r.prompts, prompt)
	if len(r.secrets) == 0 {
		return "", liner.ErrPromptAborted
	}
	s := r.secrets[0]
	r.secrets = r.secrets[1:]
	return s, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

type askCall struct {
	APIKey, Model, UserInput string
}

type fakeAsker struct {
	mu     sync.Mutex
	calls  []askCall
	answer *api.Answer
}

func (f *fakeAsker) Ask(_ context.Context, apiKey, model, userInput string) *api.Answer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, askCall{apiKey, model, userInput})
	return f.answer
}

func newTestSession(reader *scriptedReader, answer *api.Answer) (*ChatSession, *widget.Widget, *fakeAsker, *bytes.Buffer) {
	w := widget.New(widget.Options{Greeting: "hello there", Model: "org/a"})
	asker := &fakeAsker{answer: answer}
	out := &bytes.Buffer{}
	s := &ChatSession{
		Widget: w,
		Asker:  asker,
		Models: []string{"org/a", "org/b"},
		Theme:  styles.NewTheme(styles.ModeDark),
		Reader: reader,
		Out:    out,
		Width:  80,
		Logger: logging.Discard(),
	}
	return s, w, asker, out
}

// =============================================================================
// RUN
// =============================================================================

func TestChatSession_PrintsGreetingAndExitsOnEOF(t *testing.T) {
	reader := &scriptedReader{}
	s, _, asker, out := newTestSession(reader, nil)

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "hello there")
	assert.Contains(t, out.String(), styles.Markers.Bot)
	assert.Contains(t, out.String(), "No API key")
	assert.Empty(t, asker.calls)
	assert.Equal(t, []string{chatPrompt}, reader.prompts)
}

func TestChatSession_AskPrintsAnswer(t *testing.T) {
	reader := &scriptedReader{lines: []string{"What is Go?"}}
	s, w, asker, out := newTestSession(reader, &api.Answer{Success: true, Message: "A language."})
	w.SetAPIKey("hf_key")

	require.NoError(t, s.Run(context.Background()))

	require.Len(t, asker.calls, 1)
	assert.Equal(t, askCall{"hf_key", "org/a", "What is Go?"}, asker.calls[0])
	assert.Contains(t, out.String(), "A language.")
	assert.Equal(t, []string{"What is Go?"}, reader.history)

	state := w.Snapshot()
	require.Len(t, state.Interactions, 3)
	assert.Equal(t, widget.Interaction{IsBot: false, Message: "What is Go?"}, state.Interactions[1])
	assert.Equal(t, widget.Interaction{IsBot: true, Message: "A language."}, state.Interactions[2])
	assert.Empty(t, state.Question)
	assert.False(t, state.Processing)
}

func TestChatSession_DoubleSlashSendsLiteralLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"//etc/hosts explain", "/etc/hosts explain"},
		{"  //help", "/help"},
		{"//", "/"},
	}

	for _, tt := range tests {
		reader := &scriptedReader{lines: []string{tt.line}}
		s, w, asker, out := newTestSession(reader, &api.Answer{Success: true, Message: "ok"})

		require.NoError(t, s.Run(context.Background()))

		require.Len(t, asker.calls, 1, "line %q", tt.line)
		if asker.calls[0].UserInput != tt.want {
			t.Errorf("line %q sent %q, want %q", tt.line, asker.calls[0].UserInput, tt.want)
		}
		assert.NotContains(t, out.String(), "unknown command")
		assert.Equal(t, tt.want, w.Snapshot().Interactions[1].Message)
	}
}

func TestChatSession_UserLineIsNotEchoed(t *testing.T) {
	reader := &scriptedReader{lines: []string{"unique question text"}}
	s, _, _, out := newTestSession(reader, &api.Answer{Success: true, Message: "ok"})

	require.NoError(t, s.Run(context.Background()))

	assert.NotContains(t, out.String(), "unique question text")
}

func TestChatSession_FailedAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer *api.Answer
	}{
		{"unsuccessful", &api.Answer{Success: false}},
		{"nil answer", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &scriptedReader{lines: []string{"hi"}}
			s, w, _, out := newTestSession(reader, tt.answer)

			require.NoError(t, s.Run(context.Background()))

			assert.Contains(t, out.String(), noAnswerText)
			state := w.Snapshot()
			assert.True(t, state.LastFailed)
			assert.Equal(t, "hi", state.Question)
			require.Len(t, state.Interactions, 2)
			assert.False(t, state.Interactions[1].IsBot)
		})
	}
}

func TestChatSession_BlankLinesAreIgnored(t *testing.T) {
	reader := &scriptedReader{lines: []string{"", "   ", "\t"}}
	s, w, asker, _ := newTestSession(reader, &api.Answer{Success: true})

	require.NoError(t, s.Run(context.Background()))

	assert.Empty(t, asker.calls)
	assert.Empty(t, reader.history)
	assert.Len(t, w.Snapshot().Interactions, 1)
}

func TestChatSession_QuitCommands(t *testing.T) {
	for _, cmd := range []string{"/quit", "/exit", "/q", "/QUIT"} {
		t.Run(cmd, func(t *testing.T) {
			reader := &scriptedReader{lines: []string{cmd, "never read"}}
			s, _, asker, _ := newTestSession(reader, &api.Answer{Success: true})

			require.NoError(t, s.Run(context.Background()))

			assert.Equal(t, []string{"never read"}, reader.lines)
			assert.Empty(t, asker.calls)
		})
	}
}

func TestChatSession_StopsOnAbort(t *testing.T) {
	reader := &abortingReader{}
	s, _, _, _ := newTestSession(nil, nil)
	s.Reader = reader

	assert.NoError(t, s.Run(context.Background()))
}

func TestChatSession_StopsWhenContextDone(t *testing.T) {
	reader := &scriptedReader{lines: []string{"hi"}}
	s, _, asker, _ := newTestSession(reader, &api.Answer{Success: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx))
	assert.Empty(t, asker.calls)
}

func TestChatSession_ReadErrorIsReturned(t *testing.T) {
	s, _, _, _ := newTestSession(nil, nil)
	s.Reader = &failingReader{err: errors.New("tty gone")}

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

type abortingReader struct{ scriptedReader }

func (r *abortingReader) Prompt(string) (string, error) { return "", liner.ErrPromptAborted }

type failingReader struct {
	scriptedReader
	err error
}

func (r *failingReader) Prompt(string) (string, error) { return "", r.err }

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func TestChatSession_ModelCommand(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantModel string
		wantOut   string
		wantErr   string
	}{
		{"show current", "/model", "org/a", "org/a", ""},
		{"select listed", "/model org/b", "org/b", "Switched to model: org/b", ""},
		{"alias", "/m org/b", "org/b", "Switched to model: org/b", ""},
		{"reject unlisted", "/model org/zzz", "org/a", "", "unknown model: org/zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w, _, out := newTestSession(&scriptedReader{}, nil)

			keepGoing, err := s.HandleLine(context.Background(), tt.line)
			assert.True(t, keepGoing)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, out.String(), tt.wantOut)
			}
			assert.Equal(t, tt.wantModel, w.Snapshot().Model)
		})
	}
}

func TestChatSession_ModelsCommandMarksCurrent(t *testing.T) {
	s, w, _, out := newTestSession(&scriptedReader{}, nil)
	w.SelectModel("org/b")

	_, err := s.HandleLine(context.Background(), "/models")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "  org/a")
	assert.Contains(t, out.String(), "* org/b")
}

func TestChatSession_KeyCommand(t *testing.T) {
	t.Run("sets key from password prompt", func(t *testing.T) {
		reader := &scriptedReader{secrets: []string{"  hf_new  "}}
		s, w, _, out := newTestSession(reader, nil)

		_, err := s.HandleLine(context.Background(), "/key")
		require.NoError(t, err)

		assert.Equal(t, "hf_new", w.Snapshot().APIKey)
		assert.Contains(t, reader.prompts, keyPrompt)
		assert.NotContains(t, out.String(), "hf_new")
	})

	t.Run("falls back to plain prompt without a terminal", func(t *testing.T) {
		reader := &scriptedReader{noTTY: true, lines: []string{"hf_piped"}}
		s, w, _, _ := newTestSession(reader, nil)

		_, err := s.HandleLine(context.Background(), "/key")
		require.NoError(t, err)
		assert.Equal(t, "hf_piped", w.Snapshot().APIKey)
	})

	t.Run("empty entry clears the key", func(t *testing.T) {
		reader := &scriptedReader{secrets: []string{""}}
		s, w, _, out := newTestSession(reader, nil)
		w.SetAPIKey("old")

		_, err := s.HandleLine(context.Background(), "/key")
		require.NoError(t, err)
		assert.Empty(t, w.Snapshot().APIKey)
		assert.Contains(t, out.String(), "Key cleared.")
	})

	t.Run("abort keeps the key", func(t *testing.T) {
		reader := &scriptedReader{}
		s, w, _, out := newTestSession(reader, nil)
		w.SetAPIKey("old")

		_, err := s.HandleLine(context.Background(), "/key")
		require.NoError(t, err)
		assert.Equal(t, "old", w.Snapshot().APIKey)
		assert.Contains(t, out.String(), "Key unchanged.")
	})
}

func TestChatSession_KeyIsUsedForNextQuestion(t *testing.T) {
	reader := &scriptedReader{secrets: []string{"hf_k"}, lines: []string{"/key", "hello"}}
	s, _, asker, _ := newTestSession(reader, &api.Answer{Success: true, Message: "hi"})

	require.NoError(t, s.Run(context.Background()))

	require.Len(t, asker.calls, 1)
	assert.Equal(t, "hf_k", asker.calls[0].APIKey)
}

func TestChatSession_HelpAndUnknown(t *testing.T) {
	s, _, _, out := newTestSession(&scriptedReader{}, nil)

	_, err := s.HandleLine(context.Background(), "/help")
	require.NoError(t, err)
	for _, cmd := range []string{"/model [id]", "/models", "/key", "/quit"} {
		assert.Contains(t, out.String(), cmd)
	}

	keepGoing, err := s.HandleLine(context.Background(), "/bogus")
	assert.True(t, keepGoing)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown command: /bogus"))
}

func TestChatSession_UnknownCommandDoesNotEndRun(t *testing.T) {
	reader := &scriptedReader{lines: []string{"/bogus", "hi"}}
	s, _, asker, out := newTestSession(reader, &api.Answer{Success: true, Message: "yo"})

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "unknown command")
	assert.Len(t, asker.calls, 1)
}
