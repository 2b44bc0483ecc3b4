package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
	seen  []Message
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Reply(_ context.Context, history []Message, _ string) (string, error) {
	f.calls++
	f.seen = history
	return f.reply, f.err
}

func TestOpenAIProvider_Reply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 800, req.MaxTokens)
		if !assert.Len(t, req.Messages, 3) {
			return
		}
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, openAIMessage{Role: "user", Content: "I have a headache"}, req.Messages[2])

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "Drink water."}}},
		})
	}))
	defer server.Close()

	p := NewOpenAIProvider("sk-test", server.URL, "", 5*time.Second)
	history := []Message{{Role: RoleSystem, Content: SystemPrompt}, {Role: RoleAssistant, Content: Greeting}}

	got, err := p.Reply(context.Background(), history, "I have a headache")
	require.NoError(t, err)
	assert.Equal(t, "Drink water.", got)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "", time.Second).Reply(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	_, err = NewOpenAIProvider("k", server.URL, "", time.Second).Reply(context.Background(), nil, "hi")
	assert.ErrorContains(t, err, "rate limited")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()

	_, err = NewOpenAIProvider("k", empty.URL, "", time.Second).Reply(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestHuggingFaceProvider_Reply(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", `{"generated_text":"Stay rested."}`},
		{"list", `[{"generated_text":"Stay rested."}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					Inputs struct {
						Text string `json:"text"`
					} `json:"inputs"`
				}
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.True(t, strings.HasSuffix(req.Inputs.Text, "User: tired"))
				assert.Empty(t, r.Header.Get("Authorization"))
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := NewHuggingFaceProvider(server.URL, "", true, time.Second).Reply(context.Background(), nil, "tired")
			require.NoError(t, err)
			assert.Equal(t, "Stay rested.", got)
		})
	}
}

func TestHuggingFaceProvider_Disabled(t *testing.T) {
	_, err := NewHuggingFaceProvider("", "", false, time.Second).Reply(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGeminiProvider_WithoutKey(t *testing.T) {
	p, err := NewGeminiProvider(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, defaultGeminiModel, p.model)

	_, err = p.Reply(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLocalResponder(t *testing.T) {
	var r LocalResponder

	assert.Equal(t, localTopics[0].reply, r.Respond("Hi there"))
	assert.Equal(t, localTopics[1].reply, r.Respond("I have HEAD PAIN today"))
	assert.Equal(t, localTopics[2].reply, r.Respond("think I caught the flu"))
	assert.Equal(t, localTopics[6].reply, r.Respond("insomnia again"))

	inflected := map[string]int{
		"I feel so stressed lately": 5,
		"I am feverish":             2,
		"tips for sleeping better":  6,
		"I get headaches daily":     1,
		"Best exercises for back?":  4,
		"what should I be eating":   3,
	}
	for msg, topic := range inflected {
		assert.Equal(t, localTopics[topic].reply, r.Respond(msg), msg)
	}

	// "this" and "which" must not count as a greeting.
	got := r.Respond("which vitamins are useful in this season?")
	assert.True(t, strings.HasPrefix(got, "I understand you're asking about which vitamins are useful in t..."))
}

func TestChain_FirstUsableProviderWins(t *testing.T) {
	unconfigured := &fakeProvider{name: "openai", err: ErrNotConfigured}
	failing := &fakeProvider{name: "gemini", err: errors.New("boom")}
	empty := &fakeProvider{name: "empty", reply: "   "}
	good := &fakeProvider{name: "huggingface", reply: "answer"}
	never := &fakeProvider{name: "never", reply: "unused"}

	c := NewChain(nil, unconfigured, failing, empty, good, never)
	got := c.Reply(context.Background(), nil, "hello")

	assert.Equal(t, Reply{Content: "answer", Provider: "huggingface", Status: StatusOnline}, got)
	assert.Equal(t, 1, unconfigured.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, good.calls)
	assert.Equal(t, 0, never.calls)
}

func TestChain_FallsBackOffline(t *testing.T) {
	c := NewChain(nil, &fakeProvider{name: "a", err: errors.New("down")})
	got := c.Reply(context.Background(), nil, "how much sleep do I need")

	assert.Equal(t, StatusOffline, got.Status)
	assert.Equal(t, "fallback", got.Provider)
	assert.Equal(t, NoticeOffline, got.Notice)
	assert.Equal(t, localTopics[6].reply, got.Content)
}

func TestChain_CanceledContextGoesOffline(t *testing.T) {
	p := &fakeProvider{name: "a", reply: "never"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := NewChain(nil, p).Reply(ctx, nil, "hi")
	assert.Equal(t, StatusOffline, got.Status)
	assert.Equal(t, 0, p.calls)
}

type panicProvider struct{}

func (panicProvider) Name() string { return "panic" }
func (panicProvider) Reply(context.Context, []Message, string) (string, error) {
	panic("unexpected")
}

func TestChain_RecoversFromPanic(t *testing.T) {
	got := NewChain(nil, panicProvider{}).Reply(context.Background(), nil, "hi")
	assert.Equal(t, ApologyReply, got.Content)
	assert.Equal(t, NoticeError, got.Notice)
}

func TestService_Send(t *testing.T) {
	p := &fakeProvider{name: "openai", reply: "Rest and hydrate."}
	svc := NewService(NewStore(), NewChain(nil, p))

	conv := svc.Start()
	require.Len(t, conv.Messages(), 2)
	assert.Len(t, conv.Visible(), 1)

	ex, err := svc.Send(context.Background(), conv.ID, "  I feel feverish  ")
	require.NoError(t, err)
	assert.Equal(t, "I feel feverish", ex.Question.Content)
	assert.Equal(t, "Rest and hydrate.", ex.Answer.Content)
	assert.Equal(t, StatusOnline, ex.Status)

	// Providers see the history before the new message.
	assert.Len(t, p.seen, 2)

	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, RoleUser, msgs[2].Role)
	assert.Equal(t, RoleAssistant, msgs[3].Role)
	assert.False(t, msgs[3].Timestamp.Before(msgs[2].Timestamp))
}

func TestService_SendErrors(t *testing.T) {
	svc := NewService(NewStore(), NewChain(nil))
	conv := svc.Start()

	_, err := svc.Send(context.Background(), conv.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Send(context.Background(), uuid.New(), "hi")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}
