// Package aitest provides an in-process stand-in for the OpenAI HTTP API so the
// real go-openai client can be exercised in tests.
package aitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// FakeOpenAI serves /v1/chat/completions and /v1/images/generations.
// Set the exported knobs before the first call.
type FakeOpenAI struct {
	Server *httptest.Server

	// ChatContent is returned as the first choice's message content.
	ChatContent string
	// ChatStatus, when non-zero, makes the chat endpoint fail with that status.
	ChatStatus int
	// NoChoices returns a completion with an empty choices array.
	NoChoices bool
	// ImageFailOn fails the n-th image call (1-based) with a 500; 0 never fails.
	ImageFailOn int
	// ImageDelay is slept inside each image call, widening any overlap window.
	ImageDelay time.Duration

	mu            sync.Mutex
	chatRequests  []openai.ChatCompletionRequest
	imageRequests []openai.ImageRequest
	inFlight      int
	overlapped    bool
	events        []string
}

func NewFakeOpenAI(t testing.TB) *FakeOpenAI {
	t.Helper()
	f := &FakeOpenAI{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL is the value for OPENAI_BASE_URL.
func (f *FakeOpenAI) BaseURL() string {
	return f.Server.URL + "/v1"
}

// Client returns a go-openai client pointed at the fake.
func (f *FakeOpenAI) Client() *openai.Client {
	config := openai.DefaultConfig("test-key")
	config.BaseURL = f.BaseURL()
	return openai.NewClientWithConfig(config)
}

// ImageURL is the URL the fake hands out for the n-th image call (1-based). It carries
// a signed-URL style query string like the hosted image links OpenAI returns.
func ImageURL(n int) string {
	return fmt.Sprintf("https://images.example/generated-%d.png?st=2024-01-01&se=2024-01-02&sig=abc%%3D", n)
}

func (f *FakeOpenAI) ChatRequests() []openai.ChatCompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), f.chatRequests...)
}

func (f *FakeOpenAI) ImageRequests() []openai.ImageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]openai.ImageRequest(nil), f.imageRequests...)
}

// ImagePrompts lists the prompts of every image call in arrival order.
func (f *FakeOpenAI) ImagePrompts() []string {
	var prompts []string
	for _, req := range f.ImageRequests() {
		prompts = append(prompts, req.Prompt)
	}
	return prompts
}

// Overlapped reports whether two image calls were ever in flight at once.
func (f *FakeOpenAI) Overlapped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlapped
}

// Events is the start/end timeline of image calls, e.g. ["start 1", "end 1", ...].
func (f *FakeOpenAI) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *FakeOpenAI) serve(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/chat/completions":
		f.serveChat(w, r)
	case "/v1/images/generations":
		f.serveImage(w, r)
	default:
		writeError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
	}
}

func (f *FakeOpenAI) serveChat(w http.ResponseWriter, r *http.Request) {
	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	f.mu.Lock()
	f.chatRequests = append(f.chatRequests, req)
	status, content, noChoices := f.ChatStatus, f.ChatContent, f.NoChoices
	f.mu.Unlock()

	if status != 0 {
		writeError(w, status, "chat failure")
		return
	}

	resp := openai.ChatCompletionResponse{
		ID:      "chatcmpl-test",
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []openai.ChatCompletionChoice{},
	}
	if !noChoices {
		resp.Choices = append(resp.Choices, openai.ChatCompletionChoice{
			Index:        0,
			FinishReason: openai.FinishReasonStop,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (f *FakeOpenAI) serveImage(w http.ResponseWriter, r *http.Request) {
	var req openai.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	f.mu.Lock()
	f.imageRequests = append(f.imageRequests, req)
	n := len(f.imageRequests)
	f.inFlight++
	if f.inFlight > 1 {
		f.overlapped = true
	}
	f.events = append(f.events, fmt.Sprintf("start %d", n))
	failOn, delay := f.ImageFailOn, f.ImageDelay
	f.mu.Unlock()

	time.Sleep(delay)

	f.mu.Lock()
	f.inFlight--
	f.events = append(f.events, fmt.Sprintf("end %d", n))
	f.mu.Unlock()

	if failOn == n {
		writeError(w, http.StatusInternalServerError, "image failure")
		return
	}

	writeJSON(w, http.StatusOK, openai.ImageResponse{
		Created: time.Now().Unix(),
		Data:    []openai.ImageResponseDataInner{{URL: ImageURL(n)}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"message": message, "type": "server_error"},
	})
}
