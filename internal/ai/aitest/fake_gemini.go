package aitest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GeminiPredictRequest is the Imagen :predict body the genai SDK sends.
type GeminiPredictRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount int `json:"sampleCount"`
	} `json:"parameters"`
}

// FakeGemini serves the Imagen models/<model>:predict endpoint of the Gemini API.
type FakeGemini struct {
	Server *httptest.Server

	// MIMEType is reported for every image; empty leaves the field out.
	MIMEType string
	// NoPredictions answers with an empty predictions array.
	NoPredictions bool
	// Filtered answers with a prediction that carries only a safety-filter reason.
	Filtered bool
	// Status, when non-zero, makes every call fail with that status.
	Status int

	mu       sync.Mutex
	paths    []string
	apiKeys  []string
	requests []GeminiPredictRequest
}

func NewFakeGemini(t testing.TB) *FakeGemini {
	t.Helper()
	f := &FakeGemini{MIMEType: "image/png"}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL is the value for GEMINI_BASE_URL.
func (f *FakeGemini) BaseURL() string {
	return f.Server.URL + "/"
}

// GeminiImageBytes is the payload the fake returns for the n-th call (1-based).
func GeminiImageBytes(n int) []byte {
	return []byte(fmt.Sprintf("\x89PNG fake image %d", n))
}

func (f *FakeGemini) Requests() []GeminiPredictRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]GeminiPredictRequest(nil), f.requests...)
}

// Paths lists the request paths in arrival order.
func (f *FakeGemini) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

// APIKeys lists the x-goog-api-key header of every call.
func (f *FakeGemini) APIKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.apiKeys...)
}

// Prompts lists the first instance prompt of every call.
func (f *FakeGemini) Prompts() []string {
	var prompts []string
	for _, req := range f.Requests() {
		if len(req.Instances) > 0 {
			prompts = append(prompts, req.Instances[0].Prompt)
		}
	}
	return prompts
}

func (f *FakeGemini) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":predict") {
		writeGeminiError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
		return
	}

	var req GeminiPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGeminiError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.paths = append(f.paths, r.URL.Path)
	f.apiKeys = append(f.apiKeys, r.Header.Get("x-goog-api-key"))
	n := len(f.requests)
	status, mimeType, empty, filtered := f.Status, f.MIMEType, f.NoPredictions, f.Filtered
	f.mu.Unlock()

	if status != 0 {
		writeGeminiError(w, status, "imagen failure")
		return
	}

	predictions := []map[string]any{}
	switch {
	case empty:
	case filtered:
		predictions = append(predictions, map[string]any{"raiFilteredReason": "blocked by safety filter"})
	default:
		prediction := map[string]any{"bytesBase64Encoded": base64.StdEncoding.EncodeToString(GeminiImageBytes(n))}
		if mimeType != "" {
			prediction["mimeType"] = mimeType
		}
		predictions = append(predictions, prediction)
	}
	writeJSON(w, http.StatusOK, map[string]any{"predictions": predictions})
}

func writeGeminiError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": status, "message": message, "status": http.StatusText(status)},
	})
}
