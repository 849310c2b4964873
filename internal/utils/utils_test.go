package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestClassifyUpstreamError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Nil error", err: nil, expected: ""},
		{name: "Rate limited", err: &openai.APIError{HTTPStatusCode: 429, Message: "slow down"}, expected: UpstreamRateLimited},
		{name: "Unauthorized", err: &openai.APIError{HTTPStatusCode: 401, Message: "bad key"}, expected: UpstreamAuth},
		{name: "Server error", err: &openai.APIError{HTTPStatusCode: 503, Message: "overloaded"}, expected: UpstreamServer},
		{name: "Rejected request", err: &openai.APIError{HTTPStatusCode: 400, Message: "content policy"}, expected: UpstreamRejected},
		{name: "Wrapped API error", err: fmt.Errorf("image 2 of 3: %w", &openai.APIError{HTTPStatusCode: 500}), expected: UpstreamServer},
		{name: "Request error", err: &openai.RequestError{HTTPStatusCode: 502, Err: errors.New("bad gateway")}, expected: UpstreamServer},
		{name: "Canceled", err: fmt.Errorf("call: %w", context.Canceled), expected: UpstreamCanceled},
		{name: "Deadline", err: context.DeadlineExceeded, expected: UpstreamTimeout},
		{name: "Connection refused text", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), expected: UpstreamNetwork},
		{name: "Quota text", err: errors.New("Error 429, Status: RESOURCE_EXHAUSTED"), expected: UpstreamRateLimited},
		{name: "Unknown", err: errors.New("something odd"), expected: UpstreamOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyUpstreamError(tt.err))
		})
	}
}
