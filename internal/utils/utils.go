package utils

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Upstream failure categories, used for logging only.
const (
	UpstreamRateLimited = "rate_limited"
	UpstreamAuth        = "auth"
	UpstreamServer      = "server"
	UpstreamTimeout     = "timeout"
	UpstreamCanceled    = "canceled"
	UpstreamNetwork     = "network"
	UpstreamRejected    = "rejected"
	UpstreamOther       = "other"
)

// ClassifyUpstreamError buckets an AI provider error so logs can tell a rate limit
// from an outage. Nothing is retried based on it.
func ClassifyUpstreamError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return UpstreamCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return UpstreamTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return UpstreamTimeout
		}
		return UpstreamNetwork
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "rate limit"), strings.Contains(errMsg, "resource_exhausted"):
		return UpstreamRateLimited
	case strings.Contains(errMsg, "timeout"):
		return UpstreamTimeout
	case strings.Contains(errMsg, "connection reset by peer"), strings.Contains(errMsg, "connection refused"):
		return UpstreamNetwork
	}
	return UpstreamOther
}

func classifyStatus(code int) string {
	switch {
	case code == 429:
		return UpstreamRateLimited
	case code == 401 || code == 403:
		return UpstreamAuth
	case code >= 500:
		return UpstreamServer
	case code >= 400:
		return UpstreamRejected
	default:
		return UpstreamOther
	}
}
