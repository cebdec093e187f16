package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a lookup yields no result
	ErrNotFound = errors.New("no result")
	// ErrUnavailable is returned when an upstream API cannot be reached or answers garbage
	ErrUnavailable = errors.New("provider unavailable")
)

// APIError is a non-2xx answer from an upstream API
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.Status, e.Message)
}

// IsFailure reports whether err came from an upstream API rather than from the caller
func IsFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) || errors.Is(err, ErrUnavailable)
}

// ClientOptions configures the shared outbound HTTP client
type ClientOptions struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

// NewHTTPClient builds the retrying client shared by all providers
func NewHTTPClient(opts ClientOptions, logger *zap.Logger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		c.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		c.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		c.HTTPClient.Timeout = opts.Timeout
	}
	c.Logger = leveledLogger{logger.Named("http").Sugar()}
	// hand the final response back so upstream error bodies can be reported
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return c
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }

// Do sends the request and returns the body of a 2xx response. Other statuses become *APIError
// with the upstream error message when the body carries one.
func Do(ctx context.Context, c *retryablehttp.Client, name string, req *retryablehttp.Request) ([]byte, error) {
	resp, err := c.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %s request failed: %v", ErrUnavailable, name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", name, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "message").String()
		}
		return nil, &APIError{Provider: name, Status: resp.StatusCode, Message: msg}
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s returned malformed JSON", ErrUnavailable, name)
	}
	return body, nil
}
