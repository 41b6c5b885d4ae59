package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator sends one prompt to a hosted language model and returns the cleaned text.
// An empty string is a valid answer.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn completion request.
// Zero Model and nil Temperature select the backend defaults.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature *float32
	Model       string
}

const (
	MinTemperature = 0
	MaxTemperature = 2
)

var (
	ErrEmptyPrompt        = errors.New("prompt is empty")
	ErrInvalidMaxTokens   = errors.New("max tokens must be positive")
	ErrInvalidTemperature = fmt.Errorf("temperature must be within [%d, %d]", MinTemperature, MaxTemperature)
)

// Validate checks the request bounds before any network call.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if r.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}
	if r.Temperature != nil && (*r.Temperature < MinTemperature || *r.Temperature > MaxTemperature) {
		return ErrInvalidTemperature
	}
	return nil
}

// InferenceError wraps any failure reported by the model service or its transport.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("language model request failed: %v", e.Err)
	}
	return fmt.Sprintf("language model request failed (model=%s): %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Temperature is a convenience for building a Request literal.
func Temperature(v float32) *float32 {
	return &v
}
