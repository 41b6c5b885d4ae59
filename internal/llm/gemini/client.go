package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"job-recommender/internal/llm"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/telemetry"
)

// contentGenerator is the slice of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options tunes the client. An empty Model or a nil Temperature falls back to
// config defaults; a Temperature outside [0, 2] does too.
type Options struct {
	Model       string
	Temperature *float32
	BaseURL     string
}

// Client implements llm.Generator on the Gemini API.
type Client struct {
	models      contentGenerator
	model       string
	temperature float32
}

// NewClient constructs a Gemini client with an explicit API key.
func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &config.ConfigurationError{Settings: []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}}
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newWithModels(client.Models, opts), nil
}

// Factory returns an llm.Factory that reads the API key from the environment
// when it runs, so a missing key surfaces on first use instead of at startup.
func Factory(opts Options) llm.Factory {
	return func(ctx context.Context) (llm.Generator, error) {
		apiKey, err := config.GeminiAPIKey()
		if err != nil {
			return nil, err
		}
		return NewClient(ctx, apiKey, opts)
	}
}

func newWithModels(models contentGenerator, opts Options) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = config.DefaultGeminiModel
	}
	temperature := config.DefaultGeminiTemperature
	if t := opts.Temperature; t != nil && *t >= llm.MinTemperature && *t <= llm.MaxTemperature {
		temperature = *t
	}
	return &Client{models: models, model: model, temperature: temperature}
}

// Generate sends a single-turn prompt and returns the trimmed text output.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	model := c.model
	if strings.TrimSpace(req.Model) != "" {
		model = strings.TrimSpace(req.Model)
	}
	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	})
	if err != nil {
		metrics.IncInferenceCall(true)
		telemetry.Error("llm.request_failed", map[string]any{
			"model":      model,
			"max_tokens": req.MaxTokens,
			"error":      describeError(err),
		})
		return "", &llm.InferenceError{Model: model, Err: err}
	}
	metrics.IncInferenceCall(false)

	out := decodeResponse(resp)
	logUsage(model, req.MaxTokens, resp, out)
	return out.Text(), nil
}

// decodeResponse prefers the SDK's text accessor and falls back to every text
// part of every candidate, in order.
func decodeResponse(resp *genai.GenerateContentResponse) llm.Output {
	if resp == nil {
		return llm.CandidateParts(nil)
	}
	if text := resp.Text(); text != "" {
		return llm.PrimaryText(text)
	}
	var parts llm.CandidateParts
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			parts = append(parts, part.Text)
		}
	}
	return parts
}

func describeError(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%d %s: %s", apiErr.Code, apiErr.Status, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return fmt.Sprintf("%d %s: %s", apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message)
	}
	return err.Error()
}

func logUsage(model string, maxTokens int, resp *genai.GenerateContentResponse, out llm.Output) {
	fields := map[string]any{
		"model":      model,
		"max_tokens": maxTokens,
		"output":     outputKind(out),
	}
	if resp != nil && resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["completion_tokens"] = resp.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = resp.UsageMetadata.TotalTokenCount
	}
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		fields["finish_reason"] = string(resp.Candidates[0].FinishReason)
	}
	telemetry.Info("llm.response", fields)
}

func outputKind(out llm.Output) string {
	switch out.(type) {
	case llm.PrimaryText:
		return "primary_text"
	default:
		return "candidate_parts"
	}
}
