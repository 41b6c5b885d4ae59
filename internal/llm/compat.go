package llm

import "context"

// AskOpenAI sends prompt with the default model and temperature.
//
// Deprecated: kept for callers of the old OpenAI-named helper; the request is
// served by whatever Generator is passed in. Use Generator.Generate.
func AskOpenAI(ctx context.Context, g Generator, prompt string, maxTokens int) (string, error) {
	return g.Generate(ctx, Request{Prompt: prompt, MaxTokens: maxTokens})
}
