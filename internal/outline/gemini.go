// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend implements TextBackend against the Gemini API.
type GeminiBackend struct {
	// Client is the shared genai client, constructed once per run.
	Client *genai.Client

	// Model is the text model identifier (e.g. "gemini-2.5-pro").
	Model string
}

// GenerateText sends the prompt to the text model and returns the first
// non-empty text part of the first candidate.
func (g *GeminiBackend) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("calling text model %s: %w", g.Model, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("text model %s returned no candidates", g.Model)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}

	return "", fmt.Errorf("text model %s returned no text part", g.Model)
}
