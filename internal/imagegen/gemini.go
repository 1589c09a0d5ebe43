// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagegen

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend implements ImageBackend against the Gemini API.
type GeminiBackend struct {
	// Client is the shared genai client, constructed once per run.
	Client *genai.Client

	// Model is the image model identifier
	// (e.g. "gemini-2.0-flash-preview-image-generation").
	Model string
}

// GenerateImage requests text and image response modalities and returns the
// data of the first part carrying inline binary image data.
func (g *GeminiBackend) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("calling image model %s: %w", g.Model, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("image model %s returned no candidates", g.Model)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}

	return nil, fmt.Errorf("image model %s returned no inline image data", g.Model)
}
