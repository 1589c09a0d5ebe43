// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/pdiddy/deck-engine/pkg/types"
)

// Default model identifiers, overridable by flag or config.
const (
	defaultTextModel  = "gemini-2.5-pro"
	defaultImageModel = "gemini-2.0-flash-preview-image-generation"
)

// stageAIConfig resolves the AI settings for one stage: the model from the
// flag value, then the stage's config key, then the shared top-level key,
// then the built-in default; credentials from config/environment with
// .secrets/ as fallback.
func stageAIConfig(stage, model, defaultModel string) types.AIConfig {
	if model == "" {
		model = viper.GetString(stage + ".model")
	}
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = defaultModel
	}

	return types.AIConfig{
		Model:    model,
		APIKey:   secretDefault("gemini-api-key", viper.GetString("api_key")),
		Project:  secretDefault("google-cloud-project", viper.GetString("project")),
		Location: secretDefault("google-cloud-location", viper.GetString("location")),
	}
}

// newGenaiClient constructs the genai client for a pipeline run. A project
// selects the Vertex AI backend; otherwise an API key selects the Gemini API
// backend.
func newGenaiClient(ctx context.Context, cfg types.AIConfig) (*genai.Client, error) {
	var cc *genai.ClientConfig

	switch {
	case cfg.Project != "":
		location := cfg.Location
		if location == "" {
			location = "us-central1"
		}
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: location,
		}
	case cfg.APIKey != "":
		cc = &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			APIKey:  cfg.APIKey,
		}
	default:
		return nil, fmt.Errorf("no AI credentials: set an API key (api_key, DECK_ENGINE_API_KEY, or .secrets/gemini-api-key) or a Google Cloud project")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return client, nil
}
