// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AIConfig holds shared settings for stages that call a Generative AI API.
// Either APIKey (Gemini API backend) or Project+Location (Vertex AI backend)
// selects the service endpoint.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-2.5-pro").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the Gemini API backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Project is the Google Cloud project ID for the Vertex AI backend.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// Location is the Google Cloud region for the Vertex AI backend
	// (e.g. "us-central1").
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// OutlineConfig holds settings for the outline stage.
type OutlineConfig struct {
	AIConfig `yaml:",inline"`

	// NumSlides is the number of content slides to request (default 5).
	NumSlides int `json:"num_slides" yaml:"num_slides"`

	// OutlinesDir is the directory for persisted outline files.
	OutlinesDir string `json:"outlines_dir" yaml:"outlines_dir"`
}

// ImageConfig holds settings for the image generation stage.
type ImageConfig struct {
	AIConfig `yaml:",inline"`

	// AssetsDir is the base directory for generated image assets
	// (one subdirectory per outline slug, containing manifest.yaml).
	AssetsDir string `json:"assets_dir" yaml:"assets_dir"`
}

// AssemblyConfig holds settings for the deck assembly stage.
type AssemblyConfig struct {
	// DecksDir is the directory for assembled .pptx files.
	DecksDir string `json:"decks_dir" yaml:"decks_dir"`
}

// LibraryConfig holds settings for the deck library.
type LibraryConfig struct {
	// LibraryDir is the directory containing the library database.
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Outline  OutlineConfig  `json:"outline" yaml:"outline"`
	Images   ImageConfig    `json:"images" yaml:"images"`
	Assembly AssemblyConfig `json:"assembly" yaml:"assembly"`
	Library  LibraryConfig  `json:"library" yaml:"library"`
}
