// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline turns a presentation topic into a structured outline by
// prompting a text-generation model and parsing its JSON response.
package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deck-engine/pkg/types"
)

// outlinePromptTmpl is the prompt sent to the text model. It instructs the
// model to return a JSON object matching types.Outline.
var outlinePromptTmpl = template.Must(template.New("outline").Parse(`Create a detailed, structured presentation outline in JSON format for the topic: "{{.Topic}}".
The JSON object must have a "title" field for the main presentation title, and a "slides" array.
Create exactly {{.NumSlides}} slides.
Each object in the "slides" array must contain three fields:
1. "slide_title": A concise title for the slide.
2. "key_points": An array of 3-5 bullet points summarizing the content.
3. "image_prompt": A descriptive, single-sentence prompt to generate a relevant image for this slide.

Do not include any text outside the JSON object.
`))

// TextBackend abstracts the text-generation service so tests can supply a
// mock. Implementations return the raw text of the model's first candidate.
type TextBackend interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generate prompts the backend for an outline on topic with numSlides content
// slides, normalizes and parses the response, and validates the result. Any
// failure here halts the pipeline: no deck can be built without an outline.
func Generate(ctx context.Context, backend TextBackend, topic string, numSlides int, w io.Writer) (*types.Outline, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic is empty")
	}
	if numSlides <= 0 {
		return nil, fmt.Errorf("slide count must be positive, got %d", numSlides)
	}

	prompt, err := renderPrompt(topic, numSlides)
	if err != nil {
		return nil, fmt.Errorf("rendering outline prompt: %w", err)
	}

	fmt.Fprintf(w, "generating outline: %s (%d slides)\n", topic, numSlides)

	raw, err := backend.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating outline: %w", err)
	}

	o, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if len(o.Slides) != numSlides {
		fmt.Fprintf(w, "warning: requested %d slides, model returned %d\n", numSlides, len(o.Slides))
	}

	return o, nil
}

// Parse normalizes raw model output and unmarshals it into a validated
// Outline. Malformed JSON or a structurally incomplete outline is an error;
// no partial outline is ever returned.
func Parse(raw string) (*types.Outline, error) {
	text := Normalize(raw)

	var o types.Outline
	if err := json.Unmarshal([]byte(text), &o); err != nil {
		return nil, fmt.Errorf("parsing outline JSON: %w", err)
	}

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid outline: %w", err)
	}

	return &o, nil
}

// renderPrompt executes the outline prompt template.
func renderPrompt(topic string, numSlides int) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Topic     string
		NumSlides int
	}{topic, numSlides}
	if err := outlinePromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// slugPattern matches runs of characters that are replaced by a hyphen.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlugLen = 60

// Slug derives a filesystem-safe identifier from a topic
// (e.g. "The Future of Quantum Computing" → "the-future-of-quantum-computing").
func Slug(topic string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(topic), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "-")
	}
	if s == "" {
		s = "untitled"
	}
	return s
}

// Write persists the outline as YAML to dir/<slug>.yaml and returns the path.
func Write(dir, slug string, o *types.Outline) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating outlines directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("marshaling outline: %w", err)
	}

	path := filepath.Join(dir, slug+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing outline %s: %w", path, err)
	}
	return path, nil
}

// Read loads and validates an outline YAML file written by Write.
func Read(path string) (*types.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline %s: %w", path, err)
	}

	var o types.Outline
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing outline %s: %w", path, err)
	}

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("outline %s: %w", path, err)
	}

	return &o, nil
}
