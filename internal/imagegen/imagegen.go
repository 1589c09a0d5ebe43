// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagegen produces one illustrative image per outline slide via an
// image-generation model. Per-slide failures never abort the run: a slide
// that fails simply renders without a picture.
package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deck-engine/pkg/types"
)

const manifestFile = "manifest.yaml"

// ImageBackend abstracts the image-generation service so tests can supply a
// mock. Implementations return the raw bytes of the first image produced for
// the prompt.
type ImageBackend interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GenerateAll requests one image per slide, sequentially and in slide order.
// The returned map has exactly one entry per index in [0, len(outline.Slides));
// a nil value records a per-slide failure, which is logged to w and absorbed.
func GenerateAll(ctx context.Context, backend ImageBackend, outline *types.Outline, w io.Writer) types.ImageMap {
	images := make(types.ImageMap, len(outline.Slides))

	for i, slide := range outline.Slides {
		fmt.Fprintf(w, "generating image %d/%d: %s\n", i+1, len(outline.Slides), slide.SlideTitle)

		data, err := backend.GenerateImage(ctx, slide.ImagePrompt)
		if err != nil {
			fmt.Fprintf(w, "  warning: image for slide %d failed: %v\n", i+1, err)
			images[i] = nil
			continue
		}
		images[i] = data
	}

	return images
}

// WriteAssets persists the image map under assetsDir/<slug>/: one file per
// generated image plus a manifest recording each slide index's asset (or its
// absence). Returns the manifest path.
func WriteAssets(assetsDir, slug string, images types.ImageMap) (string, error) {
	dir := filepath.Join(assetsDir, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating assets directory %s: %w", dir, err)
	}

	manifest := types.ImageManifest{Outline: slug}
	for i := 0; i < len(images); i++ {
		entry := types.ImageEntry{Index: i}

		if data := images[i]; data != nil {
			mime := http.DetectContentType(data)
			entry.MIMEType = mime
			entry.File = fmt.Sprintf("slide-%02d%s", i+1, extensionFor(mime))
			if err := os.WriteFile(filepath.Join(dir, entry.File), data, 0o644); err != nil {
				return "", fmt.Errorf("writing asset %s: %w", entry.File, err)
			}
		}

		manifest.Entries = append(manifest.Entries, entry)
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(dir, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return path, nil
}

// ReadAssets rebuilds the image map from assetsDir/<slug>/manifest.yaml.
// A missing manifest is not an error: it yields an empty map and the deck
// is assembled without pictures.
func ReadAssets(assetsDir, slug string) (types.ImageMap, error) {
	dir := filepath.Join(assetsDir, slug)
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return types.ImageMap{}, nil
		}
		return nil, fmt.Errorf("reading manifest in %s: %w", dir, err)
	}

	var manifest types.ImageManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest in %s: %w", dir, err)
	}

	images := make(types.ImageMap, len(manifest.Entries))
	for _, entry := range manifest.Entries {
		if entry.File == "" {
			images[entry.Index] = nil
			continue
		}
		img, err := os.ReadFile(filepath.Join(dir, entry.File))
		if err != nil {
			return nil, fmt.Errorf("reading asset %s: %w", entry.File, err)
		}
		images[entry.Index] = img
	}

	return images, nil
}

// extensionFor maps a detected media type to an asset file extension.
func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
