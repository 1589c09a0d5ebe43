// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ImageMap holds the raw image bytes for each slide, keyed by the slide's
// index in Outline.Slides. A nil value means image generation failed for
// that slide and the deck renders it without a picture. The image stage
// always produces one entry per outline slide, so the key domain is exactly
// [0, len(Slides)).
type ImageMap map[int][]byte

// Generated returns the number of slides that have image data.
func (m ImageMap) Generated() int {
	n := 0
	for _, data := range m {
		if data != nil {
			n++
		}
	}
	return n
}

// ImageEntry records the asset produced for one slide index.
type ImageEntry struct {
	// Index is the slide's position in Outline.Slides.
	Index int `json:"index" yaml:"index"`

	// File is the asset file name relative to the manifest's directory.
	// Empty when generation failed and the slide has no image.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// MIMEType is the media type reported by the image service
	// (e.g. "image/png").
	MIMEType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
}

// ImageManifest is the on-disk record of an image generation run, written
// next to the asset files so the assemble stage can rebuild the ImageMap.
type ImageManifest struct {
	// Outline is the slug of the outline the images belong to.
	Outline string `json:"outline" yaml:"outline"`

	// Entries holds one record per slide index, in order.
	Entries []ImageEntry `json:"entries" yaml:"entries"`
}

// DeckRecord is one row in the deck library: a presentation generated by a
// pipeline run.
type DeckRecord struct {
	// ID is a slug derived from the topic (e.g. "the-future-of-quantum-computing").
	ID string `json:"id" yaml:"id"`

	// Topic is the user-supplied topic the deck was generated from.
	Topic string `json:"topic" yaml:"topic"`

	// Title is the presentation title produced by the outline stage.
	Title string `json:"title" yaml:"title"`

	// Slides is the number of content slides.
	Slides int `json:"slides" yaml:"slides"`

	// Images is the number of slides that received a generated image.
	Images int `json:"images" yaml:"images"`

	// Path is the local filesystem path of the .pptx file.
	Path string `json:"path" yaml:"path"`

	// CreatedAt is when the deck was assembled.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
