// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// SlideSpec describes one content slide: its title, bullet points, and the
// prompt used to generate its illustrative image.
type SlideSpec struct {
	// SlideTitle is the concise title rendered in the slide header.
	SlideTitle string `json:"slide_title" yaml:"slide_title"`

	// KeyPoints are the bullet points, in presentation order. The outline
	// prompt asks the model for 3-5 per slide.
	KeyPoints []string `json:"key_points" yaml:"key_points"`

	// ImagePrompt is a single-sentence prompt for the image model.
	ImagePrompt string `json:"image_prompt" yaml:"image_prompt"`
}

// Outline is the structured presentation outline parsed from the text
// model's response. It is not mutated after parsing.
type Outline struct {
	// Title is the main presentation title.
	Title string `json:"title" yaml:"title"`

	// Slides are the content slides in presentation order.
	Slides []SlideSpec `json:"slides" yaml:"slides"`
}

// Validate checks the structural requirements every downstream stage relies
// on: a non-empty title, at least one slide, and per slide a title, at least
// one key point, and an image prompt.
func (o *Outline) Validate() error {
	if o.Title == "" {
		return fmt.Errorf("outline has no title")
	}
	if len(o.Slides) == 0 {
		return fmt.Errorf("outline has no slides")
	}
	for i, s := range o.Slides {
		if s.SlideTitle == "" {
			return fmt.Errorf("slide %d: missing slide_title", i+1)
		}
		if len(s.KeyPoints) == 0 {
			return fmt.Errorf("slide %d (%q): no key_points", i+1, s.SlideTitle)
		}
		if s.ImagePrompt == "" {
			return fmt.Errorf("slide %d (%q): missing image_prompt", i+1, s.SlideTitle)
		}
	}
	return nil
}
