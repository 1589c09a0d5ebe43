// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deck-engine/pkg/types"
)

// pngBytes encodes a real width x height PNG so aspect-ratio scaling sees
// genuine dimensions.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func fiveSlideOutline() *types.Outline {
	o := &types.Outline{Title: "The Future of Quantum Computing"}
	for i := 0; i < 5; i++ {
		o.Slides = append(o.Slides, types.SlideSpec{
			SlideTitle:  fmt.Sprintf("Topic %d", i+1),
			KeyPoints:   []string{"first", "second", "third"},
			ImagePrompt: "a computer",
		})
	}
	return o
}

// readArchive returns the pptx's entries as name → content.
func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data := new(bytes.Buffer)
		_, err = data.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = data.String()
	}
	return parts
}

func TestAssembleSlideCountAndMissingImage(t *testing.T) {
	outline := fiveSlideOutline()
	img := pngBytes(t, 4, 3)
	images := types.ImageMap{0: img, 1: img, 2: nil, 3: img, 4: img}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	var buf bytes.Buffer
	require.NoError(t, Assemble(outline, images, path, &buf))
	assert.Contains(t, buf.String(), "6 slides, 4 images")

	parts := readArchive(t, path)

	// 1 title + 5 content slides.
	for i := 1; i <= 6; i++ {
		assert.Contains(t, parts, fmt.Sprintf("ppt/slides/slide%d.xml", i))
	}
	_, extra := parts["ppt/slides/slide7.xml"]
	assert.False(t, extra)

	// Outline index 2 renders as document slide 4 and carries no picture.
	assert.NotContains(t, parts["ppt/slides/slide4.xml"], "<p:pic>")
	assert.NotContains(t, parts["ppt/slides/_rels/slide4.xml.rels"], "image")

	// All other content slides do carry one.
	for _, i := range []int{2, 3, 5, 6} {
		assert.Contains(t, parts[fmt.Sprintf("ppt/slides/slide%d.xml", i)], "<p:pic>", "slide %d", i)
		assert.Contains(t, parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i)], "../media/image")
	}

	// The title slide never has a picture.
	assert.NotContains(t, parts["ppt/slides/slide1.xml"], "<p:pic>")
}

func TestAssembleRoundTrip(t *testing.T) {
	outline := &types.Outline{
		Title: "X",
		Slides: []types.SlideSpec{
			{SlideTitle: "A", KeyPoints: []string{"p1", "p2", "p3"}, ImagePrompt: "..."},
		},
	}
	images := types.ImageMap{0: pngBytes(t, 2, 2)}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, Assemble(outline, images, path, &bytes.Buffer{}))

	parts := readArchive(t, path)

	// Title slide: title text plus prefixed subtitle.
	title := parts["ppt/slides/slide1.xml"]
	assert.Contains(t, title, "<a:t>X</a:t>")
	assert.Contains(t, title, "<a:t>AI-Generated Presentation: X</a:t>")

	// Content slide: title, three bullet paragraphs, one picture.
	content := parts["ppt/slides/slide2.xml"]
	assert.Contains(t, content, "<a:t>A</a:t>")
	for _, p := range []string{"p1", "p2", "p3"} {
		assert.Contains(t, content, "<a:t>• "+p+"</a:t>")
	}
	assert.Equal(t, 1, strings.Count(content, "<p:pic>"))

	// Bullet styling: 16pt navy with 10pt space after.
	assert.Contains(t, content, `sz="1600"`)
	assert.Contains(t, content, `val="001E3C"`)
	assert.Contains(t, content, `<a:spcPts val="1000"/>`)

	// Header band and centered 24pt white title.
	assert.Contains(t, content, `val="003366"`)
	assert.Contains(t, content, `sz="2400"`)
	assert.Contains(t, content, `algn="ctr"`)
	assert.Contains(t, content, `anchor="ctr"`)

	// Media present in the package with a png content type default.
	assert.Contains(t, parts, "ppt/media/image1.png")
	assert.Contains(t, parts["[Content_Types].xml"], `Extension="png"`)
}

func TestAssemblePictureKeepsAspectRatio(t *testing.T) {
	outline := &types.Outline{
		Title: "X",
		Slides: []types.SlideSpec{
			{SlideTitle: "A", KeyPoints: []string{"p"}, ImagePrompt: "..."},
		},
	}
	// 4:1 image at 4in display width → 1in displayed height.
	images := types.ImageMap{0: pngBytes(t, 400, 100)}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, Assemble(outline, images, path, &bytes.Buffer{}))

	content := readArchive(t, path)["ppt/slides/slide2.xml"]
	assert.Contains(t, content, fmt.Sprintf(`<a:ext cx="%d" cy="%d"/>`, emu(4.0), emu(1.0)))
}

func TestAssembleDeterministic(t *testing.T) {
	outline := fiveSlideOutline()
	images := types.ImageMap{0: pngBytes(t, 4, 3)}

	dir := t.TempDir()
	a := filepath.Join(dir, "a.pptx")
	b := filepath.Join(dir, "b.pptx")
	require.NoError(t, Assemble(outline, images, a, &bytes.Buffer{}))
	require.NoError(t, Assemble(outline, images, b, &bytes.Buffer{}))

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(dataA, dataB), "identical inputs must produce byte-identical decks")
}

func TestAssembleEscapesMarkup(t *testing.T) {
	outline := &types.Outline{
		Title: "R&D <Quantum>",
		Slides: []types.SlideSpec{
			{SlideTitle: `Say "hi"`, KeyPoints: []string{"a & b"}, ImagePrompt: "..."},
		},
	}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, Assemble(outline, types.ImageMap{}, path, &bytes.Buffer{}))

	parts := readArchive(t, path)
	assert.Contains(t, parts["ppt/slides/slide1.xml"], "<a:t>R&amp;D &lt;Quantum&gt;</a:t>")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "Say &quot;hi&quot;")
	assert.Contains(t, parts["ppt/slides/slide2.xml"], "a &amp; b")
}

func TestAssembleRejectsInvalidOutline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	err := Assemble(&types.Outline{Title: "T"}, types.ImageMap{}, path, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no slides")

	// Nothing was written.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestImageExtentFallback(t *testing.T) {
	ext, height := imageExtent([]byte("not an image"), emu(4.0))
	assert.Equal(t, ".bin", ext)
	assert.Equal(t, emu(3.0), height)
}
