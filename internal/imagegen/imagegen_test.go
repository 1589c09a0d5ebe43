// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deck-engine/pkg/types"
)

// pngHeader is enough of a PNG for content-type sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// mockImageBackend returns canned bytes per prompt and fails on demand.
type mockImageBackend struct {
	failPrompts map[string]bool
	prompts     []string
}

func (m *mockImageBackend) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	m.prompts = append(m.prompts, prompt)
	if m.failPrompts[prompt] {
		return nil, fmt.Errorf("image service error")
	}
	return append(append([]byte{}, pngHeader...), prompt...), nil
}

func testOutline(n int) *types.Outline {
	o := &types.Outline{Title: "T"}
	for i := 0; i < n; i++ {
		o.Slides = append(o.Slides, types.SlideSpec{
			SlideTitle:  fmt.Sprintf("Slide %d", i+1),
			KeyPoints:   []string{"p1", "p2", "p3"},
			ImagePrompt: fmt.Sprintf("prompt-%d", i),
		})
	}
	return o
}

func TestGenerateAllCompleteMap(t *testing.T) {
	backend := &mockImageBackend{}
	outline := testOutline(3)

	images := GenerateAll(context.Background(), backend, outline, &bytes.Buffer{})

	require.Len(t, images, 3)
	for i := 0; i < 3; i++ {
		data, ok := images[i]
		require.True(t, ok, "index %d missing", i)
		assert.NotNil(t, data)
	}

	// Sequential, in slide order.
	assert.Equal(t, []string{"prompt-0", "prompt-1", "prompt-2"}, backend.prompts)
}

func TestGenerateAllAbsorbsFailures(t *testing.T) {
	backend := &mockImageBackend{failPrompts: map[string]bool{"prompt-1": true}}
	outline := testOutline(3)
	var buf bytes.Buffer

	images := GenerateAll(context.Background(), backend, outline, &buf)

	// Failure is recorded as nil, later slides still processed.
	require.Len(t, images, 3)
	assert.NotNil(t, images[0])
	assert.Nil(t, images[1])
	assert.NotNil(t, images[2])
	assert.Len(t, backend.prompts, 3)
	assert.Contains(t, buf.String(), "warning: image for slide 2 failed")
}

func TestGenerateAllAllFailures(t *testing.T) {
	backend := &mockImageBackend{failPrompts: map[string]bool{
		"prompt-0": true, "prompt-1": true,
	}}
	outline := testOutline(2)

	images := GenerateAll(context.Background(), backend, outline, &bytes.Buffer{})

	require.Len(t, images, 2)
	assert.Nil(t, images[0])
	assert.Nil(t, images[1])
}

func TestWriteReadAssetsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	images := types.ImageMap{
		0: append(append([]byte{}, pngHeader...), "zero"...),
		1: nil,
		2: append(append([]byte{}, pngHeader...), "two"...),
	}

	manifestPath, err := WriteAssets(dir, "my-deck", images)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my-deck", "manifest.yaml"), manifestPath)

	// The asset files exist only for generated slides.
	_, err = os.Stat(filepath.Join(dir, "my-deck", "slide-01.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "my-deck", "slide-02.png"))
	assert.True(t, os.IsNotExist(err))

	got, err := ReadAssets(dir, "my-deck")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, images[0], got[0])
	assert.Nil(t, got[1])
	assert.Equal(t, images[2], got[2])
}

func TestReadAssetsMissingManifest(t *testing.T) {
	got, err := ReadAssets(t.TempDir(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImageMapGenerated(t *testing.T) {
	m := types.ImageMap{0: []byte("a"), 1: nil, 2: []byte("c")}
	assert.Equal(t, 2, m.Generated())
}
