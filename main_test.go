package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-scanline-pathtracer/pkg/loaders"
	"github.com/df07/go-scanline-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"random scene", "random", false},
		{"default scene", "default", false},

		// Scene files
		{"yaml scene file", "scenes/three-spheres.yaml", false},
		{"toml scene file", "scenes/sunset.toml", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, s)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
				}
				if s == nil {
					t.Errorf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
				}

				// Verify scene has required properties
				if s != nil {
					if s.SamplingConfig.Height <= 0 {
						t.Errorf("Scene sampling height should be positive, got %d", s.SamplingConfig.Height)
					}
					if s.SamplingConfig.Width <= 0 {
						t.Errorf("Scene sampling width should be positive, got %d", s.SamplingConfig.Width)
					}
					if s.GetPrimitiveCount() == 0 {
						t.Errorf("Scene '%s' has no spheres", tt.sceneType)
					}
				}
			}
		})
	}
}

func TestCreateSceneUnknownIsSentinel(t *testing.T) {
	_, err := createScene("cornell", 1)
	assert.True(t, errors.Is(err, scene.ErrUnknownScene))
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRenderCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out", "render.png")

	stdout, stderr, err := executeCommand(t, "render",
		"--scene", "default", "--width", "16", "--height", "9",
		"--samples", "2", "--depth", "4", "--workers", "2", "--output", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Render saved as "+output)
	assert.Contains(t, stderr, "Using default scene")
	assert.Contains(t, stderr, "Render completed")

	img, err := loaders.LoadImage(output)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 9, img.Height)
}

func TestRenderCommandSceneFileWithOverrides(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sunset.bmp")

	_, _, err := executeCommand(t, "render",
		"--scene", "scenes/sunset.toml", "--width", "12", "--height", "6",
		"--samples", "1", "--depth", "3", "--output", output, "--log-level", "error")
	require.NoError(t, err)

	img, err := loaders.LoadImage(output)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Width)
	assert.Equal(t, 6, img.Height)
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"render", "--scene", "nope"}},
		{"bad log level", []string{"render", "--log-level", "loud"}},
		{"invalid size", []string{"render", "--width", "0", "--output", "x.png"}},
		{"unsupported output", []string{"render", "--width", "2", "--height", "2", "--samples", "1", "--output", filepath.Join(t.TempDir(), "x.gif")}},
		{"unexpected argument", []string{"render", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestScenesCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "scenes")
	require.NoError(t, err)

	for _, info := range scene.ListBuiltinScenes() {
		assert.Contains(t, stdout, info.ID)
	}
}

func TestDescribeCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "describe", "default", "--format", "toml")
	require.NoError(t, err)

	desc, err := loaders.DecodeSceneDescription(strings.NewReader(stdout), loaders.SceneFormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "default", desc.Name)
	assert.Len(t, desc.Spheres, scene.NewDefaultScene().GetPrimitiveCount())

	path := filepath.Join(t.TempDir(), "random.yaml")
	_, _, err = executeCommand(t, "describe", "random", "--seed", "3", "--output", path)
	require.NoError(t, err)

	s, err := loaders.LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, scene.NewRandomScene(3).GetPrimitiveCount(), s.GetPrimitiveCount())
}
