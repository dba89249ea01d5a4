package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-scanline-pathtracer/pkg/scene"
)

// SceneFormat identifies a scene description encoding
type SceneFormat string

const (
	SceneFormatYAML SceneFormat = "yaml"
	SceneFormatTOML SceneFormat = "toml"
)

// SceneFormatFromPath picks the scene encoding from a file extension
func SceneFormatFromPath(path string) (SceneFormat, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return SceneFormatYAML, nil
	case ".toml":
		return SceneFormatTOML, nil
	default:
		return "", fmt.Errorf("%w: scene extension %q", ErrUnsupportedFormat, ext)
	}
}

// IsSceneFile reports whether path has a scene description extension
func IsSceneFile(path string) bool {
	_, err := SceneFormatFromPath(path)
	return err == nil
}

// LoadSceneFile reads a YAML or TOML scene description from disk
func LoadSceneFile(path string) (*scene.Description, error) {
	format, err := SceneFormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := DecodeSceneDescription(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// LoadScene reads a scene description and builds the scene from it
func LoadScene(path string) (*scene.Scene, error) {
	desc, err := LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	s, err := desc.ToScene()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// DecodeSceneDescription parses a scene description. Unknown keys are errors.
func DecodeSceneDescription(r io.Reader, format SceneFormat) (*scene.Description, error) {
	var desc scene.Description

	switch format {
	case SceneFormatYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(&desc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("scene file is empty")
			}
			return nil, fmt.Errorf("failed to parse YAML scene: %w", err)
		}
	case SceneFormatTOML:
		decoder := toml.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&desc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: scene format %q", ErrUnsupportedFormat, format)
	}

	return &desc, nil
}

// EncodeSceneDescription serializes a scene description
func EncodeSceneDescription(w io.Writer, desc *scene.Description, format SceneFormat) error {
	switch format {
	case SceneFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(desc); err != nil {
			return fmt.Errorf("failed to encode YAML scene: %w", err)
		}
		return encoder.Close()
	case SceneFormatTOML:
		if err := toml.NewEncoder(w).Encode(desc); err != nil {
			return fmt.Errorf("failed to encode TOML scene: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: scene format %q", ErrUnsupportedFormat, format)
	}
}

// SaveSceneFile writes a scene description, choosing the encoding from the extension
func SaveSceneFile(path string, desc *scene.Description) error {
	format, err := SceneFormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodeSceneDescription(&buf, desc, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}
