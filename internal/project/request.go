package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
)

// SaveGeneratedInput writes the request document consumed by the packer.
// It creates any missing parent directories automatically.
func SaveGeneratedInput(path string, input model.GeneratedInput) error {
	if input.Rectangles == nil {
		input.Rectangles = []model.RectangleSpec{}
	}
	if err := writeJSON(path, input); err != nil {
		return err
	}
	applog.WithComponent("project").Info("request saved",
		"path", path,
		"types", input.TotalTypes,
		"rectangles", input.TotalQuantity,
	)
	return nil
}

// LoadGeneratedInput reads a request document written by SaveGeneratedInput.
func LoadGeneratedInput(path string) (model.GeneratedInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.GeneratedInput{}, fmt.Errorf("failed to read request: %w", err)
	}
	var input model.GeneratedInput
	if err := json.Unmarshal(data, &input); err != nil {
		return model.GeneratedInput{}, fmt.Errorf("failed to parse request: %w", err)
	}
	return input, nil
}

// LoadRequestText reads rectangle text ("X Y Q" per line) for the editor.
func LoadRequestText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read rectangle list: %w", err)
	}
	return string(data), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
