// Package project handles reading and writing PackView files: layouts
// produced by the external packer, generated requests, sessions and the
// application config.
package project

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	gojsonschema "github.com/xeipuuv/gojsonschema"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
)

// ErrInvalidLayout is returned when a layout document does not match the
// expected shape.
var ErrInvalidLayout = errors.New("invalid layout document")

//go:embed layout.schema.json
var layoutSchema []byte

// Document is a layout loaded from disk.
type Document struct {
	ID       uuid.UUID
	Path     string
	Layout   model.LayoutResult
	LoadedAt time.Time
}

// DecodeLayout validates data against the layout schema and decodes it.
func DecodeLayout(data []byte) (model.LayoutResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(layoutSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return model.LayoutResult{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return model.LayoutResult{}, fmt.Errorf("%w: %s", ErrInvalidLayout, strings.Join(msgs, "; "))
	}

	var layout model.LayoutResult
	if err := json.Unmarshal(data, &layout); err != nil {
		return model.LayoutResult{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if layout.Placements == nil {
		layout.Placements = []model.Placement{}
	}
	return layout, nil
}

// LoadLayout reads and validates a layout file.
func LoadLayout(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read layout: %w", err)
	}
	layout, err := DecodeLayout(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}

	doc := Document{
		ID:       uuid.New(),
		Path:     path,
		Layout:   layout,
		LoadedAt: time.Now(),
	}
	applog.WithComponent("project").Info("layout file loaded",
		"path", path,
		"id", doc.ID.String(),
		"placements", len(layout.Placements),
	)
	return doc, nil
}

// NewDocument wraps a layout obtained without a JSON file (e.g. a DXF import).
func NewDocument(path string, layout model.LayoutResult) Document {
	return Document{ID: uuid.New(), Path: path, Layout: layout, LoadedAt: time.Now()}
}

// SaveLayout writes a layout as indented JSON in the packer's output format.
func SaveLayout(path string, layout model.LayoutResult) error {
	return writeJSON(path, layout)
}
