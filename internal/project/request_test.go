package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PackView/internal/model"
)

func TestSaveGeneratedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "input.json")
	input := model.GeneratedInput{
		BinWidth:      10,
		TotalQuantity: 3,
		TotalTypes:    2,
		Rectangles: []model.RectangleSpec{
			{Width: 5, Height: 3, Quantity: 2},
			{Width: 4, Height: 2, Quantity: 1},
		},
	}
	require.NoError(t, SaveGeneratedInput(path, input))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 10, raw["width_of_bin"])
	assert.EqualValues(t, 3, raw["number_of_rectangles"])
	assert.EqualValues(t, 2, raw["number_of_types_of_rectangles"])
	assert.Equal(t, false, raw["autofill_option"])
	assert.Len(t, raw["rectangle_list"], 2)

	loaded, err := LoadGeneratedInput(path)
	require.NoError(t, err)
	assert.Equal(t, input, loaded)
}

func TestSaveGeneratedInputEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, SaveGeneratedInput(path, model.GeneratedInput{BinWidth: 4}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rectangle_list": []`)
}

func TestLoadRequestText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rects.txt")
	require.NoError(t, os.WriteFile(path, []byte("5 3 2\n4 2 1\n"), 0o644))

	text, err := LoadRequestText(path)
	require.NoError(t, err)
	assert.Equal(t, "5 3 2\n4 2 1\n", text)

	_, err = LoadRequestText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
