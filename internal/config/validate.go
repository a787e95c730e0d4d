package config

import (
	_ "embed"
	"errors"

	"github.com/metalagman/tasklist/internal/schema"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var settingsSchema string

// ErrInvalidSettings marks config settings rejected by the schema.
var ErrInvalidSettings = errors.New("invalid config settings")

// ValidateSettings checks raw file settings before they are merged.
func ValidateSettings(settings map[string]any) error {
	return schema.Validate(settingsSchema, gojsonschema.NewGoLoader(settings), ErrInvalidSettings)
}
