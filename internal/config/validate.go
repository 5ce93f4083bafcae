package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a loaded config and returns one readable error listing
// every failed field.
func Validate(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return checkDefaultPreset(cfg)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", fe.Namespace())
		case "gt":
			fmt.Fprintf(&details, "%s must be greater than %s", fe.Namespace(), fe.Param())
		case "gte", "min":
			fmt.Fprintf(&details, "%s must be at least %s", fe.Namespace(), fe.Param())
		case "max":
			fmt.Fprintf(&details, "%s must be at most %s", fe.Namespace(), fe.Param())
		case "ltefield":
			fmt.Fprintf(&details, "%s must not exceed %s", fe.Namespace(), fe.Param())
		default:
			fmt.Fprintf(&details, "%s failed %s validation", fe.Namespace(), fe.Tag())
		}
	}
	return fmt.Errorf("config: invalid: %s", details.String())
}

// checkDefaultPreset makes sure default_preset names a configured preset.
func checkDefaultPreset(cfg any) error {
	var err error
	switch c := cfg.(type) {
	case PongConfig:
		_, err = c.Preset("")
	case *PongConfig:
		_, err = c.Preset("")
	case SnakeConfig:
		_, err = c.Preset("")
	case *SnakeConfig:
		_, err = c.Preset("")
	}
	if err != nil {
		return fmt.Errorf("config: invalid default_preset: %w", err)
	}
	return nil
}
