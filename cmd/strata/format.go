package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"strata/internal/errors"
)

// humanizer is implemented by response types that have a plain-text
// rendering for interactive use.
type humanizer interface {
	human() string
}

// formatResponse renders a command response in the requested output
// format: json, yaml, or human.
func formatResponse(v interface{}, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", errors.New(errors.InternalError, "failed to marshal response", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", errors.New(errors.InternalError, "failed to marshal response", err)
		}
		return string(data), nil
	case "human":
		if h, ok := v.(humanizer); ok {
			return h.human(), nil
		}
		// No plain-text rendering; JSON is still readable
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", errors.New(errors.InternalError, "failed to marshal response", err)
		}
		return string(data), nil
	default:
		return "", errors.New(errors.ConfigInvalid,
			fmt.Sprintf("unknown output format %q (want json, yaml, or human)", format), nil)
	}
}
