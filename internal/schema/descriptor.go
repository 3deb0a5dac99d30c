// Package schema packages the metadata descriptor that ships alongside the
// refined dataset. The structural definition is authored externally and
// loaded verbatim; it does not influence normalization.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata holds the descriptor fields resolved from configuration.
type Metadata struct {
	Name        string
	Version     string
	Description string
	Dialect     string
}

// Descriptor describes the refined dataset for downstream consumers.
type Descriptor struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Dialect     string          `json:"dialect"`
	Schema      json.RawMessage `json:"schema"`
}

// Load reads the structural definition from path and wraps it in a
// Descriptor. A missing or malformed definition file is a fatal error for
// the run; it aborts before any distribution step.
func Load(path string, meta Metadata) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema.Load: reading %q: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("schema.Load: %q is not valid JSON", path)
	}

	return &Descriptor{
		Name:        meta.Name,
		Version:     meta.Version,
		Description: meta.Description,
		Dialect:     meta.Dialect,
		Schema:      json.RawMessage(data),
	}, nil
}
