package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// entrySchemaName identifies the schema for one catalog entry.
const entrySchemaName = "catalog-entry"

// meaningDefinition describes a single meaning object.
var meaningDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"word":    map[string]any{"type": "string", "minLength": 1},
		"meaning": map[string]any{"type": "string", "minLength": 1},
		"level":   map[string]any{"type": "string"},
		"type":    map[string]any{"type": "string"},
		"article": map[string]any{"type": "string"},
		"plural":  map[string]any{"type": "string"},
		"examples": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []any{"word", "meaning", "level"},
}

// entryDefinition accepts an array of meanings or a lone meaning object.
var entryDefinition = map[string]any{
	"$defs": map[string]any{"meaning": meaningDefinition},
	"oneOf": []any{
		map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"$ref": "#/$defs/meaning"},
		},
		map[string]any{"$ref": "#/$defs/meaning"},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// validateEntry checks one raw entry against the entry schema.
func validateEntry(raw json.RawMessage) error {
	compiled, err := compiledSchema(entrySchemaName, entryDefinition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", entrySchemaName, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
