package learner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidRecord is returned when a learner record does not match the
// expected document structure.
var ErrInvalidRecord = errors.New("invalid learner record")

const recordSchemaURL = "schema://learner-record.json"

// recordSchema describes the accepted JSON layout. Score and lastUpdated
// stay optional so that incomplete growth areas are tolerated.
var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":        map[string]any{"type": "string", "minLength": 1},
		"archetype": map[string]any{"type": []any{"string", "null"}},
		"completedScenarios": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"growthAreas": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string"},
					"name":        map[string]any{"type": "string"},
					"score":       map[string]any{"type": []any{"number", "null"}},
					"lastUpdated": map[string]any{"type": []any{"string", "null"}, "format": "date-time"},
				},
				"required": []any{"name"},
			},
		},
	},
	"required": []any{"id"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a generic JSON value, so round-trip the Go map.
		raw, err := json.Marshal(recordSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal record schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse record schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		c.AssertFormat()
		if err := c.AddResource(recordSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(recordSchemaURL)
	})
	return compiledSchema, compileErr
}

// Parse validates data against the record schema and decodes it.
func Parse(data []byte) (Record, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	sch, err := schema()
	if err != nil {
		return Record{}, err
	}
	if err := sch.Validate(doc); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return rec, nil
}

// LoadFile reads and parses a learner record from disk.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read learner record: %w", err)
	}
	rec, err := Parse(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Marshal encodes a record in the same layout Parse accepts.
func Marshal(rec Record) ([]byte, error) {
	if rec.CompletedScenarios == nil {
		rec.CompletedScenarios = []string{}
	}
	if rec.GrowthAreas == nil {
		rec.GrowthAreas = []GrowthArea{}
	}
	return json.Marshal(rec)
}
