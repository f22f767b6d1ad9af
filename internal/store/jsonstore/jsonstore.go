package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/focustasks/internal/model"
)

// JSON codec for a persisted task collection. The wire value is a bare
// array of {id, title, done}; nothing else is stored.

// ErrMalformed wraps every reason a stored value is rejected.
var ErrMalformed = errors.New("malformed task collection")

const schemaURL = "tasks.schema.json"

const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "done"],
    "properties": {
      "id":    {"type": "string"},
      "title": {"type": "string"},
      "done":  {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, tasksSchema)

// Encode serializes tasks as a compact JSON array; nil encodes as [].
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses and shape-checks a stored collection. Any failure is
// reported as ErrMalformed; the caller decides how to recover.
func Decode(b []byte) ([]model.Task, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %w", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	// Read fields from the validated document so only the exact
	// lowercase keys the schema checked can reach a Task.
	items, _ := doc.([]any)
	tasks := make([]model.Task, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		t, err := taskFrom(item)
		if err != nil {
			return nil, fmt.Errorf("%w: /%d: %w", ErrMalformed, i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: /%d: duplicate id %q", ErrMalformed, i, t.ID)
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func taskFrom(item any) (model.Task, error) {
	rec, ok := item.(map[string]any)
	if !ok {
		return model.Task{}, errors.New("not an object")
	}
	id, ok1 := rec["id"].(string)
	title, ok2 := rec["title"].(string)
	done, ok3 := rec["done"].(bool)
	if !ok1 || !ok2 || !ok3 {
		return model.Task{}, errors.New("id, title or done has the wrong type")
	}
	return model.Task{ID: id, Title: title, Done: done}, nil
}
