package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tableflip.dev/todo/pkg/store"
)

const todoSchemaURL = "https://tableflip.dev/schemas/todo.json"

const todoSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title"],
  "additionalProperties": false,
  "properties": {
    "title":       {"type": "string", "minLength": 1},
    "day":         {"type": "string", "pattern": "^[0-9]{0,2}$"},
    "month":       {"type": "string", "pattern": "^[0-9]{0,2}$"},
    "year":        {"type": "string", "pattern": "^[0-9]{0,4}$"},
    "description": {"type": "string"}
  }
}`

const maxBodyBytes = 1 << 20

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(todoSchemaURL, strings.NewReader(todoSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(todoSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// decodeFields reads the submitted todo form. JSON bodies are checked against
// the todo schema; anything else is parsed as a urlencoded form.
func (s *Server) decodeFields(r *http.Request) (store.Fields, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return store.Fields{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
		}
		return store.Fields{
			Title:       r.PostForm.Get("title"),
			Day:         r.PostForm.Get("day"),
			Month:       r.PostForm.Get("month"),
			Year:        r.PostForm.Get("year"),
			Description: r.PostForm.Get("description"),
		}, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return store.Fields{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	var obj interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return store.Fields{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	if err := s.schema.Validate(obj); err != nil {
		return store.Fields{}, fmt.Errorf("%w: %s", store.ErrInvalid, schemaMessage(err))
	}
	var f store.Fields
	if err := json.Unmarshal(body, &f); err != nil {
		return store.Fields{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	return f, nil
}

// schemaMessage returns the first leaf cause of a validation failure.
func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
