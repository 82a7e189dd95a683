package smartfn

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// Schema describes the structured shape of a provider response: a name and
// a JSON Schema object. Providers that support schema-constrained generation
// receive it on the request; the response is validated against it either way.
type Schema struct {
	Name       string
	Definition map[string]any
}

// NewSchema builds a Schema from an explicit JSON Schema object.
func NewSchema(name string, definition map[string]any) *Schema {
	return &Schema{Name: name, Definition: definition}
}

// SchemaFor derives a Schema from the Go type T. The derivation happens once
// at construction; callers should hold on to the result.
func SchemaFor[T any]() (*Schema, error) {
	var v T
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&v)

	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("smartfn: derive schema for %s: %w", typeName[T](), err)
	}
	var def map[string]any
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("smartfn: derive schema for %s: %w", typeName[T](), err)
	}
	// Providers want the bare object shape, not the meta-schema envelope.
	delete(def, "$schema")
	delete(def, "$id")

	return &Schema{Name: typeName[T](), Definition: def}, nil
}

func typeName[T any]() string {
	var v T
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}

// object reports whether the schema describes a JSON object, the only shape
// schema-constrained generation supports.
func (s *Schema) object() bool {
	t, _ := s.Definition["type"].(string)
	return t == "object"
}

// validate checks a raw provider response against the schema definition.
func (s *Schema) validate(raw string) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(s.Definition),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return err
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
