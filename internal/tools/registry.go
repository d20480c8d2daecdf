package tools

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Registry is the process-wide collection of named Tools. Registration
// validates the tool's declared parameter schema against the JSON Schema
// meta-schema so a malformed Tool fails fast at startup rather than when
// a Worker first tries to use it.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t under its schema name. Returns an error if the name is
// already taken or the parameter schema does not compile.
func (r *Registry) Register(t Tool) error {
	schema := t.Schema()
	if schema.Name == "" {
		return fmt.Errorf("tool: schema.Name must not be empty")
	}
	if err := validateParameterSchema(schema); err != nil {
		return fmt.Errorf("tool %q: invalid parameter schema: %w", schema.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[schema.Name]; exists {
		return fmt.Errorf("tool %q already registered", schema.Name)
	}
	r.tools[schema.Name] = t
	return nil
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns every registered tool name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Schemas returns the Schema of every registered tool, used to build the
// per-step prompt context the Worker assembles.
func (r *Registry) Schemas() []Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Schema, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Schema())
	}
	return out
}

// validateParameterSchema builds a JSON-Schema object-schema document from
// the Tool's declared parameters and compiles it, catching malformed
// types/required lists before the tool is ever invoked.
func validateParameterSchema(s Schema) error {
	properties := make(map[string]any, len(s.Parameters))
	var required []string
	for name, p := range s.Parameters {
		properties[name] = map[string]any{"type": jsonSchemaType(p.Type)}
		if p.Required {
			required = append(required, name)
		}
	}

	doc := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	c := jsonschema.NewCompiler()
	resource := "tool:" + s.Name
	if err := c.AddResource(resource, doc); err != nil {
		return err
	}
	_, err := c.Compile(resource)
	return err
}

// jsonSchemaType maps the tool contract's loose type names onto the JSON
// Schema primitive type keywords; unrecognized types fall back to
// "string" rather than rejecting the tool outright.
func jsonSchemaType(t string) string {
	switch t {
	case "string", "number", "integer", "boolean", "array", "object":
		return t
	default:
		return "string"
	}
}
