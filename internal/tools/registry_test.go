package tools

import (
	"context"
	"testing"
)

func echoTool() Tool {
	return NewFunc(
		Schema{
			Name:        "echo",
			Description: "echoes the command argument",
			Parameters: map[string]ParamSpec{
				"command": {Type: "string", Required: true},
			},
		},
		func(ctx context.Context, args map[string]string) Result {
			return Result{Output: args["command"]}
		},
	)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoTool()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tool, ok := r.Get("echo")
	if !ok {
		t.Fatal("expected echo tool to be registered")
	}

	res := tool.Execute(context.Background(), map[string]string{"command": "hello"})
	if res.Output != "hello" || res.Error != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoTool()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(echoTool()); err == nil {
		t.Fatal("expected error registering duplicate tool name")
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	r := NewRegistry()
	bad := NewFunc(Schema{}, func(ctx context.Context, args map[string]string) Result { return Result{} })
	if err := r.Register(bad); err == nil {
		t.Fatal("expected error registering tool with empty name")
	}
}

func TestRegistryNamesAndSchemas(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(echoTool())

	names := r.Names()
	if len(names) != 1 || names[0] != "echo" {
		t.Fatalf("unexpected names: %v", names)
	}

	schemas := r.Schemas()
	if len(schemas) != 1 || schemas[0].Name != "echo" {
		t.Fatalf("unexpected schemas: %+v", schemas)
	}
}
