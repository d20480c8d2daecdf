package models

import "context"

// DummyProvider is a dependency-free provider used as the fallback
// default and in tests, grounded on the original implementation's
// providers/dummy.py: it deterministically echoes a canned decision so
// the Worker loop is exercisable without any network credentials.
type DummyProvider struct {
	// Script, if non-empty, is returned verbatim by Generate. If empty,
	// Generate returns the fixed line `action shell(command="echo hello")`,
	// whatever the prompt, so the Worker has a tool call to parse.
	Script string
}

func (p *DummyProvider) Name() string { return "dummy" }

func (p *DummyProvider) Generate(ctx context.Context, prompt string, taskContext map[string]any) (string, error) {
	if p.Script != "" {
		return p.Script, nil
	}
	return "action shell(command=\"echo hello\")", nil
}

func (p *DummyProvider) SupportsStreaming() bool { return false }

func (p *DummyProvider) AuthType() AuthType { return AuthAPIKey }

var _ Provider = (*DummyProvider)(nil)
