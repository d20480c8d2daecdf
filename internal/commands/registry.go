package commands

// Registry is the set of commands a worker checks a decision string
// against before treating it as a tool call.
type Registry struct {
	commands map[string]Command
	order    []string
}

// NewRegistry returns a Registry pre-loaded with the six built-in
// commands.
func NewRegistry() *Registry {
	r := &Registry{commands: map[string]Command{}}
	for _, cmd := range []Command{
		NewAuthStatusCommand(),
		NewSwitchModelCommand(),
		NewPauseCommand(),
		NewResumeCommand(),
		NewInspectTaskCommand(),
		NewInjectContextCommand(),
	} {
		r.Register(cmd)
	}
	return r
}

// Register adds or replaces a command under its own name.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name()]; !exists {
		r.order = append(r.order, cmd.Name())
	}
	r.commands[cmd.Name()] = cmd
}

// Unregister removes a command by name, reporting whether it existed.
func (r *Registry) Unregister(name string) bool {
	if _, ok := r.commands[name]; !ok {
		return false
	}
	delete(r.commands, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the named command, if registered.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns every registered command in registration order.
func (r *Registry) List() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// FindForText returns the first registered command (in registration
// order) whose trigger matches text.
func (r *Registry) FindForText(text string) (Command, bool) {
	for _, name := range r.order {
		cmd := r.commands[name]
		if cmd.CanHandle(text) {
			return cmd, true
		}
	}
	return nil, false
}

// Execute finds the command matching text and runs it against ctx. It
// returns (nil, false) when no command matches, mirroring
// execute_command's None return in the original.
func (r *Registry) Execute(text string, ctx ExecContext) (Result, bool) {
	cmd, ok := r.FindForText(text)
	if !ok {
		return Result{}, false
	}
	args := cmd.ParseArgs(text)
	return cmd.Execute(ctx, args), true
}
