package check

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrUnknownCheck is returned for a check name with no implementation and no
// configured command.
var ErrUnknownCheck = errors.New("unknown check")

// Factory builds a check from its resolved configuration.
type Factory func(base Base) Check

// Registry maps check names to their implementations.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a check implementation. Registering a name twice panics.
func (r *Registry) Register(name string, f Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("check %q registered twice", name))
	}
	r.factories[name] = f
}

// Names returns the registered check names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the check named by base. Unregistered names fall back to a
// [Generic] check when a command is configured.
func (r *Registry) New(base Base) (Check, error) {
	if f, ok := r.factories[base.Name()]; ok {
		return f(base), nil
	}
	if base.Command() != "" {
		return &Generic{Base: base}, nil
	}

	err := fmt.Errorf("%w %q: not built in and no command configured", ErrUnknownCheck, base.Name())
	if suggestions := r.suggest(base.Name()); len(suggestions) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
	}
	return nil, err
}

// suggest returns up to three registered names resembling name.
func (r *Registry) suggest(name string) []string {
	names := r.Names()
	matches := fuzzy.Find(strings.ToLower(name), lower(names))

	var out []string
	for _, m := range matches {
		out = append(out, names[m.Index])
		if len(out) == 3 {
			break
		}
	}
	return out
}

func lower(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
