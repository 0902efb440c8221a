package eval

import (
	"sort"

	"src.crush.sh/pkg/eval/vals"
)

// NsBuilder is a helper type for building a namespace of builtins.
type NsBuilder struct {
	name     string
	bindings map[string]vals.Value
}

// BuildNs returns a helper for building a namespace with the given name.
func BuildNs(name string) NsBuilder {
	return NsBuilder{name, make(map[string]vals.Value)}
}

// AddValue adds a value.
func (nb NsBuilder) AddValue(name string, v vals.Value) NsBuilder {
	nb.bindings[name] = v
	return nb
}

// AddValues adds values.
func (nb NsBuilder) AddValues(m map[string]vals.Value) NsBuilder {
	for name, v := range m {
		nb.AddValue(name, v)
	}
	return nb
}

// AddFn adds a builtin command.
func (nb NsBuilder) AddFn(name string, fn func(*ExecutionContext) error) NsBuilder {
	return nb.AddValue(name, NewBuiltin(nb.qualify(name), fn))
}

// AddFns adds builtin commands.
func (nb NsBuilder) AddFns(m map[string]func(*ExecutionContext) error) NsBuilder {
	for name, fn := range m {
		nb.AddFn(name, fn)
	}
	return nb
}

func (nb NsBuilder) qualify(name string) string {
	if nb.name == "" {
		return name
	}
	return nb.name + "/" + name
}

// Into creates the namespace in parent, declares all the bindings in it and
// makes it read-only. If use is true, parent also uses the namespace, so that
// its names can be looked up unqualified.
func (nb NsBuilder) Into(parent *Scope, use bool) (*Scope, error) {
	ns, err := parent.CreateNamespace(nb.name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(nb.bindings))
	for name := range nb.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ns.Declare(name, nb.bindings[name]); err != nil {
			return nil, err
		}
	}
	ns.Readonly()
	if use {
		if err := parent.Use(ns); err != nil {
			return nil, err
		}
	}
	return ns, nil
}
