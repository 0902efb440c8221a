package eval

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
)

// Scope is a node in the tree of lexical scopes. It holds name bindings, a
// list of used scopes consulted for unqualified lookups, and a one-way
// read-only flag.
//
// Scopes are shared by reference. The parent pointer is not owning: a scope
// stays alive as long as a child, a closure or a running job refers to it. A
// Scope is safe for concurrent use.
type Scope struct {
	parent *Scope
	name   string
	isLoop bool

	mu       sync.RWMutex
	bindings map[string]vals.Value
	uses     []*Scope
	readonly bool
}

var _ vals.Value = (*Scope)(nil)

// NewRootScope creates a scope without a parent.
func NewRootScope() *Scope {
	return newScope(nil, "", false)
}

func newScope(parent *Scope, name string, isLoop bool) *Scope {
	return &Scope{parent: parent, name: name, isLoop: isLoop,
		bindings: make(map[string]vals.Value)}
}

func (*Scope) Kind() vals.Kind { return vals.ScopeKind }

func (s *Scope) Repr() string {
	if s.name == "" {
		return fmt.Sprintf("<scope %p>", s)
	}
	return fmt.Sprintf("<scope %s %p>", s.name, s)
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// IsLoop reports whether the scope was created for the body of a loop.
func (s *Scope) IsLoop() bool { return s.isLoop }

// CreateChild creates a new scope whose parent is s.
func (s *Scope) CreateChild(isLoop bool) *Scope {
	return newScope(s, "", isLoop)
}

// CreateNamespace returns the namespace bound to name in s, creating and
// declaring it if there is none.
func (s *Scope) CreateNamespace(name string) (*Scope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.bindings[name]; ok {
		if ns, ok := v.(*Scope); ok {
			return ns, nil
		}
		return nil, errs.AlreadyDeclared{Name: name}
	}
	if s.readonly {
		return nil, errs.ReadOnlyScope{Name: name}
	}
	ns := newScope(s, name, false)
	s.bindings[name] = ns
	return ns, nil
}

// Declare binds name to v in s. It fails if s is read-only or name is already
// bound in s itself; bindings in other scopes are shadowed.
func (s *Scope) Declare(name string, v vals.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readonly {
		return errs.ReadOnlyScope{Name: name}
	}
	if _, ok := s.bindings[name]; ok {
		return errs.AlreadyDeclared{Name: name}
	}
	s.bindings[name] = v
	return nil
}

// Set rebinds an existing binding, searching s and then its ancestors. The
// scope holding the binding must not be read-only.
func (s *Scope) Set(name string, v vals.Value) error {
	for sc := s; sc != nil; sc = sc.parent {
		sc.mu.Lock()
		if _, ok := sc.bindings[name]; ok {
			defer sc.mu.Unlock()
			if sc.readonly {
				return errs.ReadOnlyScope{Name: name}
			}
			sc.bindings[name] = v
			return nil
		}
		sc.mu.Unlock()
	}
	return errs.NoSuchName{Name: name, Path: name}
}

// Use adds other to the scopes consulted for unqualified lookups in s, after
// the bindings of s itself and the scopes used before.
func (s *Scope) Use(other *Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readonly {
		return errs.ReadOnlyScope{Name: other.name}
	}
	s.uses = append(s.uses, other)
	return nil
}

// Readonly makes s read-only. It cannot be undone.
func (s *Scope) Readonly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readonly = true
}

// IsReadonly reports whether s is read-only.
func (s *Scope) IsReadonly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readonly
}

// Get looks up an unqualified name: first among the bindings of s, then in
// the scopes used by s in order, then in the parent of s, recursively.
func (s *Scope) Get(name string) (vals.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.lookupLocal(name, nil); ok {
			return v, true
		}
	}
	return nil, false
}

// Looks up a name among the bindings of s and its used scopes, but not its
// parents. The visited set guards against cycles of used scopes.
func (s *Scope) lookupLocal(name string, visited map[*Scope]bool) (vals.Value, bool) {
	s.mu.RLock()
	v, ok := s.bindings[name]
	uses := s.uses
	s.mu.RUnlock()
	if ok {
		return v, true
	}
	if len(uses) == 0 {
		return nil, false
	}
	if visited == nil {
		visited = make(map[*Scope]bool)
	}
	visited[s] = true
	for _, used := range uses {
		if visited[used] {
			continue
		}
		if v, ok := used.lookupLocal(name, visited); ok {
			return v, true
		}
	}
	return nil, false
}

// GetPath looks up a qualified path. The first segment is looked up like Get;
// each later segment is looked up in the scope reached so far.
func (s *Scope) GetPath(path []string) (vals.Value, error) {
	full := strings.Join(path, "/")
	v, ok := s.Get(path[0])
	if !ok {
		return nil, errs.NoSuchName{Name: path[0], Path: full}
	}
	for i, seg := range path[1:] {
		ns, ok := v.(*Scope)
		if !ok {
			return nil, errs.NotAScope{
				Name: path[i], Path: full, Actual: vals.KindOf(v).String()}
		}
		v, ok = ns.lookupLocal(seg, nil)
		if !ok {
			return nil, errs.NoSuchName{Name: seg, Path: full}
		}
	}
	return v, nil
}

// Names returns the names bound in s itself, sorted.
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VisibleNames returns all the names that Get can resolve from s, sorted and
// without duplicates.
func (s *Scope) VisibleNames() []string {
	seen := make(map[string]bool)
	visited := make(map[*Scope]bool)
	var collect func(sc *Scope)
	collect = func(sc *Scope) {
		if visited[sc] {
			return
		}
		visited[sc] = true
		sc.mu.RLock()
		for name := range sc.bindings {
			seen[name] = true
		}
		uses := sc.uses
		sc.mu.RUnlock()
		for _, used := range uses {
			collect(used)
		}
	}
	for sc := s; sc != nil; sc = sc.parent {
		collect(sc)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
