package vals

// Kind identifies the kind of a Value.
type Kind int

// Value kinds.
const (
	EmptyKind Kind = iota
	BoolKind
	IntegerKind
	TextKind
	FieldKind
	VariableKind
	GlobKind
	RegexKind
	OpKind
	ListKind
	ScopeKind
	RowsKind
	StreamKind
	ClosureKind
	CommandKind
)

var kindNames = [...]string{
	EmptyKind:    "empty",
	BoolKind:     "bool",
	IntegerKind:  "integer",
	TextKind:     "text",
	FieldKind:    "field",
	VariableKind: "variable",
	GlobKind:     "glob",
	RegexKind:    "regex",
	OpKind:       "op",
	ListKind:     "list",
	ScopeKind:    "scope",
	RowsKind:     "rows",
	StreamKind:   "stream",
	ClosureKind:  "closure",
	CommandKind:  "command",
}

func (k Kind) String() string {
	if 0 <= int(k) && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Hashable reports whether values of the kind can be used as keys when
// deduplicating. A stream can only be read once, so it has no stable key.
func (k Kind) Hashable() bool {
	return k != StreamKind
}

// Value is a runtime value. Values are immutable once constructed and are
// shared by reference.
type Value interface {
	Kind() Kind
}

// KindOf returns the kind of v, treating nil as Empty.
func KindOf(v Value) Kind {
	if v == nil {
		return EmptyKind
	}
	return v.Kind()
}
