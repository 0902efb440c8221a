package vals

// Equal returns whether two values are equal. Literal kinds compare by
// content; scopes, streams, tables, closures and commands compare by identity.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case nil, Empty:
		return KindOf(y) == EmptyKind
	case Integer:
		y, ok := y.(Integer)
		return ok && x.Cmp(y) == 0
	case Field:
		y, ok := y.(Field)
		return ok && equalPath(x.Path, y.Path)
	case Variable:
		y, ok := y.(Variable)
		return ok && equalPath(x.Path, y.Path)
	case Glob:
		y, ok := y.(Glob)
		return ok && x.Source == y.Source
	case Regex:
		y, ok := y.(Regex)
		return ok && x.Source == y.Source
	case List:
		y, ok := y.(List)
		if !ok || len(x.elems) != len(y.elems) {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true
	default:
		return x == y
	}
}

func equalPath(x, y []string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
