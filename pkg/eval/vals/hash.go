package vals

type hashKey struct {
	kind Kind
	repr string
}

// Key of a non-empty list: the key of the first element, followed by the key
// of the rest.
type listKey struct {
	head, tail any
}

type emptyListKey struct{}

// HashKey returns a comparable key for v, suitable for use in a Go map. Two
// values have the same key if and only if they are Equal. Values of reference
// kinds are their own keys.
func HashKey(v Value) any {
	switch v := v.(type) {
	case nil, Empty:
		return hashKey{kind: EmptyKind}
	case Bool, Integer, Text, Field, Variable, Glob, Regex, Op:
		return hashKey{v.Kind(), Repr(v)}
	case List:
		return elemsKey(v.elems)
	default:
		return v
	}
}

// RowKey returns a comparable key for a whole row.
func RowKey(row Row) any {
	return elemsKey(row)
}

func elemsKey(elems []Value) any {
	var k any = emptyListKey{}
	for i := len(elems) - 1; i >= 0; i-- {
		k = listKey{HashKey(elems[i]), k}
	}
	return k
}
