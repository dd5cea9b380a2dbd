package ast

// Transform rewrites a tree. Implementations must not mutate their input.
type Transform interface {
	Name() string
	Transform(n Node) Node
}

// TransformFunc adapts a named function to the Transform interface.
type TransformFunc struct {
	N string
	F func(Node) Node
}

func (t TransformFunc) Name() string          { return t.N }
func (t TransformFunc) Transform(n Node) Node { return t.F(n) }

// Chain composes transforms left-to-right into a single Transform.
// Each transform receives the output of the previous one.
func Chain(transforms ...Transform) Transform {
	return TransformFunc{
		N: "chain",
		F: func(n Node) Node {
			for _, t := range transforms {
				n = t.Transform(n)
			}
			return n
		},
	}
}

// PrewalkTransform lifts a node rewrite into a top-down Transform.
func PrewalkTransform(name string, fn func(Node) Node) Transform {
	return TransformFunc{N: name, F: func(n Node) Node { return Prewalk(n, fn) }}
}

// PostwalkTransform lifts a node rewrite into a bottom-up Transform.
func PostwalkTransform(name string, fn func(Node) Node) Transform {
	return TransformFunc{N: name, F: func(n Node) Node { return Postwalk(n, fn) }}
}

// StripMeta removes every metadata entry except keep from all forms.
func StripMeta(keep ...string) Transform {
	return PostwalkTransform("strip-meta", func(n Node) Node {
		f, ok := n.(*Form)
		if !ok || len(f.Meta) == 0 {
			return n
		}
		return &Form{Head: f.Head, Meta: f.Meta.Take(keep...), Args: f.Args}
	})
}

// --- Copy-on-write traversal helpers ---

// mapSlice applies fn to each element. Returns (newSlice, true) if any
// element changed, or (original, false) if all elements are identical.
func mapSlice[T any](items []T, fn func(T) T) ([]T, bool) {
	var out []T
	modified := false
	for i, item := range items {
		newItem := fn(item)
		if any(newItem) != any(item) {
			if !modified {
				out = make([]T, len(items))
				copy(out[:i], items[:i])
				modified = true
			}
		}
		if modified {
			out[i] = newItem
		}
	}
	if !modified {
		return items, false
	}
	return out, true
}
