package ast

// Factory centralizes form construction for transforms and the expander.
// Every form it builds gets the factory's line (when non-zero) and the
// generated flag (when set) in its metadata.
type Factory struct {
	Line      int
	Generated bool
}

// NewFactory returns a Factory stamping line into new forms.
func NewFactory(line int) *Factory { return &Factory{Line: line} }

func (f *Factory) meta() Meta {
	var m Meta
	if f == nil {
		return m
	}
	if f.Generated {
		m = m.Put(MetaGenerated, true)
	}
	if f.Line > 0 {
		m = m.Put(MetaLine, f.Line)
	}
	return m
}

// Var creates a variable reference. A nil context is the Nil atom.
func (f *Factory) Var(name, ctx Atom) *Form {
	if ctx == "" {
		ctx = Nil
	}
	return &Form{Head: name, Meta: f.meta(), Args: ctx}
}

// Call creates a local call.
func (f *Factory) Call(name Atom, args ...Node) *Form {
	return &Form{Head: name, Meta: f.meta(), Args: NewList(args...)}
}

// Op is Call for binary and unary operators.
func (f *Factory) Op(op Atom, args ...Node) *Form {
	return f.Call(op, args...)
}

// Dot creates the receiver.name head of a remote call.
func (f *Factory) Dot(receiver Node, name Atom) *Form {
	return &Form{Head: Atom("."), Meta: f.meta(), Args: NewList(receiver, name)}
}

// Remote creates a call receiver.name(args).
func (f *Factory) Remote(receiver Node, name Atom, args ...Node) *Form {
	return &Form{Head: f.Dot(receiver, name), Meta: f.meta(), Args: NewList(args...)}
}

// RemoteNoParens creates a zero-arity remote call rendered without
// parentheses, such as map.field.
func (f *Factory) RemoteNoParens(receiver Node, name Atom) *Form {
	return &Form{Head: f.Dot(receiver, name), Meta: f.meta().Put(MetaNoParens, true), Args: NewList()}
}

// Alias creates an __aliases__ chain such as Foo.Bar.
func (f *Factory) Alias(segments ...Atom) *Form {
	elems := make([]Node, len(segments))
	for i, s := range segments {
		elems[i] = s
	}
	return &Form{Head: Atom("__aliases__"), Meta: f.meta(), Args: NewList(elems...)}
}

// Tuple creates a tuple literal. Two elements produce a *Pair.
func (f *Factory) Tuple(elems ...Node) Node {
	if len(elems) == 2 {
		return &Pair{Left: elems[0], Right: elems[1]}
	}
	return &Form{Head: Atom("{}"), Meta: f.meta(), Args: NewList(elems...)}
}

// Map creates a map literal from key/value pairs.
func (f *Factory) Map(pairs ...*Pair) *Form {
	elems := make([]Node, len(pairs))
	for i, p := range pairs {
		elems[i] = p
	}
	return &Form{Head: Atom("%{}"), Meta: f.meta(), Args: NewList(elems...)}
}

// Block wraps exprs in a __block__.
func (f *Factory) Block(exprs ...Node) *Form {
	return &Form{Head: Atom("__block__"), Meta: f.meta(), Args: NewList(exprs...)}
}

// Keyword creates a keyword list from alternating atom keys and values.
func (f *Factory) Keyword(kv ...Node) *List {
	l := &List{}
	for i := 0; i+1 < len(kv); i += 2 {
		l.Elems = append(l.Elems, &Pair{Left: kv[i], Right: kv[i+1]})
	}
	return l
}

// Arrow creates a `args -> body` clause.
func (f *Factory) Arrow(args []Node, body Node) *Form {
	return &Form{Head: Atom("->"), Meta: f.meta(), Args: NewList(NewList(args...), body)}
}

// Fn creates an anonymous function from -> clauses.
func (f *Factory) Fn(clauses ...*Form) *Form {
	elems := make([]Node, len(clauses))
	for i, c := range clauses {
		elems[i] = c
	}
	return &Form{Head: Atom("fn"), Meta: f.meta(), Args: NewList(elems...)}
}

// std backs the package-level constructors.
var std = &Factory{}

// Var creates a variable with a nil context.
func Var(name Atom) *Form { return std.Var(name, Nil) }

// Call creates a local call with empty metadata.
func Call(name Atom, args ...Node) *Form { return std.Call(name, args...) }

// Remote creates a remote call with empty metadata.
func Remote(receiver Node, name Atom, args ...Node) *Form {
	return std.Remote(receiver, name, args...)
}

// Alias creates an __aliases__ chain with empty metadata.
func Alias(segments ...Atom) *Form { return std.Alias(segments...) }
