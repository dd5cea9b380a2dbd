// Package astio reads and writes quoted trees as YAML documents.
//
// Encoding:
//
//	42, 1.5                        numbers
//	"text"                         strings (!!str)
//	!atom ok, true, false, null    atoms
//	[a, b]                         lists
//	!pair [left, right]            two-element tuples
//	{var: x, ctx: null}            variables
//	!opaque {kind: pid, ref: ...}  process and function references
//	{call: head, meta: {...}, args: [...]}
//	                               calls; head is an atom name or a call
package astio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rubiojr/quill/ast"
)

const (
	tagAtom   = "!atom"
	tagPair   = "!pair"
	tagOpaque = "!opaque"
)

// Error reports a document that does not describe a tree.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

func errorf(n *yaml.Node, format string, args ...any) error {
	return &Error{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

// Decode reads a single tree from YAML.
func Decode(data []byte) (ast.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return decodeNode(doc.Content[0])
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader) (ast.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// DecodeFile reads a tree from the YAML file at path.
func DecodeFile(path string) (ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Encode writes n as a YAML document.
func Encode(n ast.Node) ([]byte, error) {
	node, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeNode(y *yaml.Node) (ast.Node, error) {
	switch y.Kind {
	case yaml.AliasNode:
		return decodeNode(y.Alias)
	case yaml.ScalarNode:
		return decodeScalar(y)
	case yaml.SequenceNode:
		elems, err := decodeSeq(y)
		if err != nil {
			return nil, err
		}
		if y.Tag == tagPair {
			if len(elems) != 2 {
				return nil, errorf(y, "!pair needs 2 elements, got %d", len(elems))
			}
			return &ast.Pair{Left: elems[0], Right: elems[1]}, nil
		}
		return &ast.List{Elems: elems}, nil
	case yaml.MappingNode:
		if y.Tag == tagOpaque {
			return decodeOpaque(y)
		}
		return decodeForm(y)
	}
	return nil, errorf(y, "unexpected YAML node kind %d", y.Kind)
}

func decodeSeq(y *yaml.Node) ([]ast.Node, error) {
	elems := make([]ast.Node, 0, len(y.Content))
	for _, c := range y.Content {
		n, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	return elems, nil
}

func decodeScalar(y *yaml.Node) (ast.Node, error) {
	switch y.ShortTag() {
	case tagAtom:
		return ast.Atom(y.Value), nil
	case "!!null":
		return ast.Nil, nil
	case "!!bool":
		b, err := strconv.ParseBool(y.Value)
		if err != nil {
			return nil, errorf(y, "invalid bool %q", y.Value)
		}
		return ast.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(y.Value, 0, 64)
		if err != nil {
			return nil, errorf(y, "invalid integer %q", y.Value)
		}
		return ast.Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(y.Value, 64)
		if err != nil {
			return nil, errorf(y, "invalid float %q", y.Value)
		}
		return ast.Float(f), nil
	case "!!str":
		return ast.String(y.Value), nil
	}
	return nil, errorf(y, "unsupported tag %s", y.Tag)
}

// fields indexes a mapping by key, rejecting duplicates.
func fields(y *yaml.Node) (map[string]*yaml.Node, error) {
	out := make(map[string]*yaml.Node, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		k := y.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, errorf(k, "mapping keys must be scalars")
		}
		if _, dup := out[k.Value]; dup {
			return nil, errorf(k, "duplicate key %q", k.Value)
		}
		out[k.Value] = y.Content[i+1]
	}
	return out, nil
}

func decodeForm(y *yaml.Node) (ast.Node, error) {
	fs, err := fields(y)
	if err != nil {
		return nil, err
	}
	var meta ast.Meta
	if m, ok := fs["meta"]; ok {
		if meta, err = decodeMeta(m); err != nil {
			return nil, err
		}
	}

	if name, ok := fs["var"]; ok {
		if name.Kind != yaml.ScalarNode {
			return nil, errorf(name, "var name must be a scalar")
		}
		ctx := ast.Node(ast.Nil)
		if c, ok := fs["ctx"]; ok {
			if ctx, err = decodeNode(c); err != nil {
				return nil, err
			}
			if _, isAtom := ctx.(ast.Atom); !isAtom {
				return nil, errorf(c, "var context must be an atom")
			}
		}
		return &ast.Form{Head: ast.Atom(name.Value), Meta: meta, Args: ctx}, nil
	}

	head, ok := fs["call"]
	if !ok {
		return nil, errorf(y, "mapping must have a call or var key")
	}
	f := &ast.Form{Meta: meta, Args: ast.NewList()}
	switch head.Kind {
	case yaml.ScalarNode:
		f.Head = ast.Atom(head.Value)
	case yaml.MappingNode:
		if f.Head, err = decodeForm(head); err != nil {
			return nil, err
		}
	default:
		return nil, errorf(head, "call head must be a name or a call")
	}
	if args, ok := fs["args"]; ok {
		if args.Kind != yaml.SequenceNode {
			return nil, errorf(args, "args must be a sequence")
		}
		elems, err := decodeSeq(args)
		if err != nil {
			return nil, err
		}
		f.Args = &ast.List{Elems: elems}
	}
	return f, nil
}

func decodeOpaque(y *yaml.Node) (ast.Node, error) {
	fs, err := fields(y)
	if err != nil {
		return nil, err
	}
	kind, ok := fs["kind"]
	if !ok {
		return nil, errorf(y, "!opaque needs a kind")
	}
	var ref any = kind.Value
	if r, ok := fs["ref"]; ok {
		if err := r.Decode(&ref); err != nil {
			return nil, errorf(r, "invalid opaque ref: %v", err)
		}
	}
	return &ast.Opaque{Kind: kind.Value, Ref: ref}, nil
}

func decodeMeta(y *yaml.Node) (ast.Meta, error) {
	if y.Kind != yaml.MappingNode {
		return nil, errorf(y, "meta must be a mapping")
	}
	var meta ast.Meta
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		val, err := decodeMetaValue(v)
		if err != nil {
			return nil, err
		}
		meta = append(meta, ast.MetaEntry{Key: k.Value, Value: val})
	}
	return meta, nil
}

func decodeMetaValue(y *yaml.Node) (any, error) {
	switch y.Kind {
	case yaml.MappingNode:
		return decodeMeta(y)
	case yaml.ScalarNode:
		switch y.ShortTag() {
		case "!!int":
			i, err := strconv.Atoi(y.Value)
			if err != nil {
				return nil, errorf(y, "invalid integer %q", y.Value)
			}
			return i, nil
		case "!!bool":
			b, err := strconv.ParseBool(y.Value)
			if err != nil {
				return nil, errorf(y, "invalid bool %q", y.Value)
			}
			return b, nil
		case "!!str":
			return y.Value, nil
		}
		return decodeScalar(y)
	}
	return decodeNode(y)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func encodeNode(n ast.Node) (*yaml.Node, error) {
	switch v := n.(type) {
	case ast.Atom:
		switch v {
		case ast.True, ast.False:
			return scalar("!!bool", string(v)), nil
		case ast.Nil:
			return scalar("!!null", "null"), nil
		}
		return scalar(tagAtom, string(v)), nil
	case ast.Int:
		return scalar("!!int", strconv.FormatInt(int64(v), 10)), nil
	case ast.Float:
		return scalar("!!float", strconv.FormatFloat(float64(v), 'g', -1, 64)), nil
	case ast.String:
		return scalar("!!str", string(v)), nil
	case *ast.List:
		seq, err := encodeSeq(v.Elems)
		if err != nil {
			return nil, err
		}
		return seq, nil
	case *ast.Pair:
		seq, err := encodeSeq([]ast.Node{v.Left, v.Right})
		if err != nil {
			return nil, err
		}
		seq.Tag = tagPair
		seq.Style = yaml.FlowStyle
		return seq, nil
	case *ast.Opaque:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: tagOpaque}
		m.Content = append(m.Content, scalar("!!str", "kind"), scalar("!!str", v.Kind))
		if v.Ref != nil {
			ref, err := encodeRef(v.Ref)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, scalar("!!str", "ref"), ref)
		}
		return m, nil
	case *ast.Form:
		return encodeForm(v)
	}
	return nil, fmt.Errorf("cannot encode %s", ast.Inspect(n))
}

// encodeRef encodes an opaque reference. Functions, channels and
// pointers have no YAML form and are written as their address.
func encodeRef(ref any) (*yaml.Node, error) {
	switch reflect.ValueOf(ref).Kind() {
	case reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return scalar("!!str", fmt.Sprintf("%p", ref)), nil
	}
	y := &yaml.Node{}
	if err := y.Encode(ref); err != nil {
		return nil, fmt.Errorf("cannot encode opaque ref: %w", err)
	}
	return y, nil
}

func encodeSeq(elems []ast.Node) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, e := range elems {
		c, err := encodeNode(e)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, c)
	}
	return seq, nil
}

func encodeForm(f *ast.Form) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, v *yaml.Node) {
		m.Content = append(m.Content, scalar("!!str", key), v)
	}

	if f.IsVar() {
		name, ok := f.HeadAtom()
		if !ok {
			return nil, fmt.Errorf("cannot encode variable with head %s", ast.Inspect(f.Head))
		}
		add("var", scalar("!!str", string(name)))
		ctx, err := encodeNode(f.Args)
		if err != nil {
			return nil, err
		}
		add("ctx", ctx)
	} else {
		switch h := f.Head.(type) {
		case ast.Atom:
			add("call", scalar("!!str", string(h)))
		case *ast.Form:
			head, err := encodeForm(h)
			if err != nil {
				return nil, err
			}
			add("call", head)
		default:
			return nil, fmt.Errorf("cannot encode call head %s", ast.Inspect(f.Head))
		}
	}

	if len(f.Meta) > 0 {
		meta, err := encodeMeta(f.Meta)
		if err != nil {
			return nil, err
		}
		meta.Style = yaml.FlowStyle
		add("meta", meta)
	}

	if !f.IsVar() {
		args, ok := f.Args.(*ast.List)
		if !ok {
			return nil, fmt.Errorf("cannot encode call arguments %s", ast.Inspect(f.Args))
		}
		seq, err := encodeSeq(args.Elems)
		if err != nil {
			return nil, err
		}
		add("args", seq)
	}
	return m, nil
}

func encodeMeta(meta ast.Meta) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range meta {
		var v *yaml.Node
		switch val := e.Value.(type) {
		case int:
			v = scalar("!!int", strconv.Itoa(val))
		case int64:
			v = scalar("!!int", strconv.FormatInt(val, 10))
		case bool:
			v = scalar("!!bool", strconv.FormatBool(val))
		case string:
			v = scalar("!!str", val)
		case ast.Meta:
			nested, err := encodeMeta(val)
			if err != nil {
				return nil, err
			}
			v = nested
		case ast.Node:
			n, err := encodeNode(val)
			if err != nil {
				return nil, err
			}
			v = n
		default:
			return nil, fmt.Errorf("cannot encode meta %s: %T", e.Key, e.Value)
		}
		m.Content = append(m.Content, scalar("!!str", e.Key), v)
	}
	return m, nil
}
