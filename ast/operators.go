package ast

// Assoc is the associativity of an operator.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	default:
		return "non_associative"
	}
}

// OpInfo is an operator's associativity and precedence. Higher precedence
// binds tighter.
type OpInfo struct {
	Assoc Assoc
	Prec  int
}

// binaryOps and unaryOps are the single source of truth for what counts
// as an operator. The classifier and the printer both read them.
var binaryOps = map[Atom]OpInfo{}

var unaryOps = map[Atom]OpInfo{}

func init() {
	groups := []struct {
		info OpInfo
		ops  []Atom
	}{
		{OpInfo{AssocLeft, 40}, []Atom{"<-", `\\`}},
		{OpInfo{AssocRight, 50}, []Atom{"when"}},
		{OpInfo{AssocRight, 60}, []Atom{"::"}},
		{OpInfo{AssocRight, 70}, []Atom{"|"}},
		{OpInfo{AssocRight, 100}, []Atom{"="}},
		{OpInfo{AssocLeft, 130}, []Atom{"||", "|||", "or"}},
		{OpInfo{AssocLeft, 140}, []Atom{"&&", "&&&", "and"}},
		{OpInfo{AssocLeft, 150}, []Atom{"==", "!=", "=~", "===", "!=="}},
		{OpInfo{AssocLeft, 160}, []Atom{"<", "<=", ">=", ">"}},
		{OpInfo{AssocLeft, 170}, []Atom{"|>", "<<<", ">>>", "<~", "~>", "<<~", "~>>", "<~>", "<|>"}},
		{OpInfo{AssocLeft, 180}, []Atom{"in", "not in"}},
		{OpInfo{AssocLeft, 190}, []Atom{"^^^"}},
		{OpInfo{AssocRight, 190}, []Atom{"//"}},
		{OpInfo{AssocRight, 200}, []Atom{"++", "--", "..", "<>", "+++", "---"}},
		{OpInfo{AssocLeft, 210}, []Atom{"+", "-"}},
		{OpInfo{AssocLeft, 220}, []Atom{"*", "/"}},
		{OpInfo{AssocLeft, 230}, []Atom{"**"}},
		{OpInfo{AssocLeft, 310}, []Atom{"."}},
	}
	for _, g := range groups {
		for _, op := range g.ops {
			binaryOps[op] = g.info
		}
	}

	unaryOps["&"] = OpInfo{AssocNone, 90}
	for _, op := range []Atom{"!", "^", "not", "+", "-", "~~~"} {
		unaryOps[op] = OpInfo{AssocNone, 300}
	}
	unaryOps["@"] = OpInfo{AssocNone, 320}
}

// BinaryOp returns the properties of a binary operator.
func BinaryOp(op Atom) (OpInfo, bool) {
	info, ok := binaryOps[op]
	return info, ok
}

// UnaryOp returns the properties of a unary operator.
func UnaryOp(op Atom) (OpInfo, bool) {
	info, ok := unaryOps[op]
	return info, ok
}

// IsOperator reports whether name is an operator of the given arity.
// Arity 1 checks the unary table, arity 2 the binary one.
func IsOperator(name Atom, arity int) bool {
	switch arity {
	case 1:
		_, ok := unaryOps[name]
		return ok
	case 2:
		_, ok := binaryOps[name]
		return ok
	}
	return false
}

// BinaryOps returns every binary operator name.
func BinaryOps() []Atom {
	out := make([]Atom, 0, len(binaryOps))
	for op := range binaryOps {
		out = append(out, op)
	}
	return out
}

// UnaryOps returns every unary operator name.
func UnaryOps() []Atom {
	out := make([]Atom, 0, len(unaryOps))
	for op := range unaryOps {
		out = append(out, op)
	}
	return out
}
