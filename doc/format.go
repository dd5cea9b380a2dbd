package doc

import (
	"fmt"
	"strings"
)

// FormatSymbol formats a single symbol lookup result.
func FormatSymbol(docStr, signature string) string {
	var sb strings.Builder
	sb.WriteString(signature)
	sb.WriteString("\n")
	if docStr != "" {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(docStr, "\n", "\n    "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatForms formats special forms for terminal display.
func FormatForms(forms []FormDoc) string {
	var sb strings.Builder
	for _, f := range forms {
		sb.WriteString(FormatSymbol(f.Doc, formSignature(f.Name, f.Arities)))
	}
	return sb.String()
}

// FormatOperators formats the operator table, one operator per line.
func FormatOperators(ops []OperatorDoc) string {
	var sb strings.Builder
	for _, op := range ops {
		kind := "unary"
		if op.Arity == 2 {
			kind = "binary"
		}
		sig := operatorSignature(op)
		if op.Arity == 2 {
			fmt.Fprintf(&sb, "%-12s %-6s %3d  %s\n", sig, kind, op.Prec, op.Assoc)
			continue
		}
		fmt.Fprintf(&sb, "%-12s %-6s %3d\n", sig, kind, op.Prec)
	}
	return sb.String()
}
