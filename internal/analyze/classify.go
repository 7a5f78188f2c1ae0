package analyze

import "go/ast"

// Classify decides whether a declared field type is Option[T].
//
// The check is syntactic: the type must be written as a bare identifier named
// optionalName with exactly one type argument. Qualified names (option.Option[T]),
// other aliases, and multi-argument instantiations are all classified as
// required. No type resolution is attempted, so a renamed alias of the option
// type defeats the match.
func Classify(expr ast.Expr, optionalName string) Classification {
	// IndexListExpr (two or more type arguments) never matches.
	index, ok := expr.(*ast.IndexExpr)
	if !ok {
		return Classification{Kind: FieldRequired}
	}

	// A selector (pkg.Option) has two segments.
	ident, ok := index.X.(*ast.Ident)
	if !ok || ident.Name != optionalName {
		return Classification{Kind: FieldRequired}
	}

	return Classification{Kind: FieldOptional, Inner: index.Index}
}
