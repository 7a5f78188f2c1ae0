// Package gen synthesizes builder code for extracted struct declarations.
//
// Generation approach uses text/template + golang.org/x/tools/imports for
// readable, deterministic Go code. Output is assembled from stages, each
// contributing one fragment:
//   - factory: the builder type, its constructor and the factory method
//   - setters: one chainable setter per field
//   - build: the finalizer that reports the first unset required field
//   - option-aware: classify Option[T] fields as optional (analysis only)
package gen
