// Package analyze loads Go packages and extracts the struct declarations a
// builder is generated for.
//
// It uses golang.org/x/tools/go/packages to parse the target package, then
// works on the syntax tree: the Shape Extractor accepts only struct types with
// named fields, and the Field Classifier decides per field whether it is
// required or optional by matching the declared type against Option[T]
// textually. Type information, when available, is only used for warnings.
//
// Key types:
//   - Package: one loaded package with its parsed files
//   - StructDecl: a struct declaration selected for generation
//   - FieldInfo: one named field with its classification
package analyze
