package gen

import (
	"golang.org/x/tools/imports"
)

// formatSource gofmts src and removes imports the generated code does not use.
func formatSource(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
}
