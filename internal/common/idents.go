package common

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// initialisms are kept fully upper-cased when a lower-case identifier is
// exported, following the usual Go naming conventions.
var initialisms = map[string]bool{
	"ACL": true, "API": true, "DNS": true, "HTML": true, "HTTP": true,
	"HTTPS": true, "ID": true, "IP": true, "JSON": true, "SQL": true,
	"TCP": true, "TLS": true, "TTL": true, "UDP": true, "UI": true,
	"URI": true, "URL": true, "UUID": true, "XML": true,
}

// UpperCamel returns name with its first word exported: "name" -> "Name",
// "id" -> "ID", "urlPath" -> "URLPath". Already exported names are returned as is.
func UpperCamel(name string) string {
	if name == "" || IsExported(name) {
		return name
	}

	word := leadingLowerWord(name)
	if up := strings.ToUpper(word); initialisms[up] {
		return up + name[len(word):]
	}

	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToUpper(r)) + name[size:]
}

// LowerCamel returns name with its leading upper-case run lowered:
// "Name" -> "name", "ID" -> "id", "URLPath" -> "urlPath".
// Results that are Go keywords get a trailing underscore.
func LowerCamel(name string) string {
	runes := []rune(name)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
	case n == len(runes) || n == 1:
		for i := range n {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		// "URLPath": keep the 'P' that starts the next word.
		for i := range n - 1 {
			runes[i] = unicode.ToLower(runes[i])
		}

		if !unicode.IsLower(runes[n]) {
			runes[n-1] = unicode.ToLower(runes[n-1])
		}
	}

	out := string(runes)
	if token.IsKeyword(out) {
		out += "_"
	}

	return out
}

// Snake returns name in snake case: "HTTPServer" -> "http_server".
func Snake(name string) string {
	runes := []rune(name)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}

// Unexport lowers the first letter of an identifier: "PersonBuilder" -> "personBuilder".
func Unexport(name string) string {
	if name == "" {
		return name
	}

	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToLower(r)) + name[size:]
}

func leadingLowerWord(name string) string {
	for i, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) {
			return name[:i]
		}
	}

	return name
}
