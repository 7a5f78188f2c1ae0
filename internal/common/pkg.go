package common

import (
	"path"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the name a package path is referred to by when imported
// without an explicit alias. Major version suffixes ("/v2") and gopkg.in
// version suffixes (".v3") are skipped.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) && strings.Contains(pkgPath, "/") {
		base = path.Base(path.Dir(pkgPath))
	}

	if strings.HasPrefix(pkgPath, "gopkg.in/") {
		if i := strings.Index(base, ".v"); i > 0 {
			base = base[:i]
		}
	}

	return strings.ReplaceAll(base, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
