package resolve

import "strings"

const (
	// AliasMarker prefixes alias imports.
	AliasMarker = "@"

	// AliasPrefix is the alias form substituted by [SourceDir].
	AliasPrefix = "@/"

	// SourceDir is the project directory the alias maps to.
	SourceDir = "src/"
)

// IsInternal reports whether a raw import can point at a project file.
// Only relative imports (leading ".") and alias imports (leading "@") are
// candidates for internal edges; bare package names are external.
func IsInternal(raw string) bool {
	return strings.HasPrefix(raw, ".") || strings.HasPrefix(raw, AliasMarker)
}

// Resolve converts rawImport, found in the file fromFileID, into a
// project-relative candidate path.
//
// Alias imports have every "@/" replaced with "src/" and are returned without
// any further normalization. All other imports are resolved against the
// directory containing fromFileID: "." segments are dropped, ".." pops the
// last accumulated segment and anything else is appended. Popping past the
// root is a no-op, so "../../x" from a top-level file yields "x".
func Resolve(fromFileID, rawImport string) string {
	if strings.HasPrefix(rawImport, AliasMarker) {
		return strings.ReplaceAll(rawImport, AliasPrefix, SourceDir)
	}

	var parts []string
	for _, seg := range strings.Split(parentDir(fromFileID), "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}

	for _, seg := range strings.Split(rawImport, "/") {
		switch seg {
		case ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

// parentDir returns everything before the last "/" of id, or "" when id has
// no directory component.
func parentDir(id string) string {
	i := strings.LastIndex(id, "/")
	if i < 0 {
		return ""
	}
	return id[:i]
}
