package pyzipgrep

import (
	"path"
	"strings"
)

// Member is the name of an entry inside an archive, always normalized to
// forward-slash separators. It is a name within the archive's namespace, not
// a filesystem path.
type Member string

// NormalizeMember converts backslash separators to forward slashes.
func NormalizeMember(name string) Member {
	return Member(strings.ReplaceAll(name, `\`, "/"))
}

// Name returns the base name of the member, with any directory portion
// stripped.
func (m Member) Name() string {
	return path.Base(string(m))
}

// Ext returns the member's extension including the leading dot, or "" if the
// base name has none. A dotfile whose only dot is the leading character
// (".env") is extensionless.
func (m Member) Ext() string {
	name := m.Name()
	if strings.HasPrefix(name, ".") && strings.Count(name, ".") == 1 {
		return ""
	}

	return path.Ext(name)
}

// IsDir reports whether the member denotes a directory entry.
func (m Member) IsDir() bool {
	return strings.HasSuffix(string(m), "/")
}
