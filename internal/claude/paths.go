package claude

import "strings"

// Project directory names encode the project's filesystem path with every
// path separator replaced by a hyphen: /Users/me/src/app becomes
// -Users-me-src-app. The scheme is lossy — a hyphen that was part of an
// original segment is indistinguishable from a substituted separator, so
// "my-app" decodes to "my/app". That ambiguity is a known limitation kept
// for compatibility: resolving it would remap existing users' directories
// to different projects.

// DecodeProjectPath reverses the separator substitution verbatim.
func DecodeProjectPath(encoded string) string {
	return strings.ReplaceAll(encoded, "-", "/")
}

// EncodeProjectPath applies the separator substitution verbatim.
func EncodeProjectPath(path string) string {
	return strings.ReplaceAll(path, "/", "-")
}
