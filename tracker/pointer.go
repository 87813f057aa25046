package tracker

import (
	"fmt"
	"strings"
)

func escapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

func unescapeToken(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}

func joinPath(parent, token string) string {
	return parent + "/" + token
}

// parsePointer splits an RFC 6901 JSON Pointer into unescaped tokens. An
// empty path denotes the document root and yields no tokens.
func parsePointer(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if path[0] != '/' {
		return nil, &ApplyError{Reason: fmt.Sprintf("pointer %q must start with '/'", path)}
	}
	parts := strings.Split(path[1:], "/")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = unescapeToken(p)
	}
	return tokens, nil
}
