package pgn4

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePath reads the dash separated form of a path, such as "1-1-3", and checks its
// shape.
func ParsePath(s string) ([]int, error) {
	if s == "" {
		return nil, ErrEmptyPath
	}
	parts := strings.Split(s, "-")
	path := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("path element %q: %w", part, err)
		}
		path[i] = n
	}
	if err := checkPath(path); err != nil {
		return nil, err
	}
	return path, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
