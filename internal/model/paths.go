package model

import "strings"

func collectLeaves(fields []Field, prefix string, dest *[]Leaf) {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		path := JoinPath(prefix, name)
		if len(field.Nested) > 0 {
			collectLeaves(field.Nested, path, dest)
			continue
		}
		*dest = append(*dest, Leaf{Key: path, Field: field})
	}
}

// JoinPath joins two dotted key segments, ignoring empty ones.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// LastSegment returns the final segment of a dotted key.
func LastSegment(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[idx+1:]
	}
	return key
}
