package services

import "strings"

type named interface {
	DisplayName() string
}

// filterByName keeps the items whose display name contains q, ignoring case.
// An empty q keeps everything.
func filterByName[T named](items []T, q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.DisplayName()), q) {
			out = append(out, it)
		}
	}
	return out
}
