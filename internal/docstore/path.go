package docstore

import (
	"encoding/json"
	"fmt"
	"strings"
)

const forbiddenKeyChars = ".$#[]/"

// Join builds a path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// ValidateKey checks that s can be used as a single path segment.
func ValidateKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	if strings.ContainsAny(s, forbiddenKeyChars) {
		return fmt.Errorf("%w: %q may not contain any of %q", ErrInvalidKey, s, forbiddenKeyChars)
	}
	return nil
}

func split(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// normalize round-trips v through JSON so stored values have the same shape
// a JSON store hands back, then drops nil children and empty objects.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return prune(out), nil
}

func prune(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			if pruned := prune(child); pruned == nil {
				delete(n, k)
			} else {
				n[k] = pruned
			}
		}
		if len(n) == 0 {
			return nil
		}
		return n
	case []any:
		if len(n) == 0 {
			return nil
		}
		return n
	default:
		return v
	}
}
