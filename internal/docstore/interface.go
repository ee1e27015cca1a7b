package docstore

import "context"

// Store is a hierarchical JSON document store addressed by slash separated
// paths. Get returns nil for a path that holds nothing. Setting nil or an
// empty object removes the node, and a node left without children ceases to
// exist.
type Store interface {
	Get(ctx context.Context, path string) (any, error)
	Set(ctx context.Context, path string, value any) error
	// Update shallow-merges fields into the object at path. A nil field value
	// removes that child.
	Update(ctx context.Context, path string, fields map[string]any) error
	Remove(ctx context.Context, path string) error
}
