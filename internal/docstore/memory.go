package docstore

import (
	"context"
)

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{root: map[string]any{}}
}

func (m *Memory) Get(ctx context.Context, path string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var node any = m.root
	for _, part := range split(path) {
		children, ok := node.(map[string]any)
		if !ok {
			return nil, nil
		}
		node, ok = children[part]
		if !ok {
			return nil, nil
		}
	}
	// Hand out a copy so callers cannot mutate the tree.
	return normalize(node)
}

func (m *Memory) Set(ctx context.Context, path string, value any) error {
	v, err := normalize(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(split(path), v)
	return nil
}

func (m *Memory) Update(ctx context.Context, path string, fields map[string]any) error {
	values := make(map[string]any, len(fields))
	for k, field := range fields {
		v, err := normalize(field)
		if err != nil {
			return err
		}
		values[k] = v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	base := split(path)
	for k, v := range values {
		m.setLocked(append(append([]string{}, base...), split(k)...), v)
	}
	return nil
}

func (m *Memory) Remove(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(split(path), nil)
	return nil
}

// setLocked writes v at parts, or removes the node when v is nil. Emptied
// ancestors are pruned.
func (m *Memory) setLocked(parts []string, v any) {
	if len(parts) == 0 {
		if obj, ok := v.(map[string]any); ok {
			m.root = obj
		} else {
			m.root = map[string]any{}
		}
		return
	}

	trail := []map[string]any{m.root}
	node := m.root
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			if v == nil {
				return
			}
			child = map[string]any{}
			node[part] = child
		}
		node = child
		trail = append(trail, node)
	}

	last := parts[len(parts)-1]
	if v != nil {
		node[last] = v
		return
	}
	delete(node, last)
	for i := len(trail) - 1; i > 0; i-- {
		if len(trail[i]) > 0 {
			break
		}
		delete(trail[i-1], parts[i-1])
	}
}
