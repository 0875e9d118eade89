package hxbind

import (
	"fmt"
	"strconv"
	"sync"
)

// State is the external store a bridge binds elements to. Paths are
// segment lists as produced by PropertyNameToPath.
//
// The scanner and dispatcher only read State through HandlerContext.Get;
// writing is left to bridges.
type State interface {
	Get(path []string) (any, bool)
	Set(path []string, value any) error
}

// MapState is a State over nested map[string]any values. Slices ([]any) are
// indexed by decimal segments.
type MapState struct {
	mu   sync.RWMutex
	root map[string]any
}

// NewMapState wraps data. A nil map starts empty.
func NewMapState(data map[string]any) *MapState {
	if data == nil {
		data = make(map[string]any)
	}
	return &MapState{root: data}
}

// Get walks path from the root.
func (s *MapState) Get(path []string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cur any = s.root
	for _, seg := range path {
		next, ok := child(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set stores value at path, creating intermediate maps as needed.
func (s *MapState) Set(path []string, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.root
	for i, seg := range path[:len(path)-1] {
		next, ok := cur[seg]
		if !ok || next == nil {
			m := make(map[string]any)
			cur[seg] = m
			cur = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q is %T, not an object", ErrInvalidPath, PathToPropertyName(path[:i+1]), next)
		}
		cur = m
	}
	cur[path[len(path)-1]] = value
	return nil
}

func child(v any, seg string) (any, bool) {
	switch c := v.(type) {
	case map[string]any:
		next, ok := c[seg]
		return next, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	default:
		return nil, false
	}
}
