package harmonic

import (
	"fmt"
	"sort"
	"sync"
)

// SummerFactory is a registry of named summation engines. Implementations
// must be safe for concurrent use.
type SummerFactory interface {
	// Register adds a summer under the given key, replacing any previous
	// registration with the same key.
	Register(key string, summer Summer)

	// Get returns the summer registered under key.
	Get(key string) (Summer, error)

	// MustGet returns the summer registered under key and panics if the
	// key is unknown. It is intended for statically known keys.
	MustGet(key string) Summer

	// List returns the registered keys in sorted order.
	List() []string

	// GetAll returns every registered summer in registration order, so
	// that comparison runs always execute the reference engine first.
	GetAll() []Summer
}

// summerRegistry is the mutex-guarded map behind the default factory.
type summerRegistry struct {
	mu      sync.RWMutex
	order   []string
	summers map[string]Summer
}

// NewSummerFactory creates an empty factory.
func NewSummerFactory() SummerFactory {
	return &summerRegistry{summers: make(map[string]Summer)}
}

func (f *summerRegistry) Register(key string, summer Summer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.summers[key]; !exists {
		f.order = append(f.order, key)
	}
	f.summers[key] = summer
}

func (f *summerRegistry) Get(key string) (Summer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	summer, ok := f.summers[key]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q (available: %v)", key, f.listLocked())
	}
	return summer, nil
}

func (f *summerRegistry) MustGet(key string) Summer {
	summer, err := f.Get(key)
	if err != nil {
		panic(err)
	}
	return summer
}

func (f *summerRegistry) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *summerRegistry) listLocked() []string {
	keys := make([]string, len(f.order))
	copy(keys, f.order)
	sort.Strings(keys)
	return keys
}

func (f *summerRegistry) GetAll() []Summer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make([]Summer, 0, len(f.order))
	for _, key := range f.order {
		all = append(all, f.summers[key])
	}
	return all
}

// NewDefaultFactory creates a factory with both standard engines
// registered: the sequential reference first, the parallel engine second.
func NewDefaultFactory() SummerFactory {
	f := NewSummerFactory()
	f.Register("sequential", NewSummer(&SequentialSum{}))
	f.Register("parallel", NewSummer(&ParallelSum{}))
	return f
}

var (
	globalFactoryOnce sync.Once
	globalFactory     SummerFactory
)

// GlobalFactory returns the process-wide default factory, created on first
// use.
func GlobalFactory() SummerFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
