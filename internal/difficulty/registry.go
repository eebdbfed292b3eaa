package difficulty

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// ErrDuplicateIdentity is returned by Register when a descriptor with the
// same (origin, name) is already registered.
var ErrDuplicateIdentity = errors.New("difficulty: duplicate identity")

// Registry is an ordered collection of difficulty descriptors.
//
// Indices returned by lookups are only valid for the current process and
// must never be persisted; store the Identity instead. Register and
// Unregister must not be called while an Each callback is running.
type Registry struct {
	mu    sync.RWMutex
	items []Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends d. It fails with ErrDuplicateIdentity if the identity is
// already present, leaving the registry unchanged.
func (r *Registry) Register(d Descriptor) error {
	if d == nil {
		return errors.New("difficulty: nil descriptor")
	}
	id := IdentityOf(d)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
	}
	r.items = append(r.items, d)
	return nil
}

// Unregister removes the descriptor registered under the identity of d.
// Absent descriptors are ignored.
func (r *Registry) Unregister(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(IdentityOf(d)); i >= 0 {
		r.items = append(r.items[:i], r.items[i+1:]...)
	}
}

// FindByIdentity returns the descriptor registered under (origin, name).
func (r *Registry) FindByIdentity(origin, name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(Identity{Origin: origin, Name: name}); i >= 0 {
		return r.items[i], true
	}
	return nil, false
}

// FindFunc returns the index and descriptor of the first entry matching
// match.
func (r *Registry) FindFunc(match func(Descriptor) bool) (int, Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, item := range r.items {
		if match(item) {
			return i, item, true
		}
	}
	return -1, nil, false
}

// Find returns the first descriptor of concrete type T and its index.
func Find[T Descriptor](r *Registry) (int, T, bool) {
	i, d, ok := r.FindFunc(func(d Descriptor) bool {
		_, ok := d.(T)
		return ok
	})
	if !ok {
		var zero T
		return -1, zero, false
	}
	return i, d.(T), true
}

// At returns the descriptor at index i.
func (r *Registry) At(i int) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i < 0 || i >= len(r.items) {
		return nil, false
	}
	return r.items[i], true
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Each calls fn for every descriptor in registration order until fn
// returns false.
func (r *Registry) Each(fn func(i int, d Descriptor) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, item := range r.items {
		if !fn(i, item) {
			return
		}
	}
}

// All returns a snapshot of the registered descriptors.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, len(r.items))
	copy(out, r.items)
	return out
}

// Reset removes every descriptor.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Suggest returns up to limit registered full names closest to query by
// edit distance, nearest first.
func (r *Registry) Suggest(query string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	r.mu.RLock()
	candidates := make([]scored, 0, len(r.items))
	q := strings.ToLower(query)
	for _, item := range r.items {
		name := FullName(item)
		candidates = append(candidates, scored{
			name: name,
			dist: levenshtein.ComputeDistance(q, strings.ToLower(name)),
		})
	}
	r.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	// Anything further away than the query itself is noise.
	maxDist := len(query)/2 + 1
	result := make([]string, 0, limit)
	for _, c := range candidates {
		if len(result) == limit || c.dist > maxDist {
			break
		}
		result = append(result, c.name)
	}
	return result
}

func (r *Registry) indexOf(id Identity) int {
	for i, item := range r.items {
		if IdentityOf(item) == id {
			return i
		}
	}
	return -1
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds d to the process-wide registry.
func Register(d Descriptor) error {
	return defaultRegistry.Register(d)
}

// Unregister removes d from the process-wide registry.
func Unregister(d Descriptor) {
	defaultRegistry.Unregister(d)
}
