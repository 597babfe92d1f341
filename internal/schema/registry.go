package schema

import (
	"errors"
	"fmt"
)

// Unresolved is the foreign key written when a key was never registered.
const Unresolved = -1

// ErrRegistryFrozen is returned when registering into a frozen registry.
var ErrRegistryFrozen = errors.New("registry is frozen")

// Registry assigns dense surrogate ids, starting at 1, to composite keys in
// first-seen order. Ids never change once assigned. A Registry is not safe
// for concurrent use.
type Registry struct {
	name   string
	ids    map[string]int
	keys   []string
	frozen bool
}

// NewRegistry creates an empty registry for the named dimension.
func NewRegistry(name string) *Registry {
	return &Registry{
		name: name,
		ids:  make(map[string]int),
	}
}

// Name returns the dimension name.
func (r *Registry) Name() string {
	return r.name
}

// Register returns the id of key, assigning the next id if key is new.
// added reports whether the key was new.
func (r *Registry) Register(key string) (id int, added bool, err error) {
	if id, ok := r.ids[key]; ok {
		return id, false, nil
	}
	if r.frozen {
		return 0, false, fmt.Errorf("%s: %w", r.name, ErrRegistryFrozen)
	}

	r.keys = append(r.keys, key)
	id = len(r.keys)
	r.ids[key] = id
	return id, true, nil
}

// Lookup returns the id of key.
func (r *Registry) Lookup(key string) (int, bool) {
	id, ok := r.ids[key]
	return id, ok
}

// Resolve returns the id of key, or Unresolved.
func (r *Registry) Resolve(key string) int {
	if id, ok := r.ids[key]; ok {
		return id
	}
	return Unresolved
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Keys returns the registered keys in id order; Keys()[i] has id i+1.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Registries holds the registries of one pipeline run.
type Registries struct {
	Generation *Registry
	Status     *Registry
	Location   *Registry
	Facility   *Registry
}

// NewRegistries creates empty registries for every discovered dimension.
func NewRegistries() *Registries {
	return &Registries{
		Generation: NewRegistry(DimGeneration),
		Status:     NewRegistry(DimStatus),
		Location:   NewRegistry(DimLocation),
		Facility:   NewRegistry(DimFacility),
	}
}

// All returns the registries in output order.
func (r *Registries) All() []*Registry {
	return []*Registry{r.Generation, r.Status, r.Location, r.Facility}
}

// Freeze freezes every registry.
func (r *Registries) Freeze() {
	for _, reg := range r.All() {
		reg.Freeze()
	}
}
