package serializer

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"unsafe"
)

// Registry maps names to statically compiled functions so that work
// procedures can be persisted by name and resolved again after a restart.
//
// Reverse lookups go by function value, not by code: two closures built by
// the same literal share their code but are told apart here.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]any
	byFunc map[uintptr]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]any),
		byFunc: make(map[uintptr]string),
	}
}

// Register adds fn under name. fn must be a non-nil function that is not
// already registered under another name.
func (r *Registry) Register(name string, fn any) error {
	v := reflect.ValueOf(fn)
	if name == "" {
		return fmt.Errorf("registry: empty name")
	}
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("registry: %q is not a function", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("registry: %q already registered", name)
	}
	id := funcID(fn)
	if other, ok := r.byFunc[id]; ok {
		return fmt.Errorf("registry: %q is the function already registered as %q", name, other)
	}
	r.byName[name] = fn
	r.byFunc[id] = name
	return nil
}

func (r *Registry) MustRegister(name string, fn any) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.byName[name]
	return fn, ok
}

// NameOf finds the name fn was registered under. Only the registered value
// itself, or a copy of it, matches; a fresh closure from the same literal
// does not.
func (r *Registry) NameOf(fn any) (string, bool) {
	if r == nil {
		return "", false
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byFunc[funcID(fn)]
	return name, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// funcID is the address of the closure record behind fn. reflect only
// exposes the code pointer, which closures of one literal share. The record
// stays reachable through byName for as long as the id is mapped.
func funcID(fn any) uintptr {
	type eface struct {
		typ  unsafe.Pointer
		data unsafe.Pointer
	}
	return uintptr((*eface)(unsafe.Pointer(&fn)).data)
}
