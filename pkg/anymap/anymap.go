// Package anymap provides a heterogeneous container holding at most one
// value per distinct Go type. Values are addressed by their type, so callers
// never name a key: Insert[T] stores under T and Find[T] retrieves it.
//
// A Map has a single owner. It takes no locks; callers that share a Map
// across goroutines must serialize access themselves.
package anymap

import (
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// Reader is the read-only view of a Map. It lets a host hand out access to
// its store without permitting insertion.
type Reader interface {
	// Has reports whether a value of type t is stored.
	Has(t reflect.Type) bool

	// Lookup returns the stored *T for type t, boxed as any.
	Lookup(t reflect.Type) (any, bool)

	// Types lists the stored types.
	Types() []reflect.Type
}

// Map stores one value per type. The zero value is not ready for use; call New.
type Map struct {
	entries map[reflect.Type]any // values are *T for key T
	logger  *zap.Logger
}

// Option configures a Map.
type Option func(*Map)

// WithCapacity pre-sizes the backing map for n distinct types.
func WithCapacity(n int) Option {
	return func(m *Map) {
		if n > 0 {
			m.entries = make(map[reflect.Type]any, n)
		}
	}
}

// WithLogger logs inserts at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Map) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates an empty Map.
func New(opts ...Option) *Map {
	m := &Map{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	if m.entries == nil {
		m.entries = make(map[reflect.Type]any)
	}
	return m
}

// Has implements Reader.
func (m *Map) Has(t reflect.Type) bool {
	_, ok := m.entries[t]
	return ok
}

// Lookup implements Reader.
func (m *Map) Lookup(t reflect.Type) (any, bool) {
	v, ok := m.entries[t]
	return v, ok
}

// Len returns the number of stored types.
func (m *Map) Len() int {
	return len(m.entries)
}

// Types returns the stored types ordered by their string form.
func (m *Map) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(m.entries))
	for t := range m.entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

func (m *Map) insert(t reflect.Type, ptr any) {
	_, replaced := m.entries[t]
	m.entries[t] = ptr
	m.logger.Debug("anymap insert",
		zap.Stringer("type", t),
		zap.Bool("replaced", replaced),
		zap.Int("len", len(m.entries)),
	)
}

// Contains reports whether r holds a value of type T.
func Contains[T any](r Reader) bool {
	return r.Has(reflect.TypeFor[T]())
}

// Find returns a copy of the stored T.
func Find[T any](r Reader) (T, bool) {
	ptr, ok := lookup[T](r)
	if !ok {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// FindMut returns a pointer to the stored T. Writes through the pointer
// change the stored value.
func FindMut[T any](m *Map) (*T, bool) {
	return lookup[T](m)
}

// Insert stores v under T, replacing any previous T.
func Insert[T any](m *Map, v T) {
	m.insert(reflect.TypeFor[T](), &v)
}

func lookup[T any](r Reader) (*T, bool) {
	v, ok := r.Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	ptr, ok := v.(*T)
	return ptr, ok
}
