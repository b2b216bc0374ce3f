// Package plugin attaches lazily constructed, per-type memoized capabilities
// ("plugins") to a host value.
//
// A plugin type P declares how it is built from a host H by implementing
// PluginFor[H, P]. A host that owns an anymap.Map implements Extensible and
// can then be asked for any plugin type in any order:
//
//	id, ok := plugin.GetRef[Identity](ws)
//
// The first successful request constructs and caches the plugin; later
// requests return the cached value without calling Create again. A refused
// construction is not cached, so the next request tries again.
//
// Hosts are single-owner. Nothing here takes a lock.
package plugin

import "github.com/mesh-intelligence/extend/pkg/anymap"

// Extensible is implemented by hosts that own plugin storage.
type Extensible interface {
	// Extensions returns a read-only view of the host's store.
	Extensions() anymap.Reader

	// ExtensionsMut returns the host's store for insertion.
	ExtensionsMut() *anymap.Map
}

// PluginFor is implemented by a plugin type P that can be built from a host
// of type H. Create is called on the zero value of P and must not depend on
// the receiver; pointer plugin types declare it on the pointer receiver so a
// nil receiver is safe. It returns false when P cannot be built from the
// host's current state.
type PluginFor[H, P any] interface {
	Create(host H) (P, bool)
}

// Cloner is implemented by plugin types that can be copied out of the store
// with Get.
type Cloner[P any] interface {
	Clone() P
}

// Storage is an embeddable Extensible implementation. The zero value is
// ready for use. Embed it by value in a host that is used through a pointer.
type Storage struct {
	store *anymap.Map
}

// NewStorage returns Storage backed by a Map built with opts.
func NewStorage(opts ...anymap.Option) Storage {
	return Storage{store: anymap.New(opts...)}
}

// Extensions implements Extensible.
func (e *Storage) Extensions() anymap.Reader {
	return e.ExtensionsMut()
}

// ExtensionsMut implements Extensible.
func (e *Storage) ExtensionsMut() *anymap.Map {
	if e.store == nil {
		e.store = anymap.New()
	}
	return e.store
}
