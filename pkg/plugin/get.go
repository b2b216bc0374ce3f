package plugin

import "github.com/mesh-intelligence/extend/pkg/anymap"

// GetRef returns the host's P, constructing and caching it on first use.
// The returned value is a copy; use GetMut to change the cached plugin.
func GetRef[P PluginFor[H, P], H Extensible](host H) (P, bool) {
	if !materialize[P](host) {
		var zero P
		return zero, false
	}
	return anymap.Find[P](host.Extensions())
}

// GetMut is GetRef returning a pointer to the cached plugin. Writes through
// the pointer are seen by later requests.
func GetMut[P PluginFor[H, P], H Extensible](host H) (*P, bool) {
	if !materialize[P](host) {
		return nil, false
	}
	return anymap.FindMut[P](host.ExtensionsMut())
}

// Get is GetRef returning a clone of the cached plugin. The clone does not
// share state with the store.
func Get[P interface {
	PluginFor[H, P]
	Cloner[P]
}, H Extensible](host H) (P, bool) {
	p, ok := GetRef[P](host)
	if !ok {
		return p, false
	}
	return p.Clone(), true
}

// Compute builds a fresh P from host without caching it. Any host type
// works, extensible or not.
func Compute[P PluginFor[H, P], H any](host H) (P, bool) {
	var factory P
	return factory.Create(host)
}

// materialize ensures the host's store holds a P. Create runs only when P
// is absent; a refusal leaves the store untouched.
func materialize[P PluginFor[H, P], H Extensible](host H) bool {
	if anymap.Contains[P](host.Extensions()) {
		return true
	}
	p, ok := Compute[P](host)
	if !ok {
		return false
	}
	anymap.Insert(host.ExtensionsMut(), p)
	return true
}
