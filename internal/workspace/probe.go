package workspace

import (
	"github.com/mesh-intelligence/extend/pkg/anymap"
	"github.com/mesh-intelligence/extend/pkg/plugin"
	"github.com/mesh-intelligence/extend/pkg/types"
)

// Status reports whether a plugin is cached and whether it can be built
// from the workspace's current state.
type Status struct {
	Plugin    string `json:"plugin"`
	Cached    bool   `json:"cached"`
	Available bool   `json:"available"`
}

// Probe checks every workspace plugin. Uncached plugins are built with
// plugin.Compute and discarded, so Probe never adds to the store and never
// writes to disk.
func (ws *Workspace) Probe() ([]Status, error) {
	if ws.closed {
		return nil, types.ErrWorkspaceClosed
	}
	return []Status{
		probe[Identity](ws, nil),
		probe[Layout](ws, nil),
		probe[*Catalog](ws, func(c *Catalog) { _ = c.Close() }),
	}, nil
}

func probe[P plugin.PluginFor[*Workspace, P]](ws *Workspace, release func(P)) Status {
	s := Status{
		Plugin: pluginName[P](),
		Cached: anymap.Contains[P](ws.Extensions()),
	}
	if s.Cached {
		s.Available = true
		return s
	}
	p, ok := plugin.Compute[P](ws)
	s.Available = ok
	if ok && release != nil {
		release(p)
	}
	return s
}
