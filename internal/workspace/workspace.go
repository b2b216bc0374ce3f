// Package workspace implements the extend workspace: a plugin host built
// over a config and data directory pair. Its capabilities (session identity,
// directory layout, the sqlite catalog) are plugins constructed on first use
// and cached for the life of the workspace.
//
// A Workspace has a single owner; callers serialize access.
package workspace

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/extend/internal/paths"
	"github.com/mesh-intelligence/extend/pkg/anymap"
	"github.com/mesh-intelligence/extend/pkg/plugin"
	"github.com/mesh-intelligence/extend/pkg/types"
)

// Workspace is the plugin host.
type Workspace struct {
	plugin.Storage

	config types.Config
	logger *zap.Logger
	closed bool
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger used by the workspace and its plugins.
func WithLogger(logger *zap.Logger) Option {
	return func(ws *Workspace) {
		if logger != nil {
			ws.logger = logger
		}
	}
}

// New creates a workspace for config. No plugin is built and nothing is
// written to disk until a plugin is requested.
func New(config types.Config, opts ...Option) (*Workspace, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	ws := &Workspace{
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ws)
	}
	ws.Storage = plugin.NewStorage(anymap.WithLogger(ws.logger.Named("plugins")))
	return ws, nil
}

// Config returns the configuration the workspace was created with.
func (ws *Workspace) Config() types.Config {
	return ws.config
}

// Use returns the workspace's P, building it on first use. It fails with
// ErrWorkspaceClosed after Close and with ErrPluginUnavailable when P cannot
// be built from the current workspace state.
func Use[P plugin.PluginFor[*Workspace, P]](ws *Workspace) (P, error) {
	var zero P
	if ws.closed {
		return zero, types.ErrWorkspaceClosed
	}
	p, ok := plugin.GetRef[P](ws)
	if !ok {
		return zero, fmt.Errorf("%w: %s", types.ErrPluginUnavailable, pluginName[P]())
	}
	return p, nil
}

// Plugins lists the plugin types built so far.
func (ws *Workspace) Plugins() []string {
	var names []string
	for _, t := range ws.Extensions().Types() {
		names = append(names, t.String())
	}
	return names
}

// Close releases the catalog if it was built. Close is idempotent.
func (ws *Workspace) Close() error {
	if ws.closed {
		return nil
	}
	ws.closed = true
	catalog, ok := anymap.Find[*Catalog](ws.Extensions())
	if !ok {
		return nil
	}
	if err := catalog.Close(); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}
	return nil
}

func (ws *Workspace) configDir() (string, error) {
	return paths.ResolveConfigDir(ws.config.ConfigDir)
}

func (ws *Workspace) dataDir() (string, error) {
	return paths.ResolveDataDir(ws.config.DataDir, "")
}

func pluginName[P any]() string {
	return reflect.TypeFor[P]().String()
}
