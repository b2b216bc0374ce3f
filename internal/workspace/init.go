package workspace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/extend/pkg/plugin"
	"github.com/mesh-intelligence/extend/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

// Init creates the workspace directories, writes config.yaml if missing,
// creates the catalog database if missing and opens it. Init is idempotent
// and the only operation that creates workspace files.
func (ws *Workspace) Init() error {
	if ws.closed {
		return types.ErrWorkspaceClosed
	}
	layout, ok := plugin.Get[Layout](ws)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrPluginUnavailable, pluginName[Layout]())
	}

	for _, dir := range layout.Dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := writeConfigIfMissing(layout.ConfigFile, ws.config.Backend, layout.DataDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := createCatalogIfMissing(layout.CatalogFile); err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}

	if _, err := Use[*Catalog](ws); err != nil {
		return fmt.Errorf("initialize catalog: %w", err)
	}
	return nil
}

// writeConfigIfMissing creates config.yaml if the file does not exist. The
// data dir is written resolved, so the file means the same thing from any
// working directory. An existing file is left untouched.
func writeConfigIfMissing(path, backend, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&configFile{
		Backend: backend,
		DataDir: dataDir,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
