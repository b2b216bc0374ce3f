package workspace

import (
	"path/filepath"

	"go.uber.org/zap"
)

// File names inside the workspace directories.
const (
	ConfigFileName  = "config.yaml"
	CatalogFileName = "catalog.db"
)

// Layout holds the resolved, absolute workspace locations.
type Layout struct {
	ConfigDir   string `json:"config_dir"`
	DataDir     string `json:"data_dir"`
	ConfigFile  string `json:"config_file"`
	CatalogFile string `json:"catalog_file"`
	// Dirs lists the directories Init creates.
	Dirs []string `json:"-"`
}

// Create resolves the directories from the workspace config, environment
// and platform defaults.
func (Layout) Create(ws *Workspace) (Layout, bool) {
	configDir, err := ws.configDir()
	if err != nil {
		ws.logger.Warn("resolve config dir", zap.Error(err))
		return Layout{}, false
	}
	dataDir, err := ws.dataDir()
	if err != nil {
		ws.logger.Warn("resolve data dir", zap.Error(err))
		return Layout{}, false
	}
	return Layout{
		ConfigDir:   configDir,
		DataDir:     dataDir,
		ConfigFile:  filepath.Join(configDir, ConfigFileName),
		CatalogFile: filepath.Join(dataDir, CatalogFileName),
		Dirs:        []string{configDir, dataDir},
	}, true
}

// Clone returns a copy that shares no memory with l.
func (l Layout) Clone() Layout {
	l.Dirs = append([]string(nil), l.Dirs...)
	return l
}
