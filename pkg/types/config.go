package types

import "fmt"

// Config describes the workspace a host is built over.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	ConfigDir string `json:"-" yaml:"-"`
	DataDir   string `json:"data_dir" yaml:"data_dir,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	return nil
}
