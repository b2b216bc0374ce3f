package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/extend/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
)

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error; defaults apply until extend init writes one.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
