package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFileKey = "config"

// ConfigFile is the binder for the configuration file. The format of
// the file is taken from its extension
type ConfigFile struct {
	Path string
}

// Bind implementation of Binder for ConfigFile
func (f *ConfigFile) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(configFileKey, "", "path to the configuration file")
	return nil
}

// Configure implementation of Binder for ConfigFile
func (f *ConfigFile) Configure(v *viper.Viper) error {
	f.Path = v.GetString(configFileKey)
	if len(f.Path) == 0 {
		return nil
	}

	v.SetConfigFile(f.Path)
	if err := v.ReadInConfig(); err != nil {
		return ErrReadConfigFile{Path: f.Path, Cause: err}
	}

	return nil
}
