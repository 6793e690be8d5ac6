package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Storage struct {
	Path string
	Keys string
}

const (
	Cfg_storage_path = "storage.path"
	Cfg_storage_keys = "storage.keys"
)

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	viper.SetDefault(Cfg_storage_path, filepath.Join(home, ".didanchor", "documents"))
	viper.SetDefault(Cfg_storage_keys, filepath.Join(home, ".didanchor", "keys.yaml"))
}

func buildStorageConfig() (*Storage, error) {
	return &Storage{
		Path: viper.GetString(Cfg_storage_path),
		Keys: viper.GetString(Cfg_storage_keys),
	}, nil
}
