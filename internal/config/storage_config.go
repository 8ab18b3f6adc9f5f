package config

import "path/filepath"

const (
	StorageBackendSQLite = "sqlite"
	StorageBackendMemory = "memory"
)

type StorageConfig interface {
	GetDataFolder() string
	GetStorageBackend() string
	GetStoragePath() string
}

type Storage struct {
	Folder  string `env:"FOLDER" envDefault:"./data"`
	Backend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	File    string `env:"STORAGE_FILE" envDefault:"session.db"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetDataFolder() string {
	return s.Folder
}

func (s Storage) GetStorageBackend() string {
	switch s.Backend {
	case StorageBackendMemory:
		return StorageBackendMemory
	default:
		return StorageBackendSQLite
	}
}

func (s Storage) GetStoragePath() string {
	return filepath.Join(s.Folder, s.File)
}
