package config

import "fmt"

const (
	StorageMemory = "memory"
	StorageBolt   = "bolt"
	StorageRedis  = "redis"
)

type StorageConfig interface {
	GetStorageBackend() string
	GetDataFolder() string
	GetRedisURL() string
	GetRedisNamespace() string
}

type Storage struct {
	Backend        string `env:"STORAGE_BACKEND, default=bolt"`
	DataFolder     string `env:"DATA_FOLDER, default=./data"`
	RedisURL       string `env:"REDIS_URL, default=redis://localhost:6379/0"`
	RedisNamespace string `env:"REDIS_NAMESPACE, default=sessionctl"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() string {
	return s.Backend
}

func (s Storage) GetDataFolder() string {
	return s.DataFolder
}

func (s Storage) GetRedisURL() string {
	return s.RedisURL
}

func (s Storage) GetRedisNamespace() string {
	return s.RedisNamespace
}

func (s Storage) validate() error {
	switch s.Backend {
	case StorageMemory, StorageBolt, StorageRedis:
		return nil
	}
	return fmt.Errorf("unsupported storage backend %q", s.Backend)
}
