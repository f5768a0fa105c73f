package entityservice

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

type Tenant struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type QueryConfig struct {
	ChunkSize    int `yaml:"chunkSize"`
	DefaultLimit int `yaml:"defaultLimit"`
	MaxLimit     int `yaml:"maxLimit"`
}

type Config struct {
	Tenants []Tenant    `yaml:"tenants"`
	Query   QueryConfig `yaml:"query"`
}

const (
	DefaultChunkSize    int = 100
	DefaultQueryLimit   int = 1000
	DefaultMaxQueryRows int = 10000
)

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Query.ChunkSize <= 0 {
		cfg.Query.ChunkSize = DefaultChunkSize
	}

	if cfg.Query.MaxLimit <= 0 {
		cfg.Query.MaxLimit = DefaultMaxQueryRows
	}

	if cfg.Query.DefaultLimit <= 0 {
		cfg.Query.DefaultLimit = DefaultQueryLimit
	}

	cfg.Query.DefaultLimit = min(cfg.Query.DefaultLimit, cfg.Query.MaxLimit)
}
