package entityservice

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestLoadConfig(t *testing.T) {
	is, config := setupConfigTest(t, configFile)

	is.Equal(len(config.Tenants), 2) // should have two tenants
	is.Equal(config.Tenants[0].ID, "default")
	is.Equal(config.Tenants[1].Name, "Bolaget")
	is.Equal(config.Query.ChunkSize, 50)
	is.Equal(config.Query.DefaultLimit, 500)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	is, config := setupConfigTest(t, "tenants: []\n")

	is.Equal(config.Query.ChunkSize, DefaultChunkSize)
	is.Equal(config.Query.DefaultLimit, DefaultQueryLimit)
	is.Equal(config.Query.MaxLimit, DefaultMaxQueryRows)
}

func setupConfigTest(t *testing.T, data string) (*is.I, *Config) {
	is := is.New(t)
	cfgData := bytes.NewBuffer([]byte(data))
	config, err := LoadConfiguration(cfgData)
	is.NoErr(err)

	return is, config
}

var configFile string = `
tenants:
  - id: default
    name: Kommunen
  - id: bolaget
    name: Bolaget
query:
  chunkSize: 50
  defaultLimit: 500
`
