package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8081
database:
  host: db.local
  port: 5433
  user: pizzeria
  password: secret
  database: pizzeria
rabbitmq:
  host: mq.local
  user: guest
  password: guest
catalog:
  three_flavor_surcharge: 2500
  extra_special_flavors:
    - trufada
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "mq.local", cfg.RabbitMQ.Host)
	// default kept when the file does not override it
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, 2500.0, cfg.Catalog.ThreeFlavorSurcharge)
	assert.Equal(t, []string{"trufada"}, cfg.Catalog.ExtraSpecialFlavors)
}

func TestLoadDefaultsSurchargeTable(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  database: pizzeria
rabbitmq:
  host: mq.local
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000.0, cfg.Catalog.SpecialSurcharge["mediana"])
	assert.Equal(t, 4000.0, cfg.Catalog.SpecialSurcharge["grande"])
	assert.Equal(t, 3000.0, cfg.Catalog.ThreeFlavorSurcharge)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing database", "rabbitmq:\n  host: mq.local\n"},
		{"missing rabbitmq host", "database:\n  host: db\n  database: pizzeria\nrabbitmq:\n  port: 5672\n"},
		{"bad port", "http:\n  port: 99999\ndatabase:\n  host: db\n  database: p\nrabbitmq:\n  host: mq\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
