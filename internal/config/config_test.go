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
database:
  host: db.internal
  port: 5433
  user: pos
  password: secret
  database: pos_prod

rabbitmq:
  host: mq.internal

http:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "pos_prod", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.HTTP.Port)

	// Omitted keys keep their defaults.
	assert.Equal(t, "mq.internal", cfg.RabbitMQ.Host)
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, "guest", cfg.RabbitMQ.User)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "database: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}
