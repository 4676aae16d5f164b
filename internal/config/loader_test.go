package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
server:
  port: 9090
  shutdown_timeout: 10s
source:
  kind: S3
  s3:
    bucket: datasets
    key: fast_food.csv
    region: us-east-1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Address())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceS3, cfg.Source.Kind)
	assert.Equal(t, "datasets", cfg.Source.S3.Bucket)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: explorer\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.Equal(t, "Datafiniti_Fast_Food_Restaurants.csv", cfg.Source.Path)
	assert.Equal(t, "locations", cfg.Source.Postgres.Table)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SOURCE_PATH", "/data/restaurants.csv")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/data/restaurants.csv", cfg.Source.Path)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown source": "source:\n  kind: ftp\n",
		"s3 without key": "source:\n  kind: s3\n  s3:\n    bucket: b\n",
		"postgres host":  "source:\n  kind: postgres\n",
		"bad port":       "server:\n  port: 70000\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "fastfood", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=fastfood sslmode=disable", p.GetDSN())
}
