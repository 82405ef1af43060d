package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/killshot-app/killshot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(confFile, []byte(`
server:
  addr: ":9090"
database:
  path: /tmp/killshot-test.db
auth:
  users:
    - name: alice
      password: hunter2
  jwtSecret: not-a-real-secret
  tokenTTL: 24h
telegram:
  chatID: 42
`), 0o600))
	t.Setenv("CONF_FILE", confFile)

	conf, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", conf.Server.Addr)
	assert.Equal(t, "/tmp/killshot-test.db", conf.Database.Path)
	assert.Equal(t, config.Duration(24*time.Hour), conf.Auth.TokenTTL)
	assert.Equal(t, int64(42), conf.Telegram.ChatID)

	user := conf.Auth.FindUser("alice")
	require.NotNil(t, user)
	assert.Equal(t, "hunter2", user.Password)
	assert.Nil(t, conf.Auth.FindUser("bob"))
}

func TestLoadDefaults(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(confFile, []byte("{}"), 0o600))
	t.Setenv("CONF_FILE", confFile)

	conf, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", conf.Server.Addr)
	assert.Equal(t, "killshot.db", conf.Database.Path)
	assert.Equal(t, config.Duration(30*24*time.Hour), conf.Auth.TokenTTL)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONF_FILE", filepath.Join(t.TempDir(), "nope.yml"))

	_, err := config.Load()
	assert.Error(t, err)
}
