package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesFileDefaultsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
jwt:
  secret: from-file
db:
  driver: sqlite
  dsn: "file:test.db"
cors:
  allowedOrigins:
    - https://app.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("APP_JWT_ISSUER", "issuer-from-env")

	c := Load(path)

	require.Equal(t, "from-file", c.JWT.Secret)
	require.Equal(t, "issuer-from-env", c.JWT.Issuer)
	require.Equal(t, 60*24, c.JWT.AccessTokenTTLMin)
	require.Equal(t, "sqlite", c.DB.Driver)
	require.Equal(t, []string{"https://app.example.com"}, c.CORS.AllowedOrigins)
	require.Equal(t, 8000, c.App.HTTP.Port)
	require.Equal(t, "admin", c.Bootstrap.Username)
	require.Equal(t, 30, c.Redis.IdentityTTLSec)
}
