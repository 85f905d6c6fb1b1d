package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		user string
		pass string
		want string
	}{
		{
			name: "native dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/raluma?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/raluma?parseTime=true",
		},
		{
			name: "jdbc url rewritten",
			in:   "jdbc:mysql://db:3306/raluma?useSSL=false&serverTimezone=UTC",
			user: "app",
			pass: "secret",
			want: "app:secret@tcp(db:3306)/raluma?charset=utf8mb4&loc=UTC&parseTime=true&tls=false",
		},
		{
			name: "mysql url keeps embedded credentials",
			in:   "mysql://u:p@db:3306/raluma?characterEncoding=latin1",
			want: "u:p@tcp(db:3306)/raluma?charset=latin1&parseTime=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	t.Parallel()
	require.Equal(t, "app:****@tcp(db:3306)/raluma", maskDSN("app:secret@tcp(db:3306)/raluma"))
}

func TestNewGormSQLite(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "t.db"),
		MaxOpenConns: 1,
		LogLevel:     "silent",
		Logger:       zap.NewNop(),
	})
	require.NoError(t, err)
	require.NoError(t, Ping(context.Background(), db))
}

func TestNewGormRejectsUnknownDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}
