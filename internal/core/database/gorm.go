package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"raluma-api/internal/core/logger"
)

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

type Opts struct {
	Driver             string // postgres | mysql | sqlite
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	PrepareStmt        bool
	Logger             *zap.Logger // nil keeps gorm's default writer
}

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dsn := normalizeMySQLDSN(o.DSN, o.Username, o.Password)
		if o.Logger != nil {
			o.Logger.Info("mysql dsn", zap.String("dsn", maskDSN(dsn)))
		}
		dial = mysql.Open(dsn)
	case "sqlite":
		dial = sqlite.Open(o.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                 newGormLogger(o.Logger, o.LogLevel),
		PrepareStmt:            o.PrepareStmt,
		SkipDefaultTransaction: true, // writes that need atomicity open their own tx
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	return db, nil
}

// Ping checks store connectivity.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func newGormLogger(l *zap.Logger, level string) gormlogger.Interface {
	lvl := gormlogger.Warn
	switch level {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
	case "info":
		lvl = gormlogger.Info
	}
	if l == nil {
		return gormlogger.Default.LogMode(lvl)
	}
	std, err := logger.ToStdLogger(l.Named("gorm"), zapcore.InfoLevel)
	if err != nil {
		std = log.Default()
	}
	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func maskDSN(dsn string) string {
	masked := dsn
	if at := strings.Index(masked, "@"); at > 0 {
		if colon := strings.Index(masked[:at], ":"); colon > 0 {
			masked = masked[:colon+1] + "****" + masked[at:]
		}
	}
	return masked
}

// normalizeMySQLDSN rewrites mysql:// and jdbc:mysql:// URLs into the
// go-sql-driver form. Native DSNs (user:pass@tcp(...)) pass through.
func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimSpace(input)
	if in == "" {
		return in
	}

	if strings.HasPrefix(in, "jdbc:mysql://") {
		in = strings.TrimPrefix(in, "jdbc:")
	}
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}

	u, err := url.Parse(in)
	if err != nil {
		return in // let the driver report it
	}

	hostport := u.Host
	dbname := strings.TrimPrefix(u.Path, "/")

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	if q.Get("user") != "" {
		user = q.Get("user")
		q.Del("user")
	}
	if q.Get("password") != "" {
		pass = q.Get("password")
		q.Del("password")
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	// JDBC-only parameters
	if q.Get("characterEncoding") != "" && q.Get("charset") == "" {
		q.Set("charset", q.Get("characterEncoding"))
	}
	q.Del("characterEncoding")
	q.Del("useUnicode")
	q.Del("zeroDateTimeBehavior")

	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		switch v {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify":
			q.Set("tls", "skip-verify")
		case "preferred":
			q.Set("tls", "preferred")
		default:
			q.Set("tls", "false")
		}
		q.Del("useSSL")
	}

	if tz := q.Get("serverTimezone"); tz != "" {
		q.Set("loc", tz)
		q.Del("serverTimezone")
	}

	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}

	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, hostport, dbname)
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}
