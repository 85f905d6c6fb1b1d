package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	RPS               float64 `mapstructure:"rps"`
	Burst             int
	MaxConcurrent     int64
	MaxBodyMB         int64 `mapstructure:"maxBodyMB"`
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"maxSizeMB"`
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	IdentityTTLSec int    `mapstructure:"identityTTLSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	PrepareStmt        bool
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// Bootstrap is the reserved superadmin seeded on first start.
type Bootstrap struct {
	Username    string
	Password    string
	DisplayName string
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	CORS      CORS  `mapstructure:"cors"`
	Bootstrap Bootstrap
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.JWT.Secret == "" {
		log.Fatalf("config: jwt.secret is required")
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "raluma-api")
	v.SetDefault("app.http.port", 8000)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 10)
	v.SetDefault("app.http.rps", 200)
	v.SetDefault("app.http.burst", 400)
	v.SetDefault("app.http.maxConcurrent", 300)
	v.SetDefault("app.http.maxBodyMB", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "raluma-api")
	v.SetDefault("jwt.accessTokenTTLMin", 60*24)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("redis.identityTTLSec", 30)
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("bootstrap.username", "admin")
	v.SetDefault("bootstrap.password", "admin123")
	v.SetDefault("bootstrap.displayName", "Administrator")
}
