package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when ADMIN_API_URL is not set.
const DefaultAPIURL = "http://localhost:8081/api"

type Config struct {
	APIURL     string
	LogLevel   string
	TokenStore TokenStoreConfig
	Redis      RedisConfig
	MinIO      MinIOConfig
	FakeAPI    FakeAPIConfig
	JWT        JWTConfig
}

type TokenStoreConfig struct {
	Driver string // file, redis, memory
	File   string
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	Key         string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string // skips the bucket location lookup when set
	UseSSL    bool
}

// Enabled reports whether enough is configured to open a MinIO client.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != "" && m.Bucket != ""
}

type FakeAPIConfig struct {
	Host      string
	Port      int
	DSN       string
	UploadDir string
}

type JWTConfig struct {
	Secret        string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

const (
	envAPIURL         = "ADMIN_API_URL"
	envLogLevel       = "LOG_LEVEL"
	envTokenStore     = "TOKEN_STORE"
	envTokenFile      = "TOKEN_FILE"
	envRedisHost      = "REDIS_HOST"
	envRedisPort      = "REDIS_PORT"
	envRedisPass      = "REDIS_PASSWORD"
	envRedisDB        = "REDIS_DB"
	envRedisKey       = "REDIS_TOKEN_KEY"
	envMinIOEndpoint  = "MINIO_ENDPOINT"
	envMinIOAccessKey = "MINIO_ACCESS_KEY"
	envMinIOSecretKey = "MINIO_SECRET_KEY"
	envMinIOBucket    = "MINIO_BUCKET"
	envMinIOUseSSL    = "MINIO_USE_SSL"
	envMinIORegion    = "MINIO_REGION"
	envFakeAPIHost    = "FAKEAPI_HOST"
	envFakeAPIPort    = "FAKEAPI_PORT"
	envFakeAPIDSN     = "FAKEAPI_DSN"
	envFakeAPIUploads = "FAKEAPI_UPLOAD_DIR"
	envJWTSecret      = "JWT_SECRET"
	envJWTExpires     = "JWT_EXPIRES_IN"
)

// bindings maps viper keys (also used in the toml file) to env variables.
var bindings = map[string]string{
	"api_url":            envAPIURL,
	"log_level":          envLogLevel,
	"token_store.driver": envTokenStore,
	"token_store.file":   envTokenFile,
	"redis.host":         envRedisHost,
	"redis.port":         envRedisPort,
	"redis.password":     envRedisPass,
	"redis.db":           envRedisDB,
	"redis.key":          envRedisKey,
	"minio.endpoint":     envMinIOEndpoint,
	"minio.access_key":   envMinIOAccessKey,
	"minio.secret_key":   envMinIOSecretKey,
	"minio.bucket":       envMinIOBucket,
	"minio.use_ssl":      envMinIOUseSSL,
	"minio.region":       envMinIORegion,
	"fakeapi.host":       envFakeAPIHost,
	"fakeapi.port":       envFakeAPIPort,
	"fakeapi.dsn":        envFakeAPIDSN,
	"fakeapi.upload_dir": envFakeAPIUploads,
	"jwt.secret":         envJWTSecret,
	"jwt.expires_in":     envJWTExpires,
}

// NewConfig reads .env, an optional toml config file and the environment.
// Environment variables win over the file. When configFile is empty a file
// named by CONFIG_NAME (default "config") is looked up in ./config and ./;
// a missing file is not an error.
func NewConfig(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		configName := "config"
		if os.Getenv("CONFIG_NAME") != "" {
			configName = os.Getenv("CONFIG_NAME")
		}
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		APIURL:   strings.TrimRight(v.GetString("api_url"), "/"),
		LogLevel: v.GetString("log_level"),
		TokenStore: TokenStoreConfig{
			Driver: strings.ToLower(v.GetString("token_store.driver")),
			File:   v.GetString("token_store.file"),
		},
		Redis: RedisConfig{
			Host:        v.GetString("redis.host"),
			Port:        v.GetInt("redis.port"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			Key:         v.GetString("redis.key"),
			DialTimeout: 10 * time.Second,
			ReadTimeout: 10 * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			Bucket:    v.GetString("minio.bucket"),
			Region:    v.GetString("minio.region"),
			UseSSL:    v.GetBool("minio.use_ssl"),
		},
		FakeAPI: FakeAPIConfig{
			Host:      v.GetString("fakeapi.host"),
			Port:      v.GetInt("fakeapi.port"),
			DSN:       v.GetString("fakeapi.dsn"),
			UploadDir: v.GetString("fakeapi.upload_dir"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("jwt.secret"),
			ExpiresIn:     v.GetDuration("jwt.expires_in"),
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	switch cfg.TokenStore.Driver {
	case "file", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore.Driver)
	}

	log.Debug("config parsed")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("log_level", "info")
	v.SetDefault("token_store.driver", "file")
	v.SetDefault("token_store.file", defaultTokenFile())
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key", "admin_token")
	v.SetDefault("fakeapi.host", "localhost")
	v.SetDefault("fakeapi.port", 8081)
	v.SetDefault("fakeapi.upload_dir", "uploads")
	v.SetDefault("jwt.secret", "dev-secret")
	v.SetDefault("jwt.expires_in", 24*time.Hour)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".marketadmin", "admin_token")
	}
	return filepath.Join(home, ".marketadmin", "admin_token")
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Addr returns host:port for the development backend.
func (f FakeAPIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", f.Host, f.Port)
}
