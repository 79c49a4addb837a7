package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 ORIENT_SERVER_PORT
const EnvPrefix = "ORIENT"

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Content  ContentConfig  `mapstructure:"content"`
	Session  SessionConfig  `mapstructure:"session"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite | postgres
	DSN             string        `mapstructure:"dsn"`
	LogLevel        string        `mapstructure:"log_level"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	AdminEmail     string        `mapstructure:"admin_email"`
	AdminPassword  string        `mapstructure:"admin_password"`
	AdminName      string        `mapstructure:"admin_name"`
}

type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // local | s3
	BasePath  string `mapstructure:"base_path"`
	BaseURL   string `mapstructure:"base_url"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
	CDNDomain string `mapstructure:"cdn_domain"`
}

type ContentConfig struct {
	HomeCacheTTL time.Duration `mapstructure:"home_cache_ttl"`
}

type SessionConfig struct {
	MaxIdle    time.Duration `mapstructure:"max_idle"`
	ReaperSpec string        `mapstructure:"reaper_spec"`
}

type FeedConfig struct {
	BaseURL  string        `mapstructure:"base_url"` // 为空时不启用目录同步
	APIKey   string        `mapstructure:"api_key"`
	ProxyURL string        `mapstructure:"proxy_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
	Spec     string        `mapstructure:"spec"`
}

type SeedConfig struct {
	Path   string `mapstructure:"path"` // 为空时使用内置目录
	OnBoot bool   `mapstructure:"on_boot"`
}

// ==================== 加载 ====================

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "orient_store.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", 12*time.Hour)
	v.SetDefault("auth.admin_email", "admin@orient.uz")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.admin_name", "Administrator")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.base_path", "uploads")
	v.SetDefault("storage.base_url", "/uploads")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.cdn_domain", "")

	v.SetDefault("content.home_cache_ttl", time.Minute)

	v.SetDefault("session.max_idle", 30*time.Minute)
	v.SetDefault("session.reaper_spec", "0 */1 * * * *")

	v.SetDefault("feed.base_url", "")
	v.SetDefault("feed.api_key", "")
	v.SetDefault("feed.proxy_url", "")
	v.SetDefault("feed.timeout", 20*time.Second)
	v.SetDefault("feed.retries", 2)
	v.SetDefault("feed.spec", "0 0 */6 * * *")

	v.SetDefault("seed.path", "")
	v.SetDefault("seed.on_boot", true)
}

// Load 读取配置：默认值 < 配置文件 < 环境变量
// path 为空时在 . 和 ./config 下查找 config.yaml，找不到则只用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验取值范围
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode 无效: %s", c.Server.Mode)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver 无效: %s", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return errors.New("postgres 需要配置 database.dsn")
	}
	switch c.Storage.Provider {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			return errors.New("s3 存储需要配置 storage.bucket 和 storage.region")
		}
	default:
		return fmt.Errorf("storage.provider 无效: %s", c.Storage.Provider)
	}
	if c.Server.Mode == "release" && c.Auth.JWTSecret == "" {
		return errors.New("release 模式必须配置 auth.jwt_secret")
	}
	return nil
}

// FeedEnabled 是否配置了外部目录
func (c *Config) FeedEnabled() bool {
	return strings.TrimSpace(c.Feed.BaseURL) != ""
}
