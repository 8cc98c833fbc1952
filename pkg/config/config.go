package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DefaultUpstreamBaseURL          = "https://advacned-tsp.onrender.com/api"
	DefaultUpstreamAlternateBaseURL = "https://advanced-tsp.onrender.com/api"
)

type Config struct {
	Env          string             `mapstructure:"env"`
	Server       ServerConfig       `mapstructure:"server"`
	Upstream     UpstreamConfig     `mapstructure:"upstream"`
	Mail         MailConfig         `mapstructure:"mail"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Notification NotificationConfig `mapstructure:"notification"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	StaticDir    string `mapstructure:"static_dir"`
	AllowOrigins string `mapstructure:"allow_origins"`
}

type UpstreamConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	AlternateBaseURL string        `mapstructure:"alternate_base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxBody          string        `mapstructure:"max_body"`

	// MaxBodyBytes is MaxBody parsed, e.g. "10MB" or "512KiB"; 0 is unlimited
	MaxBodyBytes uint64 `mapstructure:"-"`
}

type MailConfig struct {
	ResendAPIKey  string `mapstructure:"resend_api_key"`
	From          string `mapstructure:"from"`
	AdminEmail    string `mapstructure:"admin_email"`
	CompanyName   string `mapstructure:"company_name"`
	ContactPerson string `mapstructure:"contact_person"`
	AppURL        string `mapstructure:"app_url"`
}

type RedisConfig struct {
	Addr  string `mapstructure:"addr"`
	Pass  string `mapstructure:"pass"`
	Queue string `mapstructure:"queue"`
}

type NotificationConfig struct {
	Workers     int `mapstructure:"workers"`
	MaxAttempts int `mapstructure:"max_attempts"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsProduction reports whether cookies must be marked Secure
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UpstreamHostsDiffer reports whether the primary and alternate bases point
// at different hosts. The operator has to reconcile them; nothing here picks one.
func (c Config) UpstreamHostsDiffer() bool {
	a, errA := url.Parse(c.Upstream.BaseURL)
	b, errB := url.Parse(c.Upstream.AlternateBaseURL)
	if errA != nil || errB != nil {
		return c.Upstream.BaseURL != c.Upstream.AlternateBaseURL
	}
	return !strings.EqualFold(a.Host, b.Host)
}

// envBindings maps config keys to the environment variables that feed them.
// The first variable that is set wins.
var envBindings = map[string][]string{
	"env":                         {"APP_ENV", "NODE_ENV"},
	"server.port":                 {"PORT"},
	"server.static_dir":           {"STATIC_DIR"},
	"server.allow_origins":        {"CORS_ALLOW_ORIGINS"},
	"upstream.base_url":           {"UPSTREAM_BASE_URL"},
	"upstream.alternate_base_url": {"NEXT_PUBLIC_API_BASE_URL"},
	"upstream.timeout":            {"UPSTREAM_TIMEOUT"},
	"upstream.max_body":           {"UPSTREAM_MAX_BODY"},
	"mail.resend_api_key":         {"RESEND_API_KEY"},
	"mail.from":                   {"RESEND_FROM_EMAIL"},
	"mail.admin_email":            {"ADMIN_EMAIL"},
	"mail.company_name":           {"COMPANY_NAME"},
	"mail.contact_person":         {"CONTACT_PERSON"},
	"mail.app_url":                {"NEXT_PUBLIC_APP_URL"},
	"redis.addr":                  {"REDIS_ADDR"},
	"redis.pass":                  {"REDIS_PASS"},
	"redis.queue":                 {"REDIS_EMAIL_QUEUE"},
	"notification.workers":        {"NOTIFICATION_WORKERS"},
	"notification.max_attempts":   {"NOTIFICATION_MAX_ATTEMPTS"},
	"log.level":                   {"LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("upstream.base_url", DefaultUpstreamBaseURL)
	v.SetDefault("upstream.alternate_base_url", DefaultUpstreamAlternateBaseURL)
	v.SetDefault("upstream.timeout", time.Duration(0))
	v.SetDefault("upstream.max_body", "")
	v.SetDefault("mail.resend_api_key", "")
	v.SetDefault("mail.from", "onboarding@resend.dev")
	v.SetDefault("mail.admin_email", "")
	v.SetDefault("mail.company_name", "TSP")
	v.SetDefault("mail.contact_person", "")
	v.SetDefault("mail.app_url", "http://localhost:3000")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.pass", "")
	v.SetDefault("redis.queue", "backoffice:emails")
	v.SetDefault("notification.workers", 2)
	v.SetDefault("notification.max_attempts", 3)
	v.SetDefault("log.level", "info")
}

// Load reads the optional dotenv file at envFile into the process
// environment (existing variables win) and builds the Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}

	cfg.Upstream.BaseURL = strings.TrimRight(cfg.Upstream.BaseURL, "/")
	cfg.Upstream.AlternateBaseURL = strings.TrimRight(cfg.Upstream.AlternateBaseURL, "/")
	if limit := strings.TrimSpace(cfg.Upstream.MaxBody); limit != "" {
		n, err := humanize.ParseBytes(limit)
		if err != nil {
			return nil, fmt.Errorf("parsing UPSTREAM_MAX_BODY %q: %w", limit, err)
		}
		cfg.Upstream.MaxBodyBytes = n
	}
	if cfg.Notification.Workers < 1 {
		cfg.Notification.Workers = 1
	}
	if cfg.Notification.MaxAttempts < 1 {
		cfg.Notification.MaxAttempts = 1
	}

	return &cfg, nil
}
