package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. FABRICA_LISTEN_ADDR.
const EnvPrefix = "FABRICA"

// User is a configured login. PasswordHash is a bcrypt hash.
type User struct {
	Username     string `mapstructure:"username" yaml:"username"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash"`
	Role         string `mapstructure:"role" yaml:"role"`
}

// Global configuration structure.
type Global struct {
	ListenAddr   string  `mapstructure:"listen_addr" yaml:"listen_addr"`
	ExportDir    string  `mapstructure:"export_dir" yaml:"export_dir"`
	MaxUploadMB  int     `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	SampleRows   int     `mapstructure:"sample_rows" yaml:"sample_rows"`
	DefaultAlpha float64 `mapstructure:"default_alpha" yaml:"default_alpha"`

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`

	// Auth and sessions
	JWTSecret     string   `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTLMin   int      `mapstructure:"token_ttl_min" yaml:"token_ttl_min"`
	SessionTTLMin int      `mapstructure:"session_ttl_min" yaml:"session_ttl_min"`
	CORSOrigins   []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	Users         []User   `mapstructure:"users" yaml:"users"`
}

// Dir returns ~/.fabrica.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fabrica"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fabrica/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	// the file holds password hashes and the token secret
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from .env, env, file and defaults.
// Precedence: env (including .env) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("export_dir", "exports")
	v.SetDefault("max_upload_mb", 20)
	v.SetDefault("sample_rows", 8)
	v.SetDefault("default_alpha", 0.05)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl_min", 480)
	v.SetDefault("session_ttl_min", 120)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("users", []User{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate checks the values the server depends on.
func (c *Global) Validate() error {
	var problems []string
	if c.ListenAddr == "" {
		problems = append(problems, "listen_addr is empty")
	}
	if c.MaxUploadMB <= 0 {
		problems = append(problems, "max_upload_mb must be positive")
	}
	if c.SampleRows < 0 {
		problems = append(problems, "sample_rows must not be negative")
	}
	if !(c.DefaultAlpha > 0 && c.DefaultAlpha < 1) {
		problems = append(problems, "default_alpha must be between 0 and 1")
	}
	if c.TokenTTLMin <= 0 {
		problems = append(problems, "token_ttl_min must be positive")
	}
	if c.SessionTTLMin < 0 {
		problems = append(problems, "session_ttl_min must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Set assigns a scalar key from its string form, as used by `config set`.
func (c *Global) Set(key, val string) error {
	switch key {
	case "listen_addr":
		c.ListenAddr = val
	case "export_dir":
		c.ExportDir = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_file":
		c.LogFile = val
	case "jwt_secret":
		c.JWTSecret = val
	case "cors_origins":
		c.CORSOrigins = splitList(val)
	case "max_upload_mb", "sample_rows", "token_ttl_min", "session_ttl_min":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "max_upload_mb":
			c.MaxUploadMB = i
		case "sample_rows":
			c.SampleRows = i
		case "token_ttl_min":
			c.TokenTTLMin = i
		case "session_ttl_min":
			c.SessionTTLMin = i
		}
	case "default_alpha":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || !(f > 0 && f < 1) {
			return fmt.Errorf("invalid float for default_alpha: %v", val)
		}
		c.DefaultAlpha = f
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// PutUser adds a user or replaces the one with the same name.
func (c *Global) PutUser(u User) {
	for i := range c.Users {
		if c.Users[i].Username == u.Username {
			c.Users[i] = u
			return
		}
	}
	c.Users = append(c.Users, u)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
