package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alovak/directplus/directplus"
	"github.com/alovak/directplus/sandbox"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DIRECTPLUS"

// Config is the file layout read by the CLI.
type Config struct {
	LogLevel string            `mapstructure:"log_level" yaml:"log_level"`
	Gateway  directplus.Config `mapstructure:"gateway" yaml:"gateway"`
	Sandbox  sandbox.Config    `mapstructure:"sandbox" yaml:"sandbox"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Gateway:  *directplus.DefaultConfig(),
		Sandbox:  *sandbox.DefaultConfig(),
	}
}

// Load merges defaults, the optional YAML file at path and DIRECTPLUS_*
// environment variables (e.g. DIRECTPLUS_GATEWAY_LOGIN). envFile, when set,
// is loaded into the environment first without overriding existing variables.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so that environment overrides apply even
// when the file does not mention the key.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)

	g := d.Gateway
	v.SetDefault("gateway.login", g.Login)
	v.SetDefault("gateway.password", g.Password)
	v.SetDefault("gateway.test", g.Test)
	v.SetDefault("gateway.endpoints.test_url", g.Endpoints.TestURL)
	v.SetDefault("gateway.endpoints.test_backup_url", g.Endpoints.TestBackupURL)
	v.SetDefault("gateway.endpoints.live_url", g.Endpoints.LiveURL)
	v.SetDefault("gateway.endpoints.live_backup_url", g.Endpoints.LiveBackupURL)
	v.SetDefault("gateway.default_currency", g.DefaultCurrency)
	v.SetDefault("gateway.verify_amount", g.VerifyAmount)
	v.SetDefault("gateway.timeout", g.Timeout)

	s := d.Sandbox
	v.SetDefault("sandbox.http_addr", s.HTTPAddr)
	v.SetDefault("sandbox.path", s.Path)
	v.SetDefault("sandbox.site", s.Site)
	v.SetDefault("sandbox.rang", s.Rang)
	v.SetDefault("sandbox.key", s.Key)
	v.SetDefault("sandbox.outage_code", s.OutageCode)
	v.SetDefault("sandbox.pan_hash_key", s.PANHashKey)
}

var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes the default configuration as YAML.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
