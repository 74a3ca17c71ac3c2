package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "/etc/ntk/wifinator.toml"

type ArubaConfig struct {
	Address       string
	Username      string
	Password      string
	ProfilePrefix string
	// Controllers ship self-signed certificates, so verification is off
	// unless explicitly requested.
	VerifyTLS bool
}

type Config struct {
	Port         int
	Host         string
	Debug        bool
	DatabaseURL  string
	DatabaseType string
	ConfigFile   string
	SyncInterval time.Duration
	Aruba        ArubaConfig
	// Origins allowed to make credentialed cross-origin requests
	CORSOrigins []string
	// privilege -> roles
	Access map[string][]string
}

// Addr is the listen address of the API server
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:         5000,
		Host:         "localhost",
		DatabaseType: "sqlite",
		SyncInterval: 5 * time.Minute,
		Aruba: ArubaConfig{
			ProfilePrefix: "adhoc-",
		},
		Access: map[string][]string{},
	}
}

// fileConfig mirrors the sections of the configuration file
type fileConfig struct {
	HTTP struct {
		Host  string `toml:"host" yaml:"host"`
		Port  int    `toml:"port" yaml:"port"`
		Debug bool   `toml:"debug" yaml:"debug"`

		CORSOrigins []string `toml:"cors-origins" yaml:"cors-origins"`
	} `toml:"http" yaml:"http"`
	Database struct {
		URL  string `toml:"url" yaml:"url"`
		Type string `toml:"type" yaml:"type"`
	} `toml:"database" yaml:"database"`
	Aruba struct {
		Address       string `toml:"address" yaml:"address"`
		Username      string `toml:"username" yaml:"username"`
		Password      string `toml:"password" yaml:"password"`
		ProfilePrefix string `toml:"profile-prefix" yaml:"profile-prefix"`
		VerifyTLS     bool   `toml:"verify-tls" yaml:"verify-tls"`
	} `toml:"aruba" yaml:"aruba"`
	Sync struct {
		Interval string `toml:"interval" yaml:"interval"`
	} `toml:"sync" yaml:"sync"`
	Access map[string][]string `toml:"access" yaml:"access"`
}

// LoadFile applies a TOML or YAML configuration file (chosen by extension)
// on top of cfg.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = toml.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	setString(&cfg.Host, fc.HTTP.Host)
	if fc.HTTP.Port != 0 {
		cfg.Port = fc.HTTP.Port
	}
	cfg.Debug = cfg.Debug || fc.HTTP.Debug
	if len(fc.HTTP.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.HTTP.CORSOrigins
	}
	setString(&cfg.DatabaseURL, fc.Database.URL)
	setString(&cfg.DatabaseType, fc.Database.Type)
	setString(&cfg.Aruba.Address, fc.Aruba.Address)
	setString(&cfg.Aruba.Username, fc.Aruba.Username)
	setString(&cfg.Aruba.Password, fc.Aruba.Password)
	setString(&cfg.Aruba.ProfilePrefix, fc.Aruba.ProfilePrefix)
	cfg.Aruba.VerifyTLS = cfg.Aruba.VerifyTLS || fc.Aruba.VerifyTLS
	if fc.Sync.Interval != "" {
		d, err := time.ParseDuration(fc.Sync.Interval)
		if err != nil {
			return fmt.Errorf("config parse failed (%s): sync interval: %w", path, err)
		}
		cfg.SyncInterval = d
	}
	for privilege, roles := range fc.Access {
		cfg.Access[privilege] = roles
	}

	cfg.ConfigFile = path
	return nil
}

// ApplyEnv overrides cfg with environment variables
func ApplyEnv(cfg *Config) error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New("invalid SYNC_INTERVAL env variable")
		}
		cfg.SyncInterval = d
	}
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid DEBUG env variable")
		}
		cfg.Debug = debug
	}

	setString(&cfg.Host, os.Getenv("HOST"))
	setString(&cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	setString(&cfg.DatabaseType, os.Getenv("DATABASE_TYPE"))
	setString(&cfg.Aruba.Address, os.Getenv("ARUBA_ADDRESS"))
	setString(&cfg.Aruba.Username, os.Getenv("ARUBA_USERNAME"))
	setString(&cfg.Aruba.Password, os.Getenv("ARUBA_PASSWORD"))
	setString(&cfg.Aruba.ProfilePrefix, os.Getenv("ARUBA_PROFILE_PREFIX"))
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return nil
}

// Load builds a configuration from defaults, the optional .env file, the
// configuration file (if it exists) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("WIFINATOR_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFlags builds the daemon configuration. Flags override the
// environment, which overrides the configuration file.
func ParseFlags(args []string) (Config, error) {
	var (
		configPath string
		port       int
		host       string
		dbURL      string
		dbType     string
		debug      bool
		interval   time.Duration
	)

	fs := flag.NewFlagSet("wifinatord", flag.ContinueOnError)

	fs.StringVar(&configPath, "c", "", "Configuration file (TOML or YAML)")
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&host, "host", "", "Server host")
	fs.StringVar(&dbURL, "d", "", "Database URL")
	fs.StringVar(&dbType, "t", "", "Database type (sqlite or postgres)")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging")
	fs.DurationVar(&interval, "sync-interval", 0, "Controller synchronization interval")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}

	if port != 0 {
		cfg.Port = port
	}
	setString(&cfg.Host, host)
	setString(&cfg.DatabaseURL, dbURL)
	setString(&cfg.DatabaseType, dbType)
	cfg.Debug = cfg.Debug || debug
	if interval != 0 {
		cfg.SyncInterval = interval
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.Aruba.Address == "" {
		return Config{}, errors.New("controller address required (aruba.address or ARUBA_ADDRESS env)")
	}
	if cfg.Aruba.ProfilePrefix == "" {
		return Config{}, errors.New("profile prefix must not be empty")
	}
	if cfg.SyncInterval <= 0 {
		return Config{}, errors.New("sync interval must be positive")
	}

	return cfg, nil
}

// splitList splits a comma separated value, dropping empty items
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
