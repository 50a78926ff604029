package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yral-dev/deeplink/internal/errors"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "deeplink.json"

	// YAMLFileName is the YAML configuration file name.
	YAMLFileName = "deeplink.yaml"

	// DefaultScheme is the scheme of built links.
	DefaultScheme = "yralm"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log handler format.
	DefaultLogFormat = "text"

	// DotEnvFileName is the optional env file read by ApplyEnv.
	DotEnvFileName = ".env"
)

// Environment variables overriding the file.
const (
	EnvScheme   = "DEEPLINK_SCHEME"
	EnvHost     = "DEEPLINK_HOST"
	EnvLogLevel = "DEEPLINK_LOG_LEVEL"
)

// fileNames are searched in order by Load.
var fileNames = []string{JSONFileName, YAMLFileName, "deeplink.yml"}

// Config is the deeplink.json / deeplink.yaml configuration.
type Config struct {
	// Scheme is the scheme of built links.
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`

	// Host is the host of built links. Empty builds hostless links such as
	// "yralm://post/details/1".
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// HostlessSchemes are extra schemes whose authority the parser reads as
	// the first path segment.
	HostlessSchemes []string `json:"hostlessSchemes,omitempty" yaml:"hostlessSchemes,omitempty"`

	// Log configures the CLI logger.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Scheme: DefaultScheme,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Find returns the first configuration file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads configuration from the specified directory.
// It looks for deeplink.json, then deeplink.yaml and deeplink.yml.
func Load(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return nil, errors.New("E201").
			WithDetail("No deeplink.json or deeplink.yaml found in " + dir)
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	unmarshal, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E201").WithDetail(path)
		}
		return nil, errors.New("E202").Wrap(err)
	}

	cfg := &Config{}
	if err := unmarshal(data, cfg); err != nil {
		return nil, errors.New("E202").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Resolve loads the configuration the CLI runs with: the explicit path when
// given, otherwise a configuration file in dir if one exists, otherwise the
// defaults. Environment overrides are applied last.
func Resolve(path, dir string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	default:
		if found, ok := Find(dir); ok {
			cfg, err = LoadFile(found)
		} else {
			cfg = New()
		}
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(filepath.Join(dir, DotEnvFileName)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from DEEPLINK_* variables. Values from the
// process environment win over the env file at dotenvPath, which is optional.
func (c *Config) ApplyEnv(dotenvPath string) error {
	env := map[string]string{}
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			values, err := godotenv.Read(dotenvPath)
			if err != nil {
				return errors.New("E202").WithDetail("Failed to parse " + dotenvPath).Wrap(err)
			}
			env = values
		}
	}
	for _, key := range []string{EnvScheme, EnvHost, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	if v, ok := env[EnvScheme]; ok {
		c.Scheme = strings.TrimSpace(v)
	}
	if v, ok := env[EnvHost]; ok {
		c.Host = strings.TrimSpace(v)
	}
	if v, ok := env[EnvLogLevel]; ok {
		c.Log.Level = strings.TrimSpace(v)
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path in the format its
// extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return errors.New("E205").WithDetail(path)
	}
	if err != nil {
		return errors.New("E202").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E202").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Scheme == "" {
		c.Scheme = DefaultScheme
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validScheme(c.Scheme) {
		return errors.New("E203").WithDetailf("scheme %q", c.Scheme)
	}
	for _, s := range c.HostlessSchemes {
		if !validScheme(s) {
			return errors.New("E203").WithDetailf("hostless scheme %q", s)
		}
	}
	if strings.ContainsAny(c.Host, "/?#") {
		return errors.New("E203").
			WithDetailf("host %q", c.Host).
			WithSuggestion("The host must not contain '/', '?' or '#'")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E204").WithDetailf("level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("E206").WithDetailf("format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel returns the configured log level, or Info when it is invalid.
func (l LogConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(l.Level)
	return level
}

// NewLogger creates a logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// decoderFor returns the unmarshal function for a file extension.
func decoderFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal, nil
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	default:
		return nil, errors.New("E205").WithDetail(path)
	}
}

// parseLevel maps a level name to a slog level.
func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// validScheme reports whether s is an RFC 3986 scheme.
func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
