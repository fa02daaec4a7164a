package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/vango-dev/eventconnect/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "eventconnect.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "EVENTCONNECT"

	// DefaultLocale is the default message language.
	DefaultLocale = "en"

	// DefaultPostDialog is the default create-post dialog variant.
	DefaultPostDialog = "hashtags"

	// DefaultMaxImageBytes is the default upload limit (10MB).
	DefaultMaxImageBytes = 10 * 1024 * 1024

	// DefaultCountdownInterval is the default countdown refresh period.
	DefaultCountdownInterval = "1m"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultNarrowWidth is the default narrow layout breakpoint.
	DefaultNarrowWidth = 1024
)

var validate = validator.New()

// Config represents the complete eventconnect.json configuration.
type Config struct {
	// Locale selects the message language.
	Locale string `json:"locale,omitempty" validate:"required,oneof=en es"`

	// User is the signed-in user stamped on new posts.
	User UserConfig `json:"user"`

	// PostDialog selects the create-post dialog variant.
	PostDialog string `json:"postDialog,omitempty" validate:"required,oneof=hashtags create-event"`

	// Upload contains image upload limits.
	Upload UploadConfig `json:"upload"`

	// Countdown contains the feed countdown settings.
	Countdown CountdownConfig `json:"countdown"`

	// Log contains logging settings.
	Log LogConfig `json:"log"`

	// Metrics contains the debug metrics server settings.
	Metrics MetricsConfig `json:"metrics"`

	// Layout contains responsive layout settings.
	Layout LayoutConfig `json:"layout"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// UserConfig identifies the signed-in user.
type UserConfig struct {
	ID       string `json:"id,omitempty" validate:"required"`
	Name     string `json:"name,omitempty" validate:"required"`
	Initials string `json:"initials,omitempty" validate:"required,max=3"`
}

// UploadConfig contains image upload limits.
type UploadConfig struct {
	// MaxImageBytes is the largest accepted image.
	MaxImageBytes int64 `json:"maxImageBytes,omitempty" validate:"gt=0"`

	// AllowedTypes lists accepted MIME types. Empty means the decoder
	// defaults.
	AllowedTypes []string `json:"allowedTypes,omitempty" validate:"dive,required,startswith=image/"`
}

// CountdownConfig contains the feed countdown settings.
type CountdownConfig struct {
	// Interval is a Go duration string ("1m", "30s").
	Interval string `json:"interval,omitempty" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `json:"level,omitempty" validate:"required,oneof=debug info warn error"`
}

// MetricsConfig contains the debug metrics server settings.
type MetricsConfig struct {
	// Addr is the listen address. Empty disables the server.
	Addr string `json:"addr,omitempty" validate:"omitempty,hostname_port"`
}

// LayoutConfig contains responsive layout settings.
type LayoutConfig struct {
	// NarrowWidth is the viewport width under which list/detail screens
	// show one pane at a time.
	NarrowWidth int `json:"narrowWidth,omitempty" validate:"gt=0"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E104").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'eventconnect config init' to create one")
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Resolve finds eventconnect.json from startDir upwards, falling back to
// defaults when there is none, then applies the .env file and environment
// overrides and validates the result.
func Resolve(startDir string) (*Config, error) {
	cfg := New()
	if root, err := FindProjectRoot(startDir); err == nil {
		if cfg, err = Load(root); err != nil {
			return nil, err
		}
	}

	envFile := ".env"
	if dir := cfg.Dir(); dir != "" {
		envFile = filepath.Join(dir, ".env")
	}
	// A missing .env file is not an error.
	_ = godotenv.Load(envFile)

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E100").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E100").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.User.ID == "" {
		c.User.ID = "1"
	}
	if c.User.Name == "" {
		c.User.Name = "John Doe"
	}
	if c.User.Initials == "" {
		c.User.Initials = initials(c.User.Name)
	}
	if c.PostDialog == "" {
		c.PostDialog = DefaultPostDialog
	}
	if c.Upload.MaxImageBytes == 0 {
		c.Upload.MaxImageBytes = DefaultMaxImageBytes
	}
	if c.Countdown.Interval == "" {
		c.Countdown.Interval = DefaultCountdownInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Layout.NarrowWidth == 0 {
		c.Layout.NarrowWidth = DefaultNarrowWidth
	}
}

// envOverrides mirrors the overridable fields. Zero values mean "not set".
type envOverrides struct {
	Locale            string `envconfig:"LOCALE"`
	UserID            string `envconfig:"USER_ID"`
	UserName          string `envconfig:"USER_NAME"`
	UserInitials      string `envconfig:"USER_INITIALS"`
	PostDialog        string `envconfig:"POST_DIALOG"`
	MaxImageBytes     int64  `envconfig:"UPLOAD_MAX_IMAGE_BYTES"`
	CountdownInterval string `envconfig:"COUNTDOWN_INTERVAL"`
	LogLevel          string `envconfig:"LOG_LEVEL"`
	MetricsAddr       string `envconfig:"METRICS_ADDR"`
	NarrowWidth       int    `envconfig:"NARROW_WIDTH"`
}

// ApplyEnv overrides fields from EVENTCONNECT_* environment variables.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return errors.New("E102").Wrap(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Locale, env.Locale)
	set(&c.User.ID, env.UserID)
	set(&c.User.Name, env.UserName)
	set(&c.User.Initials, env.UserInitials)
	set(&c.PostDialog, env.PostDialog)
	set(&c.Countdown.Interval, env.CountdownInterval)
	set(&c.Log.Level, env.LogLevel)
	set(&c.Metrics.Addr, env.MetricsAddr)
	if env.MaxImageBytes != 0 {
		c.Upload.MaxImageBytes = env.MaxImageBytes
	}
	if env.NarrowWidth != 0 {
		c.Layout.NarrowWidth = env.NarrowWidth
	}
	if env.UserName != "" && env.UserInitials == "" {
		c.User.Initials = initials(env.UserName)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.New("E103").
			WithDetail(err.Error()).
			WithSuggestion("Fix the listed fields in " + ConfigFileName + " or the EVENTCONNECT_* environment")
	}
	if d, err := time.ParseDuration(c.Countdown.Interval); err != nil || d <= 0 {
		return errors.New("E103").
			WithDetailf("countdown.interval %q is not a positive duration", c.Countdown.Interval).
			WithSuggestion(`Use a Go duration such as "1m" or "30s"`)
	}
	return nil
}

// CountdownInterval returns the parsed countdown interval, falling back to
// one minute.
func (c *Config) CountdownInterval() time.Duration {
	d, err := time.ParseDuration(c.Countdown.Interval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// MetricsEnabled reports whether the debug metrics server should run.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Addr != ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing eventconnect.json, or an error if not
// found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E104").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'eventconnect config init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir resolves configuration from the current working
// directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Resolve(wd)
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[:1])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
