/*
Package config loads portfolio-mcp settings through viper.

Values come, in increasing precedence, from defaults, the config file,
PORTFOLIO_MCP_* environment variables and command-line flags bound by the
CLI. The config file is portfolio-mcp.yaml, searched in the working
directory and then in $XDG_CONFIG_HOME/portfolio-mcp.

Schema:

	data:
	  projects: ./projects.json   # empty: embedded dataset
	  blogs: ./posts/             # file or directory of Markdown posts
	http:
	  addr: ":8080"
	history:
	  enabled: false
	  path: ~/.local/share/portfolio-mcp/history.db
	  retention: 720h
	log:
	  level: info
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/khanglvm/portfolio-mcp/internal/logging"
)

// AppName names the config file, env prefix and XDG directories.
const AppName = "portfolio-mcp"

// Config keys.
const (
	KeyProjects         = "data.projects"
	KeyBlogs            = "data.blogs"
	KeyHTTPAddr         = "http.addr"
	KeyHistoryEnabled   = "history.enabled"
	KeyHistoryPath      = "history.path"
	KeyHistoryRetention = "history.retention"
	KeyLogLevel         = "log.level"
)

// Defaults.
const (
	DefaultHTTPAddr         = ":8080"
	DefaultHistoryRetention = 30 * 24 * time.Hour
	DefaultLogLevel         = "info"
)

// Config represents the resolved configuration.
type Config struct {
	Data    DataConfig
	HTTP    HTTPConfig
	History HistoryConfig
	Log     LogConfig
}

// DataConfig names the dataset sources. Empty paths select the embedded data.
type DataConfig struct {
	Projects string
	Blogs    string
}

// HTTPConfig configures the HTTP boundary.
type HTTPConfig struct {
	Addr string
}

// HistoryConfig configures the optional call history database.
type HistoryConfig struct {
	Enabled   bool
	Path      string
	Retention time.Duration
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// DefaultHistoryPath returns $XDG_DATA_HOME/portfolio-mcp/history.db.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, AppName, "history.db")
}

// ConfigDir returns $XDG_CONFIG_HOME/portfolio-mcp.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyProjects, "")
	v.SetDefault(KeyBlogs, "")
	v.SetDefault(KeyHTTPAddr, DefaultHTTPAddr)
	v.SetDefault(KeyHistoryEnabled, false)
	v.SetDefault(KeyHistoryPath, DefaultHistoryPath())
	v.SetDefault(KeyHistoryRetention, DefaultHistoryRetention)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// Init prepares v: defaults, environment binding and the config file.
// file names an explicit config file; when empty the search path is used
// and a missing file is not an error. It returns the file used, if any.
func Init(v *viper.Viper, file string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(AppName), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			return "", &ConfigNotFoundError{
				Path: file,
				Hint: "Check the --config path, or omit it to search ./" + AppName + ".yaml and " + ConfigDir(),
			}
		}
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			return "", nil
		case errors.Is(err, fs.ErrPermission):
			return "", &PermissionError{
				Path: v.ConfigFileUsed(),
				Op:   "read",
				Fix:  "chmod 644 " + v.ConfigFileUsed(),
			}
		default:
			return "", &InvalidConfigError{
				Path:    v.ConfigFileUsed(),
				Message: err.Error(),
				Hint:    "The config file must be valid YAML",
			}
		}
	}
	return v.ConfigFileUsed(), nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Data: DataConfig{
			Projects: strings.TrimSpace(v.GetString(KeyProjects)),
			Blogs:    strings.TrimSpace(v.GetString(KeyBlogs)),
		},
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(v.GetString(KeyHTTPAddr)),
		},
		History: HistoryConfig{
			Enabled:   v.GetBool(KeyHistoryEnabled),
			Path:      strings.TrimSpace(v.GetString(KeyHistoryPath)),
			Retention: v.GetDuration(KeyHistoryRetention),
		},
		Log: LogConfig{
			Level: strings.TrimSpace(v.GetString(KeyLogLevel)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values. The returned error is an *InvalidConfigError.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfigError{
			Path:    KeyLogLevel,
			Message: err.Error(),
			Hint:    "Use one of: debug, info, warn, error",
		}
	}

	if c.HTTP.Addr == "" {
		return &InvalidConfigError{
			Path:    KeyHTTPAddr,
			Message: "address is empty",
			Hint:    fmt.Sprintf("Use host:port, for example %q", DefaultHTTPAddr),
		}
	}
	if _, _, err := net.SplitHostPort(c.HTTP.Addr); err != nil {
		return &InvalidConfigError{
			Path:    KeyHTTPAddr,
			Message: err.Error(),
			Hint:    fmt.Sprintf("Use host:port, for example %q", DefaultHTTPAddr),
		}
	}

	if c.History.Retention <= 0 {
		return &InvalidConfigError{
			Path:    KeyHistoryRetention,
			Message: fmt.Sprintf("retention must be positive, got %s", c.History.Retention),
			Hint:    "Use a Go duration such as 720h",
		}
	}
	if c.History.Enabled && c.History.Path == "" {
		return &InvalidConfigError{
			Path:    KeyHistoryPath,
			Message: "history is enabled but no database path is set",
			Hint:    "Set history.path or unset history.enabled",
		}
	}

	return nil
}

// HistoryPath returns the database path, or "" when history is disabled.
func (c *Config) HistoryPath() string {
	if !c.History.Enabled {
		return ""
	}
	return c.History.Path
}
