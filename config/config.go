package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// AssetBaseURL is prepended to image and logo references in view models.
	AssetBaseURL string `yaml:"asset_base_url"`
}

// DBConfig database configuration. Type "memory" keeps the sample data in process.
type DBConfig struct {
	Type     string `yaml:"type"` // memory, sqlite, postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development, production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// JobsConfig scheduled job configuration
type JobsConfig struct {
	AuditSpec string `yaml:"audit_spec"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Logger   LogConfig  `yaml:"logger"`
	Jobs     JobsConfig `yaml:"jobs"`
}

// GetLogDir returns the log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the workdir
func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "SmartAgro",
		Location: "Africa/Douala",
		Workdir:  "/var/smartagro",
		Debug:    false,
	},
	Web: WebConfig{
		Host:         "0.0.0.0",
		Port:         1816,
		AssetBaseURL: "/assets/",
	},
	Database: DBConfig{
		Type:     "memory",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "smartagro",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  20,
		IdleConn: 5,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/smartagro/logs/smartagro.log",
	},
	Jobs: JobsConfig{
		AuditSpec: "@every 1h",
	},
}

// LoadConfig reads the YAML file at cfgfile, falling back to the defaults when
// the path is empty or missing, then applies SMARTAGRO_* environment overrides.
func LoadConfig(cfgfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfgfile != "" {
		data, err := os.ReadFile(cfgfile)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", cfgfile)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfgfile)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be repaired with a default.
func (c *AppConfig) Validate() error {
	switch c.Database.Type {
	case "memory", "sqlite", "postgres":
	default:
		return errors.Errorf("unsupported database type %q", c.Database.Type)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return errors.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}

func (c *AppConfig) applyEnvOverrides() {
	setEnvValue("SMARTAGRO_SYSTEM_WORKDIR", &c.System.Workdir)
	setEnvValue("SMARTAGRO_SYSTEM_LOCATION", &c.System.Location)
	setEnvBoolValue("SMARTAGRO_SYSTEM_DEBUG", &c.System.Debug)

	setEnvValue("SMARTAGRO_WEB_HOST", &c.Web.Host)
	setEnvIntValue("SMARTAGRO_WEB_PORT", &c.Web.Port)
	setEnvValue("SMARTAGRO_WEB_ASSET_BASE_URL", &c.Web.AssetBaseURL)

	setEnvValue("SMARTAGRO_DB_TYPE", &c.Database.Type)
	setEnvValue("SMARTAGRO_DB_HOST", &c.Database.Host)
	setEnvIntValue("SMARTAGRO_DB_PORT", &c.Database.Port)
	setEnvValue("SMARTAGRO_DB_NAME", &c.Database.Name)
	setEnvValue("SMARTAGRO_DB_USER", &c.Database.User)
	setEnvValue("SMARTAGRO_DB_PWD", &c.Database.Passwd)
	setEnvBoolValue("SMARTAGRO_DB_DEBUG", &c.Database.Debug)

	setEnvValue("SMARTAGRO_LOGGER_MODE", &c.Logger.Mode)
	setEnvBoolValue("SMARTAGRO_LOGGER_FILE_ENABLE", &c.Logger.FileEnable)

	setEnvValue("SMARTAGRO_JOBS_AUDIT_SPEC", &c.Jobs.AuditSpec)

	c.Database.Type = strings.ToLower(strings.TrimSpace(c.Database.Type))
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}
