// Package config provides configuration management for gedcheck using Viper.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/gedcheck/internal/backup"
	gerrors "github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/model"
	"github.com/thoreinstein/gedcheck/internal/paths"
	"github.com/thoreinstein/gedcheck/internal/validate"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes every environment override, e.g. GEDCHECK_AUTOREPAIR.
const EnvPrefix = "GEDCHECK"

// ConfigDirEnv, when set, replaces the XDG config directory in the search path.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// CurrentVersion is the only config file version understood.
const CurrentVersion = 1

// Config represents the top-level configuration structure.
type Config struct {
	Version     int          `mapstructure:"version" yaml:"version"`
	AutoRepair  bool         `mapstructure:"autorepair" yaml:"autorepair"`
	MinSeverity string       `mapstructure:"min_severity" yaml:"min_severity"`
	Format      string       `mapstructure:"format" yaml:"format"`
	Repair      RepairConfig `mapstructure:"repair" yaml:"repair"`
	Backup      BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// RepairConfig holds the values written by auto-repair. An empty value
// disables the repairs that would write it.
type RepairConfig struct {
	CharacterSetName string `mapstructure:"character_set_name" yaml:"character_set_name"`
	GedcomVersion    string `mapstructure:"gedcom_version" yaml:"gedcom_version"`
	GedcomForm       string `mapstructure:"gedcom_form" yaml:"gedcom_form"`
}

// BackupConfig controls the copies taken before repair overwrites a document.
// An empty Dir means the XDG state directory.
type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
	Dir       string `mapstructure:"dir" yaml:"dir"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		AutoRepair:  false,
		MinSeverity: validate.SeverityInfo.String(),
		Format:      string(validate.FormatText),
		Repair: RepairConfig{
			CharacterSetName: model.DefaultCharacterSetName,
			GedcomVersion:    model.DefaultGedcomVersion,
			GedcomForm:       model.DefaultGedcomForm,
		},
		Backup: BackupConfig{
			Enabled:   true,
			Retention: backup.DefaultRetentionCount,
		},
	}
}

// Init resets Viper and registers search paths, environment binding and
// defaults. Call it once at startup before Load.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	// Environment variable support; nested keys use underscores.
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("autorepair", d.AutoRepair)
	viper.SetDefault("min_severity", d.MinSeverity)
	viper.SetDefault("format", d.Format)
	viper.SetDefault("repair.character_set_name", d.Repair.CharacterSetName)
	viper.SetDefault("repair.gedcom_version", d.Repair.GedcomVersion)
	viper.SetDefault("repair.gedcom_form", d.Repair.GedcomForm)
	viper.SetDefault("backup.enabled", d.Backup.Enabled)
	viper.SetDefault("backup.retention", d.Backup.Retention)
	viper.SetDefault("backup.dir", d.Backup.Dir)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
// The result is validated; every problem found is reported.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file uses defaults.
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), gerrors.ErrNotFound)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errors.Join(errs...), "validating config"), gerrors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when defaults were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// Threshold returns the parsed MinSeverity.
func (c *Config) Threshold() (validate.Severity, error) {
	return validate.ParseSeverity(c.MinSeverity)
}

// ReportFormat returns the parsed Format.
func (c *Config) ReportFormat() (validate.Format, error) {
	return validate.ParseFormat(c.Format)
}

// RepairDefaults returns the repair values for the validator.
func (c *Config) RepairDefaults() validate.RepairDefaults {
	return validate.RepairDefaults{
		CharacterSetName: c.Repair.CharacterSetName,
		GedcomVersion:    c.Repair.GedcomVersion,
		GedcomForm:       c.Repair.GedcomForm,
	}
}

// BackupManager returns a backup manager for the configured directory and
// retention.
func (c *Config) BackupManager(version string) *backup.Manager {
	opts := []backup.Option{
		backup.WithRetentionCount(c.Backup.Retention),
		backup.WithVersion(version),
	}
	if c.Backup.Dir != "" {
		opts = append(opts, backup.WithBackupDir(c.Backup.Dir))
	}
	return backup.NewManager(opts...)
}
