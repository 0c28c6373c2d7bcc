package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/gedcheck/internal/model"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version other than CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidValue indicates a field holds a value outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Mark(errors.Newf("unsupported config version: %d", cfg.Version), ErrUnsupportedVersion))
	}

	if _, err := cfg.Threshold(); err != nil {
		errs = append(errs, &FieldError{Field: "min_severity", Value: cfg.MinSeverity, Err: ErrInvalidValue})
	}

	if _, err := cfg.ReportFormat(); err != nil {
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: ErrInvalidValue})
	}

	// An empty repair value disables that repair; anything else must be
	// something the header rule accepts.
	if name := cfg.Repair.CharacterSetName; name != "" && !model.IsSupportedCharacterSetName(name) {
		errs = append(errs, &FieldError{
			Field: "repair.character_set_name",
			Value: name,
			Err:   errors.Wrapf(ErrInvalidValue, "expected one of %s", strings.Join(model.SupportedCharacterSetNames(), ", ")),
		})
	}

	if v := cfg.Repair.GedcomVersion; v != "" && strings.TrimSpace(v) == "" {
		errs = append(errs, &FieldError{Field: "repair.gedcom_version", Value: v, Err: ErrInvalidValue})
	}

	if v := cfg.Repair.GedcomForm; v != "" && strings.TrimSpace(v) == "" {
		errs = append(errs, &FieldError{Field: "repair.gedcom_form", Value: v, Err: ErrInvalidValue})
	}

	if cfg.Backup.Retention < 1 {
		errs = append(errs, &FieldError{Field: "backup.retention", Value: strconv.Itoa(cfg.Backup.Retention), Err: ErrInvalidValue})
	}

	return errs
}

// FieldError reports an invalid value for a config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
