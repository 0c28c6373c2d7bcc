// Package config provides configuration management for the gedcheck CLI.
//
// # Configuration File
//
// config.yaml is searched for in the current directory, then in
// $XDG_CONFIG_HOME/gedcheck (or $GEDCHECK_CONFIG_DIR when set):
//
//	version: 1
//	autorepair: false
//	min_severity: info      # info, warning or error
//	format: text            # text or json
//	repair:
//	  character_set_name: ANSEL
//	  gedcom_version: 5.5.1
//	  gedcom_form: LINEAGE-LINKED
//
// Every key can be overridden from the environment with the GEDCHECK_ prefix,
// nested keys joined by underscores, e.g. GEDCHECK_REPAIR_CHARACTER_SET_NAME.
//
// An empty repair value disables the repair that would write it; the defect
// is then reported as an error even with autorepair enabled.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("") // search path, defaults when absent
//	if err != nil {
//	    return err
//	}
//
// [Load] validates the result and reports every invalid key at once; the
// error matches errors.ErrInvalidConfig from the internal errors package.
package config
