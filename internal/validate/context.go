package validate

import (
	"log/slog"

	"github.com/thoreinstein/gedcheck/internal/model"
)

// RepairDefaults holds the values auto-repair writes into a document. An empty
// value means no safe default exists and the defect is reported instead.
type RepairDefaults struct {
	CharacterSetName string
	GedcomVersion    string
	GedcomForm       string
}

// DefaultRepairDefaults returns the values used when none are configured.
func DefaultRepairDefaults() RepairDefaults {
	return RepairDefaults{
		CharacterSetName: model.DefaultCharacterSetName,
		GedcomVersion:    model.DefaultGedcomVersion,
		GedcomForm:       model.DefaultGedcomForm,
	}
}

// Context is shared by every rule in one run.
type Context struct {
	// AutoRepair allows rules to write safe defaults into the document.
	AutoRepair bool
	// Findings collects the results of the run.
	Findings *Findings
	// Defaults are the values written by repairs.
	Defaults RepairDefaults
	// Logger receives debug traces and repair notices.
	Logger *slog.Logger
}

// repaired records a repair the rule has already applied.
func (c *Context) repaired(message string, subject any) {
	c.Findings.AddInfo(message, subject)
	c.logger().Info("repaired", "finding", message)
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
