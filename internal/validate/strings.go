package validate

import (
	"strings"

	"github.com/thoreinstein/gedcheck/internal/model"
)

// checkCustomTags reports a custom tag collection that was never initialized.
// An empty collection is valid.
func checkCustomTags(ctx *Context, tags *model.CustomTags, subject any, label string) {
	if tags.IsSet() {
		return
	}
	if ctx.AutoRepair {
		*tags = model.CustomTags{}
		ctx.repaired(label+" custom tag collection was null - repaired", subject)
		return
	}
	ctx.Findings.AddError(label+" custom tag collection is null", subject)
}

// checkStringWithCustomTags checks the tag collection of a string that may be
// absent. Absence is the caller's concern.
func checkStringWithCustomTags(ctx *Context, s *model.StringWithCustomTags, label string) {
	if s == nil {
		return
	}
	checkCustomTags(ctx, &s.CustomTags, s, label)
}

// checkOptionalString reports an optional string that is present but blank.
// Repair removes the blank value.
func checkOptionalString(ctx *Context, field **model.StringWithCustomTags, subject any, label string) {
	s := *field
	if s == nil {
		return
	}
	if strings.TrimSpace(s.Value) == "" {
		if ctx.AutoRepair {
			*field = nil
			ctx.repaired(label+" was specified but blank - removed", subject)
			return
		}
		ctx.Findings.AddError(label+" specified but is blank", s)
	}
	checkStringWithCustomTags(ctx, s, label)
}

// checkRequiredString reports a required string that is absent or blank.
// Repair writes def, unless def is empty.
func checkRequiredString(ctx *Context, field **model.StringWithCustomTags, def string, subject any, label string) {
	s := *field
	if s == nil || strings.TrimSpace(s.Value) == "" {
		if ctx.AutoRepair && def != "" {
			if s == nil {
				*field = model.NewStringWithCustomTags(def)
			} else {
				s.Value = def
			}
			ctx.repaired(label+" was not specified - repaired", subject)
		} else {
			ctx.Findings.AddError(label+" not specified", subject)
		}
	}
	checkStringWithCustomTags(ctx, *field, label)
}
