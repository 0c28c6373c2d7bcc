package validate

import (
	"fmt"

	"github.com/thoreinstein/gedcheck/internal/model"
)

// maxLanguagePrefs is the number of language preferences a submitter may list.
const maxLanguagePrefs = 3

func checkSubmitters(ctx *Context, doc *model.Gedcom) {
	if doc.Submitters == nil {
		if ctx.AutoRepair {
			doc.Submitters = make(map[string]*model.Submitter)
			ctx.repaired("Document submitters collection was null - repaired", doc)
			return
		}
		ctx.Findings.AddError("Document submitters collection is null", doc)
		return
	}

	for _, xref := range doc.SubmitterXrefs() {
		s := doc.Submitters[xref]
		if s == nil {
			if ctx.AutoRepair {
				delete(doc.Submitters, xref)
				ctx.repaired(fmt.Sprintf("Document submitter %s was null - removed", xref), doc)
				continue
			}
			ctx.Findings.AddError(fmt.Sprintf("Document submitter %s is null", xref), doc)
			continue
		}
		checkSubmitterKey(ctx, doc, xref, s)
		checkSubmitter(ctx, s)
	}
}

// checkSubmitterKey reports a submitter whose xref differs from the key it is
// registered under. Snapshots write the xref, so the two must agree for the
// document to reload.
func checkSubmitterKey(ctx *Context, doc *model.Gedcom, key string, s *model.Submitter) {
	if s.Xref == key {
		return
	}

	if ctx.AutoRepair {
		switch {
		case key != "":
			old := s.Xref
			s.Xref = key
			if old == "" {
				ctx.repaired(fmt.Sprintf("Submitter xref was not specified - repaired with %s", key), s)
			} else {
				ctx.repaired(fmt.Sprintf("Submitter %s xref did not match its key %s - repaired", old, key), s)
			}
			return
		case doc.Submitters[s.Xref] == nil:
			delete(doc.Submitters, key)
			doc.Submitters[s.Xref] = s
			ctx.repaired(fmt.Sprintf("Submitter %s was registered under an empty key - moved", s.Xref), doc)
			return
		}
	}

	if s.Xref == "" {
		ctx.Findings.AddError("Submitter xref not specified", s)
		return
	}
	ctx.Findings.AddError(fmt.Sprintf("Submitter %s xref does not match its key %s", s.Xref, key), s)
}

func checkSubmitter(ctx *Context, s *model.Submitter) {
	label := "Submitter " + s.Xref
	if s.Xref == "" {
		label = "Submitter"
	}

	checkCustomTags(ctx, &s.CustomTags, s, label)
	checkStringWithCustomTags(ctx, s.Name, label+" name")

	if len(s.LanguagePrefs) > maxLanguagePrefs {
		ctx.Findings.AddError(fmt.Sprintf("%s has more than %d language preferences", label, maxLanguagePrefs), s)
	}
	for i, pref := range s.LanguagePrefs {
		if pref == nil {
			ctx.Findings.AddError(fmt.Sprintf("%s language preference %d is null", label, i+1), s)
			continue
		}
		checkStringWithCustomTags(ctx, pref, fmt.Sprintf("%s language preference %d", label, i+1))
	}

	checkOptionalString(ctx, &s.RegFileNumber, s, label+" registration file number")
}
