package validate

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/gedcheck/internal/model"
)

func checkHeader(ctx *Context, doc *model.Gedcom) {
	if doc.Header == nil {
		if !ctx.AutoRepair {
			ctx.Findings.AddError("Document header not specified", doc)
			return
		}
		doc.Header = model.NewHeader()
		ctx.repaired("Document header was not specified - repaired", doc)
	}

	h := doc.Header
	checkCustomTags(ctx, &h.CustomTags, h, "Header")
	checkCharacterSet(ctx, h)
	checkCopyrightData(ctx, h)
	checkGedcomVersion(ctx, h)
	checkOptionalString(ctx, &h.DestinationSystem, h, "Header destination system")
	checkOptionalString(ctx, &h.FileName, h, "Header file name")
	checkOptionalString(ctx, &h.Language, h, "Header language")
	checkOptionalString(ctx, &h.PlaceHierarchy, h, "Header place hierarchy")
	checkHeaderSubmitter(ctx, doc)
}

func checkCharacterSet(ctx *Context, h *model.Header) {
	def := ctx.Defaults.CharacterSetName
	canRepair := ctx.AutoRepair && model.IsSupportedCharacterSetName(def)

	if h.CharacterSet == nil {
		if !canRepair {
			ctx.Findings.AddError("Header character set not specified", h)
			return
		}
		h.CharacterSet = &model.CharacterSet{
			CharacterSetName: model.NewStringWithCustomTags(def),
			CustomTags:       model.CustomTags{},
		}
		ctx.repaired("Header character set was not specified - repaired", h)
	}

	cs := h.CharacterSet
	checkCustomTags(ctx, &cs.CustomTags, cs, "Header character set")

	if cs.CharacterSetName == nil {
		if canRepair {
			cs.CharacterSetName = model.NewStringWithCustomTags(def)
			ctx.repaired("Header character set name was not defined - repaired", cs)
		} else {
			ctx.Findings.AddError("Header character set name is not defined", cs)
		}
	}

	if name := cs.CharacterSetName; name != nil {
		checkStringWithCustomTags(ctx, name, "Header character set name")
		if !model.IsSupportedCharacterSetName(name.Value) {
			ctx.Findings.AddError(fmt.Sprintf(
				"Header character set name %q is not supported; expected one of %s",
				name.Value, strings.Join(model.SupportedCharacterSetNames(), ", "),
			), name)
		}
	}

	checkOptionalString(ctx, &cs.VersionNum, cs, "Header character set version")
}

func checkCopyrightData(ctx *Context, h *model.Header) {
	if h.CopyrightData != nil {
		return
	}
	if ctx.AutoRepair {
		h.CopyrightData = []string{}
		ctx.repaired("Header copyright data collection was null - repaired", h)
		return
	}
	ctx.Findings.AddError("Header copyright data collection is null; it must be at least an empty collection", h)
}

func checkGedcomVersion(ctx *Context, h *model.Header) {
	d := ctx.Defaults
	if h.GedcomVersion == nil {
		if !ctx.AutoRepair || d.GedcomVersion == "" || d.GedcomForm == "" {
			ctx.Findings.AddError("Header gedcom version not specified", h)
			return
		}
		h.GedcomVersion = &model.GedcomVersion{
			VersionNumber: model.NewStringWithCustomTags(d.GedcomVersion),
			GedcomForm:    model.NewStringWithCustomTags(d.GedcomForm),
			CustomTags:    model.CustomTags{},
		}
		ctx.repaired("Header gedcom version was not specified - repaired", h)
	}

	v := h.GedcomVersion
	checkCustomTags(ctx, &v.CustomTags, v, "Header gedcom version")
	checkRequiredString(ctx, &v.VersionNumber, d.GedcomVersion, v, "Header gedcom version number")
	checkRequiredString(ctx, &v.GedcomForm, d.GedcomForm, v, "Header gedcom form")
}

// checkHeaderSubmitter checks the header's submitter reference against the
// document's submitter mapping. With no submitters at all, only that is
// reported. A null mapping belongs to the submitters pass, unless repair is
// about to leave it empty.
func checkHeaderSubmitter(ctx *Context, doc *model.Gedcom) {
	h := doc.Header

	if len(doc.Submitters) == 0 {
		if !ctx.AutoRepair || h.Submitter == nil || h.Submitter.Xref == "" {
			if doc.Submitters != nil || ctx.AutoRepair {
				ctx.Findings.AddError("Document submitter not specified; at least one submitter record is required", doc)
			}
			return
		}
		// The header names a submitter the document never registered.
		_ = doc.AddSubmitter(h.Submitter)
		ctx.repaired(fmt.Sprintf("Header submitter %s was missing from the document submitters - registered", h.Submitter.Xref), doc)
		return
	}

	if h.Submitter == nil {
		first := firstSubmitter(doc)
		if !ctx.AutoRepair || first == nil {
			ctx.Findings.AddError("Header submitter not specified", h)
			return
		}
		h.Submitter = first
		ctx.repaired(fmt.Sprintf("Header submitter was not specified - repaired with %s", first.Xref), h)
		return
	}

	if doc.HasSubmitter(h.Submitter) {
		return
	}
	xref := h.Submitter.Xref
	if ctx.AutoRepair && xref != "" && doc.Submitters[xref] == nil {
		doc.Submitters[xref] = h.Submitter
		ctx.repaired(fmt.Sprintf("Header submitter %s was missing from the document submitters - registered", xref), doc)
		return
	}
	ctx.Findings.AddError(fmt.Sprintf("Header submitter %s not found in the document submitters", xref), h.Submitter)
}

// firstSubmitter returns the non-nil submitter with the lowest xref.
func firstSubmitter(doc *model.Gedcom) *model.Submitter {
	for _, xref := range doc.SubmitterXrefs() {
		if s := doc.Submitters[xref]; s != nil {
			return s
		}
	}
	return nil
}
