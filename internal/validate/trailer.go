package validate

import "github.com/thoreinstein/gedcheck/internal/model"

func checkTrailer(ctx *Context, doc *model.Gedcom) {
	if doc.Trailer == nil {
		if ctx.AutoRepair {
			doc.Trailer = model.NewTrailer()
			ctx.repaired("Document trailer was not specified - repaired", doc)
			return
		}
		ctx.Findings.AddError("Document trailer not specified", doc)
		return
	}
	checkCustomTags(ctx, &doc.Trailer.CustomTags, doc.Trailer, "Document trailer")
}
