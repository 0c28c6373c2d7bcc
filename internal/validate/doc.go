// Package validate certifies a document graph against a fixed rule set and
// optionally repairs the defects it finds.
//
// # Core Concepts
//
//   - [Severity]: ERROR, WARNING and INFO, ordered by importance.
//   - [Finding]: one defect or repair, pointing at the offending object.
//   - [Findings]: the ordered collector for one run.
//   - [Context]: the repair policy and collector shared by every rule.
//   - [Validator]: the orchestrator that runs the ordered [Rule] list.
//
// # Basic Usage
//
//	v := validate.New(doc, validate.WithAutoRepair(false))
//	if err := v.Validate(); err != nil {
//		return err // only for a nil document
//	}
//	if v.Findings().Has(validate.SeverityError, "character set", "not", "supported") {
//		// handle
//	}
//
// Each call to [Validator.Validate] clears the collector before running, so
// validating an unchanged document twice yields the same findings.
//
// # Auto-repair
//
// With auto-repair enabled, rules that have a safe default write it into the
// document and record an INFO finding instead of an ERROR. Defects without a
// safe default are reported as usual. Rules never panic or return errors for
// defects in the document.
package validate
