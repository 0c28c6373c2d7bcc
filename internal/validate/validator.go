package validate

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/gedcheck/internal/model"
)

// ErrNilDocument is returned by Validate when there is no document to check.
var ErrNilDocument = errors.New("document is nil")

// Rule is a named check run against the whole document.
type Rule struct {
	Name  string
	Check func(ctx *Context, doc *model.Gedcom)
}

// DefaultRules returns the built-in rules in the order they run. Each rule is
// an independent pass, so a short-circuit inside one never skips another.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "header", Check: checkHeader},
		{Name: "submitters", Check: checkSubmitters},
		{Name: "trailer", Check: checkTrailer},
	}
}

// Option configures a Validator.
type Option func(*Validator)

// WithAutoRepair enables or disables in-place repair.
func WithAutoRepair(autoRepair bool) Option {
	return func(v *Validator) {
		v.autoRepair = autoRepair
	}
}

// WithThreshold sets the minimum severity that makes Findings.IsEmpty false.
func WithThreshold(s Severity) Option {
	return func(v *Validator) {
		v.findings.SetThreshold(s)
	}
}

// WithRepairDefaults overrides the values written by repairs.
func WithRepairDefaults(d RepairDefaults) Option {
	return func(v *Validator) {
		v.defaults = d
	}
}

// WithLogger sets the logger used for rule tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithRules replaces the rule list.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.rules = rules
	}
}

// Validator runs the rule list against a borrowed document. It is not safe for
// concurrent use, and callers must not mutate the document during Validate.
type Validator struct {
	doc        *model.Gedcom
	autoRepair bool
	defaults   RepairDefaults
	logger     *slog.Logger
	rules      []Rule
	findings   *Findings
}

// New creates a Validator for doc with the given options.
func New(doc *model.Gedcom, opts ...Option) *Validator {
	v := &Validator{
		doc:      doc,
		defaults: DefaultRepairDefaults(),
		logger:   slog.New(slog.DiscardHandler),
		rules:    DefaultRules(),
		findings: NewFindings(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Document returns the document being validated.
func (v *Validator) Document() *model.Gedcom {
	return v.doc
}

// SetDocument replaces the document checked by the next run.
func (v *Validator) SetDocument(doc *model.Gedcom) {
	v.doc = doc
}

// AutoRepair reports whether repairs are enabled.
func (v *Validator) AutoRepair() bool {
	return v.autoRepair
}

// SetAutoRepair enables or disables repairs for the next run.
func (v *Validator) SetAutoRepair(autoRepair bool) {
	v.autoRepair = autoRepair
}

// Findings returns the collector filled by the most recent run.
func (v *Validator) Findings() *Findings {
	return v.findings
}

// Validate clears the findings and runs every rule in order. The only error
// it returns is ErrNilDocument; defects in the document are findings.
func (v *Validator) Validate() error {
	v.findings.Clear()
	if v.doc == nil {
		return ErrNilDocument
	}

	ctx := &Context{
		AutoRepair: v.autoRepair,
		Findings:   v.findings,
		Defaults:   v.defaults,
		Logger:     v.logger,
	}
	for _, rule := range v.rules {
		before := v.findings.Len()
		rule.Check(ctx, v.doc)
		v.logger.Debug("rule complete",
			"rule", rule.Name,
			"findings", v.findings.Len()-before,
		)
	}

	v.logger.Debug("validation complete",
		"findings", v.findings.Len(),
		"errors", v.findings.Count(SeverityError),
		"autorepair", v.autoRepair,
	)
	return nil
}
