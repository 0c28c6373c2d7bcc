package model

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Default GEDCOM version values written into new headers.
const (
	DefaultGedcomVersion = "5.5.1"
	DefaultGedcomForm    = "LINEAGE-LINKED"
)

// Sentinel errors for graph construction.
var (
	// ErrMissingXref indicates a record was added without a cross-reference id.
	ErrMissingXref = errors.New("xref is required")

	// ErrDuplicateXref indicates a record id is already in use.
	ErrDuplicateXref = errors.New("duplicate xref")
)

// Gedcom is the root of a document graph.
type Gedcom struct {
	Header     *Header
	Submitters map[string]*Submitter
	Trailer    *Trailer
}

// NewGedcom returns a document with a default header, an empty submitter
// mapping and a trailer.
func NewGedcom() *Gedcom {
	return &Gedcom{
		Header:     NewHeader(),
		Submitters: make(map[string]*Submitter),
		Trailer:    NewTrailer(),
	}
}

// AddSubmitter registers s under its xref.
func (g *Gedcom) AddSubmitter(s *Submitter) error {
	if s == nil || s.Xref == "" {
		return ErrMissingXref
	}
	if g.Submitters == nil {
		g.Submitters = make(map[string]*Submitter)
	}
	if _, ok := g.Submitters[s.Xref]; ok {
		return errors.Wrapf(ErrDuplicateXref, "submitter %s", s.Xref)
	}
	g.Submitters[s.Xref] = s
	return nil
}

// HasSubmitter reports whether s itself, not merely a submitter with the same
// xref, is registered in the document under any key.
func (g *Gedcom) HasSubmitter(s *Submitter) bool {
	if s == nil || g.Submitters == nil {
		return false
	}
	if g.Submitters[s.Xref] == s {
		return true
	}
	for _, registered := range g.Submitters {
		if registered == s {
			return true
		}
	}
	return false
}

// SubmitterXrefs returns the submitter mapping keys in sorted order.
func (g *Gedcom) SubmitterXrefs() []string {
	keys := make([]string, 0, len(g.Submitters))
	for k := range g.Submitters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Header is the document header record.
type Header struct {
	CharacterSet      *CharacterSet
	CopyrightData     []string
	GedcomVersion     *GedcomVersion
	Submitter         *Submitter
	DestinationSystem *StringWithCustomTags
	FileName          *StringWithCustomTags
	Language          *StringWithCustomTags
	PlaceHierarchy    *StringWithCustomTags
	CustomTags        CustomTags
}

// NewHeader returns a header with the default character set and GEDCOM
// version, an empty copyright collection and no submitter.
func NewHeader() *Header {
	return &Header{
		CharacterSet:  NewCharacterSet(),
		CopyrightData: []string{},
		GedcomVersion: NewGedcomVersion(),
		CustomTags:    CustomTags{},
	}
}

// CharacterSet declares the text encoding of the document.
type CharacterSet struct {
	CharacterSetName *StringWithCustomTags
	VersionNum       *StringWithCustomTags
	CustomTags       CustomTags
}

// NewCharacterSet returns a character set naming DefaultCharacterSetName.
func NewCharacterSet() *CharacterSet {
	return &CharacterSet{
		CharacterSetName: NewStringWithCustomTags(DefaultCharacterSetName),
		CustomTags:       CustomTags{},
	}
}

// GedcomVersion identifies the GEDCOM standard the document follows.
type GedcomVersion struct {
	VersionNumber *StringWithCustomTags
	GedcomForm    *StringWithCustomTags
	CustomTags    CustomTags
}

// NewGedcomVersion returns the default version and form.
func NewGedcomVersion() *GedcomVersion {
	return &GedcomVersion{
		VersionNumber: NewStringWithCustomTags(DefaultGedcomVersion),
		GedcomForm:    NewStringWithCustomTags(DefaultGedcomForm),
		CustomTags:    CustomTags{},
	}
}

// Submitter is a person or organization that contributed the data.
type Submitter struct {
	Xref          string
	Name          *StringWithCustomTags
	LanguagePrefs []*StringWithCustomTags
	RegFileNumber *StringWithCustomTags
	CustomTags    CustomTags
}

// NewSubmitter returns a submitter with the given xref and name.
func NewSubmitter(xref, name string) *Submitter {
	return &Submitter{
		Xref:       xref,
		Name:       NewStringWithCustomTags(name),
		CustomTags: CustomTags{},
	}
}

// Trailer marks the end of the document.
type Trailer struct {
	CustomTags CustomTags
}

// NewTrailer returns an empty trailer.
func NewTrailer() *Trailer {
	return &Trailer{CustomTags: CustomTags{}}
}
