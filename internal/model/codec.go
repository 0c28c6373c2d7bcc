package model

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// The YAML and JSON forms keep the absent/empty distinction of custom tag
// collections: an omitted custom_tags key decodes to an empty collection, an
// explicit null decodes to an unset one. Encoding mirrors this, omitting empty
// collections and writing null for unset ones.

// tagsField is the wire form of a CustomTags field. It is a slice so that an
// explicit null zeroes it in both codecs.
type tagsField []*StringTree

func newTagsField() tagsField {
	return tagsField{}
}

// IsZero lets omitempty/omitzero drop an empty, initialized collection.
func (f tagsField) IsZero() bool {
	return f != nil && len(f) == 0
}

// MarshalYAML writes null for an unset collection; yaml.v3 would otherwise
// write an empty sequence.
func (f tagsField) MarshalYAML() (any, error) {
	if f == nil {
		return nil, nil
	}
	return []*StringTree(f), nil
}

type stringDoc struct {
	Value      string    `yaml:"value" json:"value"`
	CustomTags tagsField `yaml:"custom_tags,omitempty" json:"custom_tags,omitzero"`
}

// plain reports whether s can be written as a bare scalar.
func (s StringWithCustomTags) plain() bool {
	return s.CustomTags != nil && len(s.CustomTags) == 0
}

// MarshalYAML writes a bare scalar when there are no custom tags.
func (s StringWithCustomTags) MarshalYAML() (any, error) {
	if s.plain() {
		return s.Value, nil
	}
	return stringDoc{Value: s.Value, CustomTags: tagsField(s.CustomTags)}, nil
}

// UnmarshalYAML accepts either a bare scalar or a value/custom_tags mapping.
func (s *StringWithCustomTags) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		s.Value = n.Value
		s.CustomTags = CustomTags{}
		return nil
	}
	doc := stringDoc{CustomTags: newTagsField()}
	if err := n.Decode(&doc); err != nil {
		return err
	}
	s.Value = doc.Value
	s.CustomTags = CustomTags(doc.CustomTags)
	return nil
}

// MarshalJSON writes a bare string when there are no custom tags.
func (s StringWithCustomTags) MarshalJSON() ([]byte, error) {
	if s.plain() {
		return json.Marshal(s.Value)
	}
	return json.Marshal(stringDoc{Value: s.Value, CustomTags: tagsField(s.CustomTags)})
}

// UnmarshalJSON accepts either a bare string or a value/custom_tags object.
func (s *StringWithCustomTags) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		s.Value = v
		s.CustomTags = CustomTags{}
		return nil
	}
	doc := stringDoc{CustomTags: newTagsField()}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	s.Value = doc.Value
	s.CustomTags = CustomTags(doc.CustomTags)
	return nil
}

type characterSetDoc struct {
	Name       *StringWithCustomTags `yaml:"name,omitempty" json:"name,omitempty"`
	Version    *StringWithCustomTags `yaml:"version,omitempty" json:"version,omitempty"`
	CustomTags tagsField             `yaml:"custom_tags,omitempty" json:"custom_tags,omitzero"`
}

func (c CharacterSet) doc() characterSetDoc {
	return characterSetDoc{Name: c.CharacterSetName, Version: c.VersionNum, CustomTags: tagsField(c.CustomTags)}
}

func (c *CharacterSet) set(d characterSetDoc) {
	c.CharacterSetName = d.Name
	c.VersionNum = d.Version
	c.CustomTags = CustomTags(d.CustomTags)
}

func (c CharacterSet) MarshalYAML() (any, error) { return c.doc(), nil }

func (c *CharacterSet) UnmarshalYAML(n *yaml.Node) error {
	d := characterSetDoc{CustomTags: newTagsField()}
	if err := n.Decode(&d); err != nil {
		return err
	}
	c.set(d)
	return nil
}

func (c CharacterSet) MarshalJSON() ([]byte, error) { return json.Marshal(c.doc()) }

func (c *CharacterSet) UnmarshalJSON(data []byte) error {
	d := characterSetDoc{CustomTags: newTagsField()}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	c.set(d)
	return nil
}

type gedcomVersionDoc struct {
	VersionNumber *StringWithCustomTags `yaml:"version_number,omitempty" json:"version_number,omitempty"`
	GedcomForm    *StringWithCustomTags `yaml:"form,omitempty" json:"form,omitempty"`
	CustomTags    tagsField             `yaml:"custom_tags,omitempty" json:"custom_tags,omitzero"`
}

func (v GedcomVersion) doc() gedcomVersionDoc {
	return gedcomVersionDoc{VersionNumber: v.VersionNumber, GedcomForm: v.GedcomForm, CustomTags: tagsField(v.CustomTags)}
}

func (v *GedcomVersion) set(d gedcomVersionDoc) {
	v.VersionNumber = d.VersionNumber
	v.GedcomForm = d.GedcomForm
	v.CustomTags = CustomTags(d.CustomTags)
}

func (v GedcomVersion) MarshalYAML() (any, error) { return v.doc(), nil }

func (v *GedcomVersion) UnmarshalYAML(n *yaml.Node) error {
	d := gedcomVersionDoc{CustomTags: newTagsField()}
	if err := n.Decode(&d); err != nil {
		return err
	}
	v.set(d)
	return nil
}

func (v GedcomVersion) MarshalJSON() ([]byte, error) { return json.Marshal(v.doc()) }

func (v *GedcomVersion) UnmarshalJSON(data []byte) error {
	d := gedcomVersionDoc{CustomTags: newTagsField()}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	v.set(d)
	return nil
}

type submitterDoc struct {
	Xref          string                  `yaml:"xref" json:"xref"`
	Name          *StringWithCustomTags   `yaml:"name,omitempty" json:"name,omitempty"`
	LanguagePrefs []*StringWithCustomTags `yaml:"language_prefs,omitempty" json:"language_prefs,omitempty"`
	RegFileNumber *StringWithCustomTags   `yaml:"reg_file_number,omitempty" json:"reg_file_number,omitempty"`
	CustomTags    tagsField               `yaml:"custom_tags,omitempty" json:"custom_tags,omitzero"`
}

func (s Submitter) doc() submitterDoc {
	return submitterDoc{
		Xref:          s.Xref,
		Name:          s.Name,
		LanguagePrefs: s.LanguagePrefs,
		RegFileNumber: s.RegFileNumber,
		CustomTags:    tagsField(s.CustomTags),
	}
}

func (s *Submitter) set(d submitterDoc) {
	s.Xref = d.Xref
	s.Name = d.Name
	s.LanguagePrefs = d.LanguagePrefs
	s.RegFileNumber = d.RegFileNumber
	s.CustomTags = CustomTags(d.CustomTags)
}

func (s Submitter) MarshalYAML() (any, error) { return s.doc(), nil }

func (s *Submitter) UnmarshalYAML(n *yaml.Node) error {
	d := submitterDoc{CustomTags: newTagsField()}
	if err := n.Decode(&d); err != nil {
		return err
	}
	s.set(d)
	return nil
}

func (s Submitter) MarshalJSON() ([]byte, error) { return json.Marshal(s.doc()) }

func (s *Submitter) UnmarshalJSON(data []byte) error {
	d := submitterDoc{CustomTags: newTagsField()}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	s.set(d)
	return nil
}

type trailerDoc struct {
	CustomTags tagsField `yaml:"custom_tags,omitempty" json:"custom_tags,omitzero"`
}

func (t Trailer) MarshalYAML() (any, error) {
	return trailerDoc{CustomTags: tagsField(t.CustomTags)}, nil
}

func (t *Trailer) UnmarshalYAML(n *yaml.Node) error {
	d := trailerDoc{CustomTags: newTagsField()}
	if err := n.Decode(&d); err != nil {
		return err
	}
	t.CustomTags = CustomTags(d.CustomTags)
	return nil
}

func (t Trailer) MarshalJSON() ([]byte, error) {
	return json.Marshal(trailerDoc{CustomTags: tagsField(t.CustomTags)})
}

func (t *Trailer) UnmarshalJSON(data []byte) error {
	d := trailerDoc{CustomTags: newTagsField()}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	t.CustomTags = CustomTags(d.CustomTags)
	return nil
}
