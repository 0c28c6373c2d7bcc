package model

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// In the document form, submitters are a list ordered by xref and the header
// names its submitter by xref. A header xref with no matching record decodes
// to a detached submitter so validation can report it.

type headerDoc struct {
	CharacterSet      *CharacterSet         `yaml:"character_set,omitempty" json:"character_set,omitempty"`
	CopyrightData     *[]string             `yaml:"copyright_data,omitempty" json:"copyright_data,omitempty"`
	GedcomVersion     *GedcomVersion        `yaml:"gedcom_version,omitempty" json:"gedcom_version,omitempty"`
	Submitter         string                `yaml:"submitter,omitempty" json:"submitter,omitempty"`
	DestinationSystem *StringWithCustomTags `yaml:"destination_system,omitempty" json:"destination_system,omitempty"`
	FileName          *StringWithCustomTags `yaml:"file_name,omitempty" json:"file_name,omitempty"`
	Language          *StringWithCustomTags `yaml:"language,omitempty" json:"language,omitempty"`
	PlaceHierarchy    *StringWithCustomTags `yaml:"place_hierarchy,omitempty" json:"place_hierarchy,omitempty"`
	CustomTags        tagsField             `yaml:"custom_tags,omitempty" json:"custom_tags,omitzero"`
}

type gedcomDoc struct {
	Header     *headerDoc    `yaml:"header,omitempty" json:"header,omitempty"`
	Submitters *[]*Submitter `yaml:"submitters,omitempty" json:"submitters,omitempty"`
	Trailer    *Trailer      `yaml:"trailer,omitempty" json:"trailer,omitempty"`
}

func (d *headerDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain headerDoc
	p := plain{CustomTags: newTagsField()}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*d = headerDoc(p)
	return nil
}

func (d *headerDoc) UnmarshalJSON(data []byte) error {
	type plain headerDoc
	p := plain{CustomTags: newTagsField()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = headerDoc(p)
	return nil
}

func (h *Header) doc() *headerDoc {
	d := &headerDoc{
		CharacterSet:      h.CharacterSet,
		GedcomVersion:     h.GedcomVersion,
		DestinationSystem: h.DestinationSystem,
		FileName:          h.FileName,
		Language:          h.Language,
		PlaceHierarchy:    h.PlaceHierarchy,
		CustomTags:        tagsField(h.CustomTags),
	}
	if h.CopyrightData != nil {
		data := h.CopyrightData
		d.CopyrightData = &data
	}
	if h.Submitter != nil {
		d.Submitter = h.Submitter.Xref
	}
	return d
}

// header builds the Header, resolving the submitter xref against g.
func (d *headerDoc) header(g *Gedcom) *Header {
	h := &Header{
		CharacterSet:      d.CharacterSet,
		GedcomVersion:     d.GedcomVersion,
		DestinationSystem: d.DestinationSystem,
		FileName:          d.FileName,
		Language:          d.Language,
		PlaceHierarchy:    d.PlaceHierarchy,
		CustomTags:        CustomTags(d.CustomTags),
	}
	if d.CopyrightData != nil {
		h.CopyrightData = *d.CopyrightData
		if h.CopyrightData == nil {
			h.CopyrightData = []string{}
		}
	}
	if d.Submitter != "" {
		h.Submitter = g.Submitters[d.Submitter]
		if h.Submitter == nil {
			h.Submitter = &Submitter{Xref: d.Submitter, CustomTags: CustomTags{}}
		}
	}
	return h
}

func (g Gedcom) doc() (gedcomDoc, error) {
	var d gedcomDoc
	if g.Header != nil {
		d.Header = g.Header.doc()
	}
	if g.Submitters != nil {
		list := make([]*Submitter, 0, len(g.Submitters))
		for _, xref := range g.SubmitterXrefs() {
			s := g.Submitters[xref]
			if s == nil {
				return d, errors.Newf("submitter %s is null", xref)
			}
			list = append(list, s)
		}
		d.Submitters = &list
	}
	d.Trailer = g.Trailer
	return d, nil
}

func (g *Gedcom) set(d gedcomDoc) error {
	g.Header = nil
	g.Submitters = nil
	g.Trailer = d.Trailer

	if d.Submitters != nil {
		g.Submitters = make(map[string]*Submitter, len(*d.Submitters))
		for i, s := range *d.Submitters {
			if s == nil {
				return errors.Newf("submitter entry %d is null", i+1)
			}
			if err := g.AddSubmitter(s); err != nil {
				return errors.Wrapf(err, "submitter entry %d", i+1)
			}
		}
	}
	if d.Header != nil {
		g.Header = d.Header.header(g)
	}
	return nil
}

// MarshalYAML writes a header on its own with the submitter as an xref.
// Headers are decoded only as part of a Gedcom.
func (h *Header) MarshalYAML() (any, error) { return h.doc(), nil }

func (g Gedcom) MarshalYAML() (any, error) { return g.doc() }

func (g *Gedcom) UnmarshalYAML(n *yaml.Node) error {
	var d gedcomDoc
	if err := n.Decode(&d); err != nil {
		return err
	}
	return g.set(d)
}

func (g Gedcom) MarshalJSON() ([]byte, error) {
	d, err := g.doc()
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

func (g *Gedcom) UnmarshalJSON(data []byte) error {
	var d gedcomDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	return g.set(d)
}
