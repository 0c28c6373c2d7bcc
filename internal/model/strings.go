package model

// StringTree is a single non-standard tag line together with the lines nested
// beneath it.
type StringTree struct {
	Level    int           `yaml:"level,omitempty" json:"level,omitempty"`
	ID       string        `yaml:"id,omitempty" json:"id,omitempty"`
	Tag      string        `yaml:"tag" json:"tag"`
	Value    string        `yaml:"value,omitempty" json:"value,omitempty"`
	Children []*StringTree `yaml:"children,omitempty" json:"children,omitempty"`
}

// CustomTags holds the non-standard tag extensions attached to an element.
// A nil CustomTags has never been initialized; an empty one is valid.
type CustomTags []*StringTree

// IsSet reports whether the collection exists, even if it is empty.
func (c CustomTags) IsSet() bool {
	return c != nil
}

// StringWithCustomTags is a text value that may carry custom tag extensions.
type StringWithCustomTags struct {
	Value      string
	CustomTags CustomTags
}

// NewStringWithCustomTags returns a string wrapper with an empty, initialized
// custom tag collection.
func NewStringWithCustomTags(value string) *StringWithCustomTags {
	return &StringWithCustomTags{
		Value:      value,
		CustomTags: CustomTags{},
	}
}

// String returns the wrapped value, or "" for a nil receiver.
func (s *StringWithCustomTags) String() string {
	if s == nil {
		return ""
	}
	return s.Value
}
