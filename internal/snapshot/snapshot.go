package snapshot

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gedcheck/internal/model"
	"github.com/thoreinstein/gedcheck/pkg/fileutil"
)

// Format is a snapshot serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for unknown formats and for encoding to a
// format that can only be read.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// ParseFormat converts a format name such as "yml" into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
	}
}

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%s has no file extension", path)
	}
	return ParseFormat(ext)
}

// Decode parses data in the given format into a new document graph.
func Decode(data []byte, format Format) (*model.Gedcom, error) {
	doc := &model.Gedcom{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatTOML:
		err = decodeTOML(data, doc)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s snapshot", format)
	}
	return doc, nil
}

// decodeTOML reads TOML into a generic tree and hands it to the JSON codec,
// which owns the document shape.
func decodeTOML(data []byte, doc *model.Gedcom) error {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return errors.Wrap(err, "converting TOML tree")
	}
	return json.Unmarshal(raw, doc)
}

// Encode serializes doc. Only YAML and JSON can be written.
func Encode(doc *model.Gedcom, format Format) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("encoding snapshot: document is nil")
	}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "encoding yaml snapshot")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding yaml snapshot")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding json snapshot")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot write %q", format)
	}
}

// Load reads and decodes the snapshot at path. An empty format is inferred
// from the file extension.
func Load(path string, format Format) (*model.Gedcom, Format, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, "", err
		}
		format = f
	}
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, format, errors.Wrapf(err, "reading %s", path)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, format, errors.Wrapf(err, "loading %s", path)
	}
	return doc, format, nil
}

// Save encodes doc and atomically replaces the file at path. An empty format
// is inferred from the file extension.
func Save(path string, doc *model.Gedcom, format Format) error {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if err := fileutil.ReplaceFile(path, data); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
