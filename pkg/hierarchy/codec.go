package hierarchy

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/conceptmap/pkg/errors"
)

// Format identifies a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ValidFormats lists the accepted format names.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatTOML: true,
}

// ParseFormat converts a user-supplied name ("yml" is accepted for YAML).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported hierarchy format %q (use json, yaml or toml)", s)
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %q: missing extension", path)
	}
	return ParseFormat(ext)
}

// Load reads a hierarchy document from path. The format follows the extension.
func Load(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "hierarchy file %s", path)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode %s", path)
	}
	return doc, nil
}

// Parse decodes a document. JSON input may also be a bare array of topics.
func Parse(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &doc.Topics); err != nil {
				return Document{}, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode json topics")
			}
			return doc, nil
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode json document")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode yaml document")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode toml document")
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported hierarchy format %q", format)
	}
	return doc, nil
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported hierarchy format %q", format)
	}
}
