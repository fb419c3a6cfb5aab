package tree

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/arbor/pkg/errors"
)

// Format identifies a tree document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Reserved document keys. Everything else lands in [Node.Payload].
const (
	keyName       = "name"
	keyChildren   = "children"
	keyIsExpanded = "isExpanded"
	keyExpanded   = "expanded"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ReadFile loads a tree document, choosing the decoder from the extension.
func ReadFile(path string) (*Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Read decodes a tree document from r.
func Read(r io.Reader, format Format) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a tree document held in memory.
func Parse(data []byte, format Format) (*Node, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode JSON document")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode YAML document")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if raw == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is empty")
	}
	return fromMap(raw, "")
}

func fromMap(m map[string]any, at string) (*Node, error) {
	n := &Node{}
	for k, v := range m {
		switch k {
		case keyName:
			n.Name = fmt.Sprint(v)
		case keyIsExpanded, keyExpanded:
			b, ok := v.(bool)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: %s must be a boolean", pathLabel(at, m), k)
			}
			n.Expanded = n.Expanded || b
		case keyChildren:
			if v == nil {
				continue
			}
			list, ok := v.([]any)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: children must be a list", pathLabel(at, m))
			}
			n.Children = make([]*Node, 0, len(list))
			for i, item := range list {
				cm, ok := item.(map[string]any)
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: child %d must be an object", pathLabel(at, m), i)
				}
				child, err := fromMap(cm, pathLabel(at, m)+"/")
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			}
		default:
			if n.Payload == nil {
				n.Payload = make(Payload)
			}
			n.Payload[k] = normalizeValue(v)
		}
	}
	return n, nil
}

func pathLabel(at string, m map[string]any) string {
	if name, ok := m[keyName]; ok {
		return at + fmt.Sprint(name)
	}
	return at + "?"
}

// normalizeValue converts json.Number into int64 or float64 so payloads look
// the same regardless of the source encoding.
func normalizeValue(v any) any {
	num, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := num.Int64(); err == nil {
		return i
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}

// Write encodes a tree as an indented JSON document.
func Write(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toMap(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func toMap(n *Node) map[string]any {
	m := make(map[string]any, len(n.Payload)+3)
	for k, v := range n.Payload {
		m[k] = v
	}
	m[keyName] = n.Name
	if n.Expanded {
		m[keyIsExpanded] = true
	}
	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = toMap(c)
		}
		m[keyChildren] = children
	}
	return m
}
