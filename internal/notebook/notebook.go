package notebook

import (
	"encoding/json"
	"fmt"
)

// Notebook is the root structure of a Jupyter notebook file.
type Notebook struct {
	// Root-level metadata of the notebook.
	Metadata Metadata

	// Notebook format major number, incremented for incompatible changes.
	NBFormat int

	// Notebook format minor number, incremented for compatible changes.
	NBFormatMinor int

	// Ordered cells of the notebook.
	Cells []Cell
}

// Parse decodes a notebook document from its JSON representation.
func Parse(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		if _, ok := err.(*FormatError); ok {
			return nil, err
		}
		return nil, formatErr("notebook", "%v", err)
	}
	return &nb, nil
}

func (n *Notebook) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "notebook")
	if err != nil {
		return err
	}
	if err := takeRequired(fields, "metadata", &n.Metadata); err != nil {
		return err
	}
	if err := takeRequired(fields, "nbformat", &n.NBFormat); err != nil {
		return err
	}
	if err := takeRequired(fields, "nbformat_minor", &n.NBFormatMinor); err != nil {
		return err
	}
	var rawCells []json.RawMessage
	if err := takeRequired(fields, "cells", &rawCells); err != nil {
		return err
	}
	n.Cells = make([]Cell, len(rawCells))
	for i, raw := range rawCells {
		cell, err := decodeCell(raw)
		if err != nil {
			return prefixField(err, fmt.Sprintf("cells[%d]", i))
		}
		n.Cells[i] = cell
	}
	return nil
}

func (n Notebook) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, 4)
	if err := put(fields, "metadata", n.Metadata); err != nil {
		return nil, err
	}
	if err := put(fields, "nbformat", n.NBFormat); err != nil {
		return nil, err
	}
	if err := put(fields, "nbformat_minor", n.NBFormatMinor); err != nil {
		return nil, err
	}
	cells := make([]json.RawMessage, len(n.Cells))
	for i, cell := range n.Cells {
		raw, err := json.Marshal(cell)
		if err != nil {
			return nil, err
		}
		cells[i] = raw
	}
	if err := put(fields, "cells", cells); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// NormalizeSources rewrites every cell source and stream output into the
// conventional line-array form, the shape Jupyter itself writes. Intended
// for use before storage or display, not on every access.
func (n *Notebook) NormalizeSources() {
	for _, cell := range n.Cells {
		switch c := cell.(type) {
		case *RawCell:
			c.Source = c.Source.Normalize()
		case *MarkdownCell:
			c.Source = c.Source.Normalize()
		case *CodeCell:
			c.Source = c.Source.Normalize()
			for _, out := range c.Outputs {
				if stream, ok := out.(*Stream); ok {
					stream.Text = stream.Text.Normalize()
				}
			}
		}
	}
}

// Metadata is the root-level metadata of a notebook.
type Metadata struct {
	// Kernel the notebook was written against, if recorded.
	KernelSpec *KernelSpec

	// Programming language of the notebook's code.
	LanguageInfo *LanguageInfo

	// Original notebook format before conversion.
	OrigNBFormat *int

	// Title of the document.
	Title *string

	// Authors of the document, in order. Nil when the key is absent.
	Authors []Author

	// Extra keeps unrecognized metadata fields for round-tripping.
	Extra ExtraFields
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := take(fields, "kernelspec", &m.KernelSpec); err != nil {
		return err
	}
	if err := take(fields, "language_info", &m.LanguageInfo); err != nil {
		return err
	}
	if err := take(fields, "orig_nbformat", &m.OrigNBFormat); err != nil {
		return err
	}
	if err := take(fields, "title", &m.Title); err != nil {
		return err
	}
	if err := take(fields, "authors", &m.Authors); err != nil {
		return err
	}
	m.Extra = remainder(fields)
	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(m.Extra)+5)
	merge(fields, m.Extra)
	if m.KernelSpec != nil {
		if err := put(fields, "kernelspec", m.KernelSpec); err != nil {
			return nil, err
		}
	}
	if m.LanguageInfo != nil {
		if err := put(fields, "language_info", m.LanguageInfo); err != nil {
			return nil, err
		}
	}
	if m.OrigNBFormat != nil {
		if err := put(fields, "orig_nbformat", m.OrigNBFormat); err != nil {
			return nil, err
		}
	}
	if m.Title != nil {
		if err := put(fields, "title", m.Title); err != nil {
			return nil, err
		}
	}
	if m.Authors != nil {
		if err := put(fields, "authors", m.Authors); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

// KernelSpec identifies the kernel a notebook runs on.
type KernelSpec struct {
	// Name of the kernel specification, e.g. "python3".
	Name string

	// DisplayName is the human-readable kernel name.
	DisplayName string

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (k *KernelSpec) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := takeRequired(fields, "name", &k.Name); err != nil {
		return err
	}
	if err := takeRequired(fields, "display_name", &k.DisplayName); err != nil {
		return err
	}
	k.Extra = remainder(fields)
	return nil
}

func (k KernelSpec) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(k.Extra)+2)
	merge(fields, k.Extra)
	if err := put(fields, "name", k.Name); err != nil {
		return nil, err
	}
	if err := put(fields, "display_name", k.DisplayName); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// LanguageInfo describes the programming language of a notebook's code.
type LanguageInfo struct {
	Name           string
	CodeMirrorMode *CodeMirrorMode
	FileExtension  *string
	MimeType       *string
	PygmentsLexer  *string

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (l *LanguageInfo) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := takeRequired(fields, "name", &l.Name); err != nil {
		return err
	}
	if err := take(fields, "codemirror_mode", &l.CodeMirrorMode); err != nil {
		return err
	}
	if err := take(fields, "file_extension", &l.FileExtension); err != nil {
		return err
	}
	if err := take(fields, "mimetype", &l.MimeType); err != nil {
		return err
	}
	if err := take(fields, "pygments_lexer", &l.PygmentsLexer); err != nil {
		return err
	}
	l.Extra = remainder(fields)
	return nil
}

func (l LanguageInfo) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(l.Extra)+5)
	merge(fields, l.Extra)
	if err := put(fields, "name", l.Name); err != nil {
		return nil, err
	}
	if l.CodeMirrorMode != nil {
		if err := put(fields, "codemirror_mode", l.CodeMirrorMode); err != nil {
			return nil, err
		}
	}
	if l.FileExtension != nil {
		if err := put(fields, "file_extension", l.FileExtension); err != nil {
			return nil, err
		}
	}
	if l.MimeType != nil {
		if err := put(fields, "mimetype", l.MimeType); err != nil {
			return nil, err
		}
	}
	if l.PygmentsLexer != nil {
		if err := put(fields, "pygments_lexer", l.PygmentsLexer); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

// CodeMirrorMode is the editor mode for a language, either a plain string
// or a nested mapping of arbitrary keys. The shape is decided once at
// decode time.
type CodeMirrorMode struct {
	name   string
	object map[string]json.RawMessage
}

// ModeName returns the string form of an editor mode.
func ModeName(name string) CodeMirrorMode {
	return CodeMirrorMode{name: name}
}

// ModeObject returns the mapping form of an editor mode.
func ModeObject(object map[string]json.RawMessage) CodeMirrorMode {
	return CodeMirrorMode{object: object}
}

// IsObject reports whether the mode is the nested mapping form.
func (c CodeMirrorMode) IsObject() bool {
	return c.object != nil
}

// Name returns the string form, or "" for the mapping form.
func (c CodeMirrorMode) Name() string {
	return c.name
}

// Object returns the mapping form, or nil for the string form.
func (c CodeMirrorMode) Object() map[string]json.RawMessage {
	return c.object
}

func (c *CodeMirrorMode) UnmarshalJSON(data []byte) error {
	switch firstByte(data) {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return formatErr("", "%v", err)
		}
		*c = CodeMirrorMode{name: s}
		return nil
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return formatErr("", "%v", err)
		}
		if m == nil {
			m = map[string]json.RawMessage{}
		}
		*c = CodeMirrorMode{object: m}
		return nil
	default:
		return formatErr("", "expected a string or an object")
	}
}

func (c CodeMirrorMode) MarshalJSON() ([]byte, error) {
	if c.object != nil {
		return json.Marshal(c.object)
	}
	return json.Marshal(c.name)
}

// Author is one author of a notebook document.
type Author struct {
	// Name of the author, if given.
	Name *string

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (a *Author) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := take(fields, "name", &a.Name); err != nil {
		return err
	}
	a.Extra = remainder(fields)
	return nil
}

func (a Author) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(a.Extra)+1)
	merge(fields, a.Extra)
	if a.Name != nil {
		if err := put(fields, "name", a.Name); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

// CellMetadata is per-cell metadata. No fields are recognized at this
// layer; everything is preserved verbatim.
type CellMetadata struct {
	Extra ExtraFields
}

func (m *CellMetadata) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	m.Extra = remainder(fields)
	return nil
}

func (m CellMetadata) MarshalJSON() ([]byte, error) {
	if m.Extra == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]json.RawMessage(m.Extra))
}

// Attachments maps filenames to embedded media for a cell.
type Attachments map[string]MimeBundle

// MimeBundle maps MIME type strings to one piece of data each. Values may
// be strings, structured data, or base64-encoded binary; they are not
// interpreted here.
type MimeBundle map[string]json.RawMessage

// OutputMetadata is the metadata mapping attached to outputs.
type OutputMetadata map[string]json.RawMessage
