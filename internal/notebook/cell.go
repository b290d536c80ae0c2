package notebook

import (
	"encoding/json"
	"fmt"
)

// Cell type tags as they appear on the wire.
const (
	CellTypeRaw      = "raw"
	CellTypeMarkdown = "markdown"
	CellTypeCode     = "code"
)

// Cell is one unit of notebook content, discriminated by the "cell_type"
// tag into exactly one of RawCell, MarkdownCell, or CodeCell.
type Cell interface {
	CellType() string
}

// decodeCell dispatches on the cell_type tag. Unknown and missing tags are
// decode errors; there is no catch-all variant.
func decodeCell(data []byte) (Cell, error) {
	var probe struct {
		CellType *string `json:"cell_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, formatErr("", "expected an object: %v", err)
	}
	if probe.CellType == nil {
		return nil, formatErr("cell_type", "missing required field")
	}

	var cell Cell
	var err error
	switch *probe.CellType {
	case CellTypeRaw:
		var c RawCell
		err = json.Unmarshal(data, &c)
		cell = &c
	case CellTypeMarkdown:
		var c MarkdownCell
		err = json.Unmarshal(data, &c)
		cell = &c
	case CellTypeCode:
		var c CodeCell
		err = json.Unmarshal(data, &c)
		cell = &c
	default:
		return nil, formatErr("cell_type", "unknown cell type %q", *probe.CellType)
	}
	if err != nil {
		return nil, err
	}
	return cell, nil
}

// RawCell is a non-executable cell holding raw text.
type RawCell struct {
	// ID of the cell, present since nbformat 4.5.
	ID *string

	// Metadata for the cell.
	Metadata CellMetadata

	// Source is the text content of the cell.
	Source MultilineString

	// Attachments embedded in the cell, e.g. images.
	Attachments Attachments
}

func (c *RawCell) CellType() string { return CellTypeRaw }

func (c *RawCell) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := take(fields, "id", &c.ID); err != nil {
		return err
	}
	if err := takeRequired(fields, "metadata", &c.Metadata); err != nil {
		return err
	}
	if err := takeRequired(fields, "source", &c.Source); err != nil {
		return err
	}
	return take(fields, "attachments", &c.Attachments)
}

func (c RawCell) MarshalJSON() ([]byte, error) {
	return marshalTextCell(CellTypeRaw, c.ID, c.Metadata, c.Source, c.Attachments)
}

// MarkdownCell is a cell holding narrative markdown text.
type MarkdownCell struct {
	// ID of the cell, present since nbformat 4.5.
	ID *string

	// Metadata for the cell.
	Metadata CellMetadata

	// Source is the text content of the cell.
	Source MultilineString

	// Attachments embedded in the cell, e.g. images.
	Attachments Attachments
}

func (c *MarkdownCell) CellType() string { return CellTypeMarkdown }

func (c *MarkdownCell) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := take(fields, "id", &c.ID); err != nil {
		return err
	}
	if err := takeRequired(fields, "metadata", &c.Metadata); err != nil {
		return err
	}
	if err := takeRequired(fields, "source", &c.Source); err != nil {
		return err
	}
	return take(fields, "attachments", &c.Attachments)
}

func (c MarkdownCell) MarshalJSON() ([]byte, error) {
	return marshalTextCell(CellTypeMarkdown, c.ID, c.Metadata, c.Source, c.Attachments)
}

// marshalTextCell encodes the shared shape of raw and markdown cells.
func marshalTextCell(cellType string, id *string, metadata CellMetadata, source MultilineString, attachments Attachments) ([]byte, error) {
	fields := make(map[string]json.RawMessage, 5)
	if err := put(fields, "cell_type", cellType); err != nil {
		return nil, err
	}
	if id != nil {
		if err := put(fields, "id", id); err != nil {
			return nil, err
		}
	}
	if err := put(fields, "metadata", metadata); err != nil {
		return nil, err
	}
	if err := put(fields, "source", source); err != nil {
		return nil, err
	}
	if attachments != nil {
		if err := put(fields, "attachments", attachments); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

// CodeCell is an executable cell with its recorded outputs.
type CodeCell struct {
	// ID of the cell, present since nbformat 4.5.
	ID *string

	// Metadata for the cell.
	Metadata CellMetadata

	// Source is the code content of the cell.
	Source MultilineString

	// ExecutionCount of the cell; nil when it has never run. A missing or
	// null key decodes as nil, and the key is always written back, as null
	// when unset, matching nbformat.
	ExecutionCount *int

	// Outputs from executing the cell, in emission order.
	Outputs []Output
}

func (c *CodeCell) CellType() string { return CellTypeCode }

func (c *CodeCell) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	if err := take(fields, "id", &c.ID); err != nil {
		return err
	}
	if err := takeRequired(fields, "metadata", &c.Metadata); err != nil {
		return err
	}
	if err := takeRequired(fields, "source", &c.Source); err != nil {
		return err
	}
	if err := take(fields, "execution_count", &c.ExecutionCount); err != nil {
		return err
	}
	var rawOutputs []json.RawMessage
	if err := takeRequired(fields, "outputs", &rawOutputs); err != nil {
		return err
	}
	c.Outputs = make([]Output, len(rawOutputs))
	for i, raw := range rawOutputs {
		out, err := decodeOutput(raw)
		if err != nil {
			return prefixField(err, fmt.Sprintf("outputs[%d]", i))
		}
		c.Outputs[i] = out
	}
	return nil
}

func (c CodeCell) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, 6)
	if err := put(fields, "cell_type", CellTypeCode); err != nil {
		return nil, err
	}
	if c.ID != nil {
		if err := put(fields, "id", c.ID); err != nil {
			return nil, err
		}
	}
	if err := put(fields, "metadata", c.Metadata); err != nil {
		return nil, err
	}
	if err := put(fields, "source", c.Source); err != nil {
		return nil, err
	}
	if err := put(fields, "execution_count", c.ExecutionCount); err != nil {
		return nil, err
	}
	outputs := make([]json.RawMessage, len(c.Outputs))
	for i, out := range c.Outputs {
		raw, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}
		outputs[i] = raw
	}
	if err := put(fields, "outputs", outputs); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
