package notebook

import "encoding/json"

// Output type tags as they appear on the wire.
const (
	OutputTypeExecuteResult = "execute_result"
	OutputTypeDisplayData   = "display_data"
	OutputTypeStream        = "stream"
	OutputTypeError         = "error"
)

// Output is one result emitted while executing a code cell, discriminated
// by the "output_type" tag into exactly one of ExecuteResult, DisplayData,
// Stream, or ErrorOutput.
type Output interface {
	OutputType() string
}

// decodeOutput dispatches on the output_type tag. Unknown and missing tags
// are decode errors.
func decodeOutput(data []byte) (Output, error) {
	var probe struct {
		OutputType *string `json:"output_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, formatErr("", "expected an object: %v", err)
	}
	if probe.OutputType == nil {
		return nil, formatErr("output_type", "missing required field")
	}

	var out Output
	var err error
	switch *probe.OutputType {
	case OutputTypeExecuteResult:
		var o ExecuteResult
		err = json.Unmarshal(data, &o)
		out = &o
	case OutputTypeDisplayData:
		var o DisplayData
		err = json.Unmarshal(data, &o)
		out = &o
	case OutputTypeStream:
		var o Stream
		err = json.Unmarshal(data, &o)
		out = &o
	case OutputTypeError:
		var o ErrorOutput
		err = json.Unmarshal(data, &o)
		out = &o
	default:
		return nil, formatErr("output_type", "unknown output type %q", *probe.OutputType)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteResult is the result of a REPL-style evaluation.
type ExecuteResult struct {
	// ExecutionCount of the producing run; nil when unknown. A missing or
	// null key decodes as nil, and the key is always written back, as null
	// when unset.
	ExecutionCount *int

	// Data returned by the execution.
	Data MimeBundle

	// Metadata associated with the result.
	Metadata OutputMetadata

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (o *ExecuteResult) OutputType() string { return OutputTypeExecuteResult }

func (o *ExecuteResult) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	delete(fields, "output_type")
	if err := take(fields, "execution_count", &o.ExecutionCount); err != nil {
		return err
	}
	if err := takeRequired(fields, "data", &o.Data); err != nil {
		return err
	}
	if err := takeRequired(fields, "metadata", &o.Metadata); err != nil {
		return err
	}
	o.Extra = remainder(fields)
	return nil
}

func (o ExecuteResult) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o.Extra)+4)
	merge(fields, o.Extra)
	if err := put(fields, "output_type", OutputTypeExecuteResult); err != nil {
		return nil, err
	}
	if err := put(fields, "execution_count", o.ExecutionCount); err != nil {
		return nil, err
	}
	if err := put(fields, "data", orEmptyBundle(o.Data)); err != nil {
		return nil, err
	}
	if err := put(fields, "metadata", orEmptyMetadata(o.Metadata)); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// DisplayData is a side-channel display output.
type DisplayData struct {
	// Data to display.
	Data MimeBundle

	// Metadata associated with the display data.
	Metadata OutputMetadata

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (o *DisplayData) OutputType() string { return OutputTypeDisplayData }

func (o *DisplayData) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	delete(fields, "output_type")
	if err := takeRequired(fields, "data", &o.Data); err != nil {
		return err
	}
	if err := takeRequired(fields, "metadata", &o.Metadata); err != nil {
		return err
	}
	o.Extra = remainder(fields)
	return nil
}

func (o DisplayData) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o.Extra)+3)
	merge(fields, o.Extra)
	if err := put(fields, "output_type", OutputTypeDisplayData); err != nil {
		return nil, err
	}
	if err := put(fields, "data", orEmptyBundle(o.Data)); err != nil {
		return nil, err
	}
	if err := put(fields, "metadata", orEmptyMetadata(o.Metadata)); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Stream is text captured from an output stream during execution.
type Stream struct {
	// Name of the stream, "stdout" or "stderr".
	Name string

	// Text content of the stream.
	Text MultilineString

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (o *Stream) OutputType() string { return OutputTypeStream }

func (o *Stream) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	delete(fields, "output_type")
	if err := takeRequired(fields, "name", &o.Name); err != nil {
		return err
	}
	if err := takeRequired(fields, "text", &o.Text); err != nil {
		return err
	}
	o.Extra = remainder(fields)
	return nil
}

func (o Stream) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o.Extra)+3)
	merge(fields, o.Extra)
	if err := put(fields, "output_type", OutputTypeStream); err != nil {
		return nil, err
	}
	if err := put(fields, "name", o.Name); err != nil {
		return nil, err
	}
	if err := put(fields, "text", o.Text); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// ErrorOutput is an error raised during execution.
type ErrorOutput struct {
	// Name of the error, e.g. "ZeroDivisionError".
	Name string

	// Value is the error message.
	Value string

	// Traceback lines, in order.
	Traceback []string

	// Extra keeps unrecognized fields for round-tripping.
	Extra ExtraFields
}

func (o *ErrorOutput) OutputType() string { return OutputTypeError }

func (o *ErrorOutput) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "")
	if err != nil {
		return err
	}
	delete(fields, "output_type")
	if err := takeRequired(fields, "ename", &o.Name); err != nil {
		return err
	}
	if err := takeRequired(fields, "evalue", &o.Value); err != nil {
		return err
	}
	if err := takeRequired(fields, "traceback", &o.Traceback); err != nil {
		return err
	}
	o.Extra = remainder(fields)
	return nil
}

func (o ErrorOutput) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o.Extra)+4)
	merge(fields, o.Extra)
	if err := put(fields, "output_type", OutputTypeError); err != nil {
		return nil, err
	}
	if err := put(fields, "ename", o.Name); err != nil {
		return nil, err
	}
	if err := put(fields, "evalue", o.Value); err != nil {
		return nil, err
	}
	traceback := o.Traceback
	if traceback == nil {
		traceback = []string{}
	}
	if err := put(fields, "traceback", traceback); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func orEmptyBundle(b MimeBundle) MimeBundle {
	if b == nil {
		return MimeBundle{}
	}
	return b
}

func orEmptyMetadata(m OutputMetadata) OutputMetadata {
	if m == nil {
		return OutputMetadata{}
	}
	return m
}
