package notebook

import (
	"encoding/json"
	"fmt"
)

// ExtraFields holds the fields of an object that are not part of the
// recognized schema, keyed by their original name. Values are kept as raw
// JSON and never parsed further.
type ExtraFields map[string]json.RawMessage

// FormatError reports malformed or unrecognized document content. Field
// names the offending field or tag, e.g. "cells[2].cell_type".
type FormatError struct {
	Field string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("notebook: invalid %s: %s", e.Field, e.Msg)
}

func formatErr(field, format string, args ...interface{}) *FormatError {
	return &FormatError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// prefixField rebases a decode error onto the enclosing object, so nested
// failures report a full path like "metadata.kernelspec.name".
func prefixField(err error, outer string) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FormatError); ok {
		if fe.Field == "" {
			return &FormatError{Field: outer, Msg: fe.Msg}
		}
		return &FormatError{Field: outer + "." + fe.Field, Msg: fe.Msg}
	}
	return formatErr(outer, "%v", err)
}

// decodeObject unmarshals data into a field map, the first step of every
// object decode. The remainder of the map after recognized fields are taken
// becomes the object's Extra bag.
func decodeObject(data []byte, field string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, formatErr(field, "expected an object: %v", err)
	}
	if fields == nil {
		return nil, formatErr(field, "expected an object, got null")
	}
	return fields, nil
}

// take removes an optional field and unmarshals it into dst. A missing or
// null field leaves dst at its zero value. Field names in errors are
// relative to the enclosing object.
func take(fields map[string]json.RawMessage, key string, dst interface{}) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	delete(fields, key)
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return prefixField(err, key)
	}
	return nil
}

// takeRequired removes a mandatory field and unmarshals it into dst. The
// field must be present and must not be null; null is never a stand-in for
// a required value.
func takeRequired(fields map[string]json.RawMessage, key string, dst interface{}) error {
	raw, ok := fields[key]
	if !ok {
		return formatErr(key, "missing required field")
	}
	delete(fields, key)
	if string(raw) == "null" {
		return formatErr(key, "must not be null")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return prefixField(err, key)
	}
	return nil
}

// put marshals a recognized field back into the output map.
func put(fields map[string]json.RawMessage, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fields[key] = raw
	return nil
}

// merge copies the Extra bag into the output map. Recognized fields are put
// after extras, so a conflicting bag entry can never shadow a typed field.
func merge(fields map[string]json.RawMessage, extra ExtraFields) {
	for k, v := range extra {
		fields[k] = v
	}
}

// remainder returns the unclaimed fields as an Extra bag, nil when empty so
// decoded values compare cleanly.
func remainder(fields map[string]json.RawMessage) ExtraFields {
	if len(fields) == 0 {
		return nil
	}
	return ExtraFields(fields)
}
