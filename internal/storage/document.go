package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Decode parses a whole JSON document. Numbers are kept as json.Number so
// their literal text survives a round trip. Content that is not valid UTF-8
// is rejected rather than repaired.
func Decode(content []byte) (any, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrParse)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the top-level value", ErrParse)
	}
	return doc, nil
}

// Encode renders doc with two space indentation and without escaping
// non-ASCII or HTML characters.
func Encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeObject splits a JSON object into its members without decoding the
// values, so they can be written back byte for byte. ok is false when raw is
// not an object.
func decodeObject(raw json.RawMessage) (members map[string]json.RawMessage, ok bool, err error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false, nil
	}
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if members == nil {
		members = map[string]json.RawMessage{}
	}
	return members, true, nil
}
