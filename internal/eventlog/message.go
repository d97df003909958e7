package eventlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// NormalizeMessage turns any message value into the string sent on the wire.
//
// Strings (including named string types), byte slices, errors, fmt.Stringers
// and scalar values are converted to their text form. Anything else (maps, structs, slices, pointers, nil) is
// encoded as compact JSON with object keys sorted and HTML escaping off, so
// map[string]int{"a": 1} becomes {"a":1}. A value that cannot be encoded,
// or whose String/Error method panics, is replaced by a placeholder naming its
// type. NormalizeMessage never panics.
func NormalizeMessage(message any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = unserializable(message)
		}
	}()

	switch m := message.(type) {
	case string:
		return m
	case []byte:
		return string(m)
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	case float32:
		return formatFloat(float64(m), 32)
	case float64:
		return formatFloat(m, 64)
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		complex64, complex128:
		return fmt.Sprint(m)
	}

	if rv := reflect.ValueOf(message); rv.Kind() == reflect.String {
		return rv.String()
	}

	encoded, err := canonicalJSON(message)
	if err != nil {
		return unserializable(message)
	}
	return encoded
}

// formatFloat writes plain decimals between 1e-6 and 1e21 and exponent
// notation outside that range.
func formatFloat(f float64, bitSize int) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

func canonicalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func unserializable(v any) string {
	return fmt.Sprintf("[unserializable message: %T]", v)
}
