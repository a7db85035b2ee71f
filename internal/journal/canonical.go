package journal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON. This is the only
// serialization used for content-addressed IDs.
//
// Properties:
//   - object keys sorted by UTF-16 code units
//   - strings NFC normalized at the boundary
//   - no HTML escaping, and U+2028/U+2029 stay literal
//   - no floats and no nulls, which the Value union rules out statically
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case VString:
		writeCanonicalString(buf, string(val))
		return nil
	case VInt:
		fmt.Fprintf(buf, "%d", int64(val))
		return nil
	case VBool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case VArray:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case VObject:
		buf.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case nil:
		return fmt.Errorf("nil Value is forbidden in canonical JSON")
	default:
		return fmt.Errorf("unsupported Value type %T", v)
	}
}

// UnmarshalCanonical parses stored canonical JSON back into the Value
// union. Floats and nulls fail: a payload containing either did not come
// from MarshalCanonical and must not be trusted.
func UnmarshalCanonical(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse canonical JSON: %w", err)
	}
	return toValue(raw)
}

func toValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return VString(v), nil
	case bool:
		return VBool(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %q in canonical JSON", v)
		}
		return VInt(n), nil
	case []any:
		arr := make(VArray, len(v))
		for i, elem := range v {
			val, err := toValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = val
		}
		return arr, nil
	case map[string]any:
		obj := make(VObject, len(v))
		for k, elem := range v {
			val, err := toValue(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	default:
		return nil, fmt.Errorf("unsupported JSON value %T", raw)
	}
}

// writeCanonicalString writes a canonical JSON string. Only the quote, the
// backslash, and control characters below U+0020 are escaped; everything
// else, including <, >, &, U+2028, and U+2029, is emitted literally as RFC
// 8785 requires. Encoding by hand sidesteps encoding/json's JavaScript
// compatibility escapes entirely.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
