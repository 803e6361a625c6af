// README: Typed values produced while scanning a buffer.
package wire

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

type Kind uint8

const (
	KindVarint Kind = iota + 1
	KindFixed64
	KindText
	KindBytes
	KindFixed32
)

func (k Kind) String() string {
	switch k {
	case KindVarint:
		return "varint"
	case KindFixed64:
		return "fixed64"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindFixed32:
		return "fixed32"
	default:
		return "unknown"
	}
}

// Value is one field occurrence. Length-delimited values keep their raw bytes
// so they can be re-scanned as an embedded message; Kind records whether the
// bytes were valid UTF-8 (KindText) or not (KindBytes).
type Value struct {
	Kind Kind
	num  uint64
	raw  []byte
}

func varintValue(v uint64) Value  { return Value{Kind: KindVarint, num: v} }
func fixed64Value(v uint64) Value { return Value{Kind: KindFixed64, num: v} }
func fixed32Value(v uint32) Value { return Value{Kind: KindFixed32, num: uint64(v)} }

func lengthDelimitedValue(b []byte) Value {
	if utf8.Valid(b) {
		return Value{Kind: KindText, raw: b}
	}
	return Value{Kind: KindBytes, raw: b}
}

// WireType reports the wire type the value was read with.
func (v Value) WireType() protowire.Type {
	switch v.Kind {
	case KindVarint:
		return protowire.VarintType
	case KindFixed64:
		return protowire.Fixed64Type
	case KindFixed32:
		return protowire.Fixed32Type
	default:
		return protowire.BytesType
	}
}

// Uint returns the integer payload of varint, fixed64 and fixed32 values.
func (v Value) Uint() (uint64, bool) {
	switch v.Kind {
	case KindVarint, KindFixed64, KindFixed32:
		return v.num, true
	}
	return 0, false
}

// Text returns the content of a length-delimited value that decoded as UTF-8.
func (v Value) Text() (string, bool) {
	if v.Kind != KindText {
		return "", false
	}
	return string(v.raw), true
}

// Bytes returns the raw content of any length-delimited value.
func (v Value) Bytes() ([]byte, bool) {
	if v.Kind != KindText && v.Kind != KindBytes {
		return nil, false
	}
	return v.raw, true
}

// Hex is the diagnostic form of a length-delimited value.
func (v Value) Hex() string {
	return hex.EncodeToString(v.raw)
}

// String renders the value the way it is exposed for diagnostics: numbers in
// decimal, text as-is and non-UTF-8 bytes as hex.
func (v Value) String() string {
	switch v.Kind {
	case KindVarint, KindFixed64, KindFixed32:
		return strconv.FormatUint(v.num, 10)
	case KindText:
		return string(v.raw)
	case KindBytes:
		return v.Hex()
	default:
		return ""
	}
}

// AsDouble reinterprets the 64-bit pattern as an IEEE-754 double.
func AsDouble(bits uint64) float64 {
	return math.Float64frombits(bits)
}

// Double recovers a double that was stored as its integer bit pattern. The
// pattern may arrive as a fixed64, a varint, or as decimal text of the
// integer; fixed32 and binary values never carry one.
func (v Value) Double() (float64, bool) {
	switch v.Kind {
	case KindFixed64, KindVarint:
		return AsDouble(v.num), true
	case KindText:
		bits, err := strconv.ParseUint(strings.TrimSpace(string(v.raw)), 10, 64)
		if err != nil {
			return 0, false
		}
		return AsDouble(bits), true
	}
	return 0, false
}
