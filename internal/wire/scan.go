// README: Single-level wire-format scanner. Best effort: it stops at the first
// truncated or unsupported record and keeps everything read before it.
package wire

import (
	"encoding/binary"

	"google.golang.org/protobuf/encoding/protowire"
)

type StopReason string

const (
	StopEnd             StopReason = "end"
	StopTruncated       StopReason = "truncated"
	StopUnsupportedType StopReason = "unsupported_wire_type"
	StopInvalidField    StopReason = "invalid_field"
)

// Report describes where and why a scan finished.
type Report struct {
	Consumed int        `json:"consumed"`
	Length   int        `json:"length"`
	Stop     StopReason `json:"stop"`
	// Field is the field number of the record that stopped the scan, zero on StopEnd.
	Field protowire.Number `json:"field,omitempty"`
}

// Complete reports whether the whole buffer was consumed.
func (r Report) Complete() bool {
	return r.Stop == StopEnd
}

// Scan decodes the records of buf at a single nesting level.
func Scan(buf []byte) *Message {
	m, _ := ScanReport(buf)
	return m
}

// ScanReport is Scan plus a description of where scanning stopped.
// Consumed only advances past fully read records.
func ScanReport(buf []byte) (*Message, Report) {
	m := NewMessage()
	rep := Report{Length: len(buf), Stop: StopEnd}
	pos := 0

	for pos < len(buf) {
		tag, next, ok := ReadVarint(buf, pos)
		if !ok {
			rep.Stop = StopTruncated
			break
		}
		num, typ := protowire.Number(tag>>3), protowire.Type(tag&0x7)
		if tag>>3 == 0 || tag>>3 > uint64(protowire.MaxValidNumber) {
			// Out-of-range numbers do not fit a field number; Field stays zero.
			rep.Stop = StopInvalidField
			break
		}

		v, end, stop := readValue(buf, next, typ)
		if stop != StopEnd {
			rep.Stop, rep.Field = stop, num
			break
		}
		m.add(num, v)
		pos = end
	}

	rep.Consumed = pos
	return m, rep
}

// readValue reads one value of wire type typ starting at pos.
func readValue(buf []byte, pos int, typ protowire.Type) (Value, int, StopReason) {
	remaining := len(buf) - pos

	switch typ {
	case protowire.VarintType:
		v, next, ok := ReadVarint(buf, pos)
		if !ok {
			return Value{}, pos, StopTruncated
		}
		return varintValue(v), next, StopEnd

	case protowire.Fixed64Type:
		if remaining < 8 {
			return Value{}, pos, StopTruncated
		}
		return fixed64Value(binary.LittleEndian.Uint64(buf[pos:])), pos + 8, StopEnd

	case protowire.BytesType:
		n, next, ok := ReadVarint(buf, pos)
		if !ok || n > uint64(len(buf)-next) {
			return Value{}, pos, StopTruncated
		}
		end := next + int(n)
		return lengthDelimitedValue(buf[next:end:end]), end, StopEnd

	case protowire.Fixed32Type:
		if remaining < 4 {
			return Value{}, pos, StopTruncated
		}
		return fixed32Value(binary.LittleEndian.Uint32(buf[pos:])), pos + 4, StopEnd
	}

	// start/end group (3, 4) and the unassigned 6, 7
	return Value{}, pos, StopUnsupportedType
}
