// README: Varint reader for schema-less wire-format buffers.
package wire

// maxVarintShift is the last 7-bit offset that still lands inside a uint64.
const maxVarintShift = 63

// ReadVarint decodes an unsigned LEB128 varint from buf starting at pos.
//
// It returns the decoded value and the position just past the last byte read.
// ok is false when the buffer ended before a byte with the high bit clear was
// found; value then holds whatever had been accumulated. Bits beyond the 64th
// are dropped, so over-long encodings still terminate.
func ReadVarint(buf []byte, pos int) (value uint64, next int, ok bool) {
	var shift uint
	for pos < len(buf) {
		b := buf[pos]
		pos++
		if shift <= maxVarintShift {
			value |= uint64(b&0x7f) << shift
		}
		if b&0x80 == 0 {
			return value, pos, true
		}
		shift += 7
	}
	return value, pos, false
}
