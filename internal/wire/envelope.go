// README: Transport envelope: the vendor ships the wire buffer as a JSON array of byte values.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrBadEnvelope = errors.New("malformed byte-array envelope")

// UnwrapByteArray turns a body such as `[10,3,97,98,99]` back into the
// bytes it lists. Every element must be an integer in 0..255.
func UnwrapByteArray(body []byte) ([]byte, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: not a json array", ErrBadEnvelope)
	}
	var elems []int
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	out := make([]byte, len(elems))
	for i, e := range elems {
		if e < 0 || e > 255 {
			return nil, fmt.Errorf("%w: element %d out of byte range: %d", ErrBadEnvelope, i, e)
		}
		out[i] = byte(e)
	}
	return out, nil
}
