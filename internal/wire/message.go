// README: Decoded message: field number -> ordered values, with typed getters.
package wire

import (
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message holds every value read at one nesting level. Values for a field
// number keep their arrival order; order across field numbers is not kept.
// Getters never fail: a missing or mistyped field reports ok == false.
type Message struct {
	fields map[protowire.Number][]Value
}

func NewMessage() *Message {
	return &Message{fields: make(map[protowire.Number][]Value)}
}

func (m *Message) add(num protowire.Number, v Value) {
	m.fields[num] = append(m.fields[num], v)
}

// Len is the number of distinct field numbers present.
func (m *Message) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Fields lists the field numbers present, ascending.
func (m *Message) Fields() []protowire.Number {
	if m == nil {
		return nil
	}
	nums := make([]protowire.Number, 0, len(m.fields))
	for n := range m.fields {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

// Values returns all occurrences of num in arrival order.
func (m *Message) Values(num protowire.Number) []Value {
	if m == nil {
		return nil
	}
	return m.fields[num]
}

// First returns the first occurrence of num.
func (m *Message) First(num protowire.Number) (Value, bool) {
	vs := m.Values(num)
	if len(vs) == 0 {
		return Value{}, false
	}
	return vs[0], true
}

func (m *Message) Varint(num protowire.Number) (uint64, bool) {
	v, ok := m.First(num)
	if !ok || v.Kind != KindVarint {
		return 0, false
	}
	return v.num, true
}

func (m *Message) Fixed64(num protowire.Number) (uint64, bool) {
	v, ok := m.First(num)
	if !ok || v.Kind != KindFixed64 {
		return 0, false
	}
	return v.num, true
}

func (m *Message) Text(num protowire.Number) (string, bool) {
	v, ok := m.First(num)
	if !ok {
		return "", false
	}
	return v.Text()
}

// Double reads the first occurrence of num as a double bit pattern.
func (m *Message) Double(num protowire.Number) (float64, bool) {
	v, ok := m.First(num)
	if !ok {
		return 0, false
	}
	return v.Double()
}

// Nested re-scans the first occurrence of num as an embedded message.
func (m *Message) Nested(num protowire.Number) (*Message, bool) {
	v, ok := m.First(num)
	if !ok {
		return nil, false
	}
	return v.Message()
}

// NestedAll re-scans every occurrence of num. Occurrences that are not
// length-delimited come back as nil so positions line up with Values.
func (m *Message) NestedAll(num protowire.Number) []*Message {
	vs := m.Values(num)
	if len(vs) == 0 {
		return nil
	}
	out := make([]*Message, len(vs))
	for i, v := range vs {
		out[i], _ = v.Message()
	}
	return out
}

// Path follows a chain of embedded messages, taking the first occurrence at
// each level.
func (m *Message) Path(nums ...protowire.Number) (*Message, bool) {
	cur := m
	for _, n := range nums {
		next, ok := cur.Nested(n)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Message scans a length-delimited value as an embedded message.
func (v Value) Message() (*Message, bool) {
	b, ok := v.Bytes()
	if !ok {
		return nil, false
	}
	return Scan(b), true
}
