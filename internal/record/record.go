// Package record defines the decoded record shape produced by the block
// decoder: a small, ordered, layout-determined set of fields rather than a
// general hashmap (design note in spec §9).
package record

// PacketTypeField is the synthetic field every record carries, set to the
// record's layout name (spec §3).
const PacketTypeField = "mavpackettype"

// Field is one (name, value) pair in declaration order. Value holds one of:
// int64, uint64, float32, float64, string, []byte, or format.Int16x32 —
// see internal/format.Decode.
type Field struct {
	Name  string
	Value any
}

// Record is a decoded record: its source type code and an ordered sequence
// of fields, with PacketTypeField always last (spec §3).
type Record struct {
	TypeCode byte
	Offset   int // file byte offset this record started at
	Fields   []Field
}

// Get returns the value of the named field, if present.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// PacketType returns the record's mavpackettype field, the layout name
// that produced it.
func (r Record) PacketType() string {
	v, _ := r.Get(PacketTypeField)
	s, _ := v.(string)
	return s
}
