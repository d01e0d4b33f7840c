package hpack

import (
	"fmt"

	"github.com/nullbyte-labs/httpforge/pkg/constants"
)

// Decoder parses an HPACK block into header fields, maintaining its own
// dynamic table across calls to mirror the peer's encoder state.
type Decoder struct {
	dynTable *dynamicTable
}

// NewDecoder creates a Decoder with the spec's default dynamic table size.
func NewDecoder() *Decoder {
	return &Decoder{dynTable: newDynamicTable(constants.DefaultHpackTableSize)}
}

// resolveIndex returns the (name, value) for a combined static+dynamic
// index per RFC 7541 §2.3.3: 1..staticTableSize is static, the rest maps
// into the dynamic table in MRU order.
func (d *Decoder) resolveIndex(idx int) (string, string, bool) {
	if e, ok := staticLookup(idx); ok {
		return e.Name, e.Value, true
	}
	pos := idx - staticTableSize - 1
	if e, ok := d.dynTable.lookup(pos); ok {
		return e.Name, e.Value, true
	}
	return "", "", false
}

// Decode parses a complete HPACK block into an ordered field list,
// applying dynamic-table-size-updates and incremental-indexing insertions
// as it goes.
func (d *Decoder) Decode(data []byte) ([]HeaderField, error) {
	var fields []HeaderField
	pos := 0

	for pos < len(data) {
		b := data[pos]

		switch {
		case b&0x80 != 0: // Indexed Header Field: 1xxxxxxx
			idx, n, err := decodeInteger(data[pos:], 7)
			if err != nil {
				return nil, err
			}
			pos += n
			name, value, ok := d.resolveIndex(int(idx))
			if !ok {
				return nil, fmt.Errorf("hpack: invalid index %d", idx)
			}
			fields = append(fields, HeaderField{Name: name, Value: value})

		case b&0x40 != 0: // Literal with Incremental Indexing: 01xxxxxx
			idx, n, err := decodeInteger(data[pos:], 6)
			if err != nil {
				return nil, err
			}
			pos += n
			name, pos2, err := d.readName(data, pos, int(idx))
			if err != nil {
				return nil, err
			}
			pos = pos2
			value, n2, err := decodeString(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n2
			fields = append(fields, HeaderField{Name: name, Value: value})
			d.dynTable.insert(name, value)

		case b&0x20 != 0: // Dynamic Table Size Update: 001xxxxx
			size, n, err := decodeInteger(data[pos:], 5)
			if err != nil {
				return nil, err
			}
			pos += n
			d.dynTable.setMaxSize(int(size))

		default: // Literal without Indexing (0000xxxx) or Never Indexed (0001xxxx)
			idx, n, err := decodeInteger(data[pos:], 4)
			if err != nil {
				return nil, err
			}
			pos += n
			name, pos2, err := d.readName(data, pos, int(idx))
			if err != nil {
				return nil, err
			}
			pos = pos2
			value, n2, err := decodeString(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n2
			fields = append(fields, HeaderField{Name: name, Value: value})
		}
	}

	return fields, nil
}

// readName resolves the field name for a literal representation: if idx is
// 0 the name is itself a string literal at data[pos:]; otherwise it's an
// indexed name lookup and pos doesn't advance for a name string.
func (d *Decoder) readName(data []byte, pos, idx int) (string, int, error) {
	if idx != 0 {
		name, _, ok := d.resolveIndex(idx)
		if !ok {
			return "", pos, fmt.Errorf("hpack: invalid name index %d", idx)
		}
		return name, pos, nil
	}
	name, n, err := decodeString(data[pos:])
	if err != nil {
		return "", pos, err
	}
	return name, pos + n, nil
}
