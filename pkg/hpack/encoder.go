package hpack

import (
	"bytes"

	"github.com/nullbyte-labs/httpforge/pkg/constants"
)

// HeaderField is a single name/value pair to encode or a decoded result.
type HeaderField struct {
	Name  string
	Value string
}

// Indexing selects which of the two literal representations (RFC 7541
// §6.2.1/§6.2.3) the encoder uses for a field that isn't fully indexed.
type Indexing int

const (
	// IncrementalIndexing adds the field to the dynamic table after emitting
	// it (representation 01xxxxxx, first byte starting 0x40).
	IncrementalIndexing Indexing = iota
	// WithoutIndexing never touches the dynamic table (representation with a
	// 4-bit prefix, first byte starting 0x00).
	WithoutIndexing
)

// Encoder serializes header fields into an HPACK block, maintaining its own
// dynamic table across calls so repeated fields reuse prior entries.
type Encoder struct {
	dynTable *dynamicTable
}

// NewEncoder creates an Encoder with the spec's default dynamic table size
// (§4.7/RFC 7541 default 4096).
func NewEncoder() *Encoder {
	return &Encoder{dynTable: newDynamicTable(constants.DefaultHpackTableSize)}
}

// SetMaxDynamicTableSize emits a dynamic-table-size-update representation
// (001xxxxx) and applies the new capacity to the local table; size 0 clears
// the table.
func (e *Encoder) SetMaxDynamicTableSize(buf *bytes.Buffer, size int) {
	encodeInteger(buf, uint64(size), 5, 0x20)
	e.dynTable.setMaxSize(size)
}

// EncodeField appends one header field's HPACK representation to buf,
// preferring (in order): a fully indexed static/dynamic-table match, then a
// name-indexed literal with the chosen Indexing mode, then a fully literal
// field.
func (e *Encoder) EncodeField(buf *bytes.Buffer, f HeaderField, mode Indexing) {
	if idx, ok := staticFindFull(f.Name, f.Value); ok {
		encodeInteger(buf, uint64(idx), 7, 0x80)
		return
	}
	if pos, ok := e.dynTable.findFull(f.Name, f.Value); ok {
		encodeInteger(buf, uint64(staticTableSize+pos+1), 7, 0x80)
		return
	}

	nameIdx, nameIndexed := 0, false
	if idx, ok := staticFindName(f.Name); ok {
		nameIdx, nameIndexed = idx, true
	} else if pos, ok := e.dynTable.findName(f.Name); ok {
		nameIdx, nameIndexed = staticTableSize+pos+1, true
	}

	switch mode {
	case IncrementalIndexing:
		if nameIndexed {
			encodeInteger(buf, uint64(nameIdx), 6, 0x40)
		} else {
			buf.WriteByte(0x40)
			encodeString(buf, f.Name)
		}
		encodeString(buf, f.Value)
		e.dynTable.insert(f.Name, f.Value)
	case WithoutIndexing:
		if nameIndexed {
			encodeInteger(buf, uint64(nameIdx), 4, 0x00)
		} else {
			buf.WriteByte(0x00)
			encodeString(buf, f.Name)
		}
		encodeString(buf, f.Value)
	}
}

// Encode serializes a full field list using mode for every field that
// isn't fully indexed, returning the HPACK block bytes.
func (e *Encoder) Encode(fields []HeaderField, mode Indexing) []byte {
	var buf bytes.Buffer
	for _, f := range fields {
		e.EncodeField(&buf, f, mode)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
