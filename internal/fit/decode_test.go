package fit

import (
	"encoding/binary"
	"fmt"
)

// decodedRecord is one data record recovered by testDecode, keyed by
// field number to the raw little-endian bytes for that field.
type decodedRecord struct {
	globalNum uint16
	fields    map[byte][]byte
}

func (r decodedRecord) uint8(num byte) byte   { return r.fields[num][0] }
func (r decodedRecord) uint16(num byte) uint16 {
	return binary.LittleEndian.Uint16(r.fields[num])
}
func (r decodedRecord) uint32(num byte) uint32 {
	return binary.LittleEndian.Uint32(r.fields[num])
}
func (r decodedRecord) sint32(num byte) int32 {
	return int32(binary.LittleEndian.Uint32(r.fields[num]))
}
func (r decodedRecord) string(num byte) string {
	b := r.fields[num]
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// testDecode is a minimal, test-only FIT reader: just enough of the
// protocol to round-trip what Encoder writes, for self-checking our own
// output rather than trusting a second implementation.
func testDecode(data []byte) ([]decodedRecord, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("fit: short file")
	}

	hdrLen := int(data[0])
	dataSize := binary.LittleEndian.Uint32(data[4:8])
	body := data[hdrLen : hdrLen+int(dataSize)]

	type def struct {
		globalNum uint16
		fields    []fieldDef
	}

	defs := make(map[byte]def)
	var out []decodedRecord

	pos := 0
	for pos < len(body) {
		h := body[pos]
		pos++

		localType := h & 0x0F
		isDefinition := h&0x40 != 0

		if isDefinition {
			pos++ // reserved
			pos++ // architecture
			globalNum := binary.LittleEndian.Uint16(body[pos : pos+2])
			pos += 2
			numFields := int(body[pos])
			pos++

			fields := make([]fieldDef, 0, numFields)
			for i := 0; i < numFields; i++ {
				fields = append(fields, fieldDef{
					num:      body[pos],
					size:     body[pos+1],
					baseType: body[pos+2],
				})
				pos += 3
			}

			defs[localType] = def{globalNum: globalNum, fields: fields}

			continue
		}

		d, ok := defs[localType]
		if !ok {
			return nil, fmt.Errorf("fit: data record for undefined local type %d", localType)
		}

		rec := decodedRecord{globalNum: d.globalNum, fields: make(map[byte][]byte)}
		for _, f := range d.fields {
			rec.fields[f.num] = body[pos : pos+int(f.size)]
			pos += int(f.size)
		}

		out = append(out, rec)
	}

	return out, nil
}
