package fit

import (
	"bytes"
	"encoding/binary"
)

// fieldDef is one field in a FIT definition record: its field number
// within the global message, its base type, and its encoded size in
// bytes (variable for strings).
type fieldDef struct {
	num      byte
	size     byte
	baseType byte
}

func newField(num byte, baseType byte) fieldDef {
	return fieldDef{num: num, size: byte(baseTypeSize(baseType)), baseType: baseType}
}

func newStringField(num byte, size byte) fieldDef {
	return fieldDef{num: num, size: size, baseType: baseTypeString}
}

func putUint8(buf *bytes.Buffer, v byte) {
	buf.WriteByte(v)
}

func putUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putSInt32(buf *bytes.Buffer, v int32) {
	putUint32(buf, uint32(v))
}

// putString writes s into a fixed-width field of exactly size bytes:
// truncated to size-1 bytes at a UTF-8 rune boundary if needed (never
// splitting a multi-byte rune), null-terminated, and space-free padded
// with trailing zero bytes per the FIT string field convention (spec.md
// §4.6's "truncated to fit, never splitting a UTF-8 code point").
func putString(buf *bytes.Buffer, s string, size byte) {
	max := int(size) - 1
	if max < 0 {
		max = 0
	}

	b := []byte(s)
	if len(b) > max {
		b = truncateUTF8(b, max)
	}

	buf.Write(b)

	pad := int(size) - len(b)
	for i := 0; i < pad; i++ {
		buf.WriteByte(0)
	}
}

// truncateUTF8 shortens b to at most max bytes without splitting a
// multi-byte UTF-8 sequence: it backs off from max until it lands on a
// byte that is not a UTF-8 continuation byte (10xxxxxx).
func truncateUTF8(b []byte, max int) []byte {
	if max <= 0 {
		return nil
	}

	if len(b) <= max {
		return b
	}

	cut := max
	for cut > 0 && b[cut]&0xC0 == 0x80 {
		cut--
	}

	return b[:cut]
}
