package fit

import "encoding/binary"

// protocolVersion and profileVersion are stamped into every FIT header.
// 0x10 is protocol 1.0; 21158 is the vendor's course-file profile
// version, bit-exact per spec.
const (
	protocolVersion byte   = 0x10
	profileVersion  uint16 = 21158
)

const headerSize = 14

// dotFIT is the 4-byte ASCII tag required at header offset 8.
var dotFIT = [4]byte{'.', 'F', 'I', 'T'}

// buildHeader returns the 14-byte FIT header for a body of dataSize bytes.
// Bytes 0-11 carry their own CRC in bytes 12-13; per spec.md §6.2 a zero
// header CRC is also valid, but computing it is cheap and more broadly
// compatible with strict readers.
func buildHeader(dataSize uint32) [headerSize]byte {
	var h [headerSize]byte

	h[0] = headerSize
	h[1] = protocolVersion
	binary.LittleEndian.PutUint16(h[2:4], profileVersion)
	binary.LittleEndian.PutUint32(h[4:8], dataSize)
	copy(h[8:12], dotFIT[:])

	crc := crcOf(h[:12])
	binary.LittleEndian.PutUint16(h[12:14], crc)

	return h
}
