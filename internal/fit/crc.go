package fit

// CRC-16 nibble lookup table as defined by the FIT protocol (Garmin/ANT+),
// the same table-driven shape as the teacher's IL2P CRC
// (src/il2p_crc.go) but a different polynomial and no Hamming coding —
// FIT's CRC runs nibble-by-nibble, XOR-based, starting from zero.
var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400,
	0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401,
	0x5000, 0x9C01, 0x8801, 0x4400,
}

// crcUpdate folds one byte into a running CRC-16 value.
func crcUpdate(crc uint16, b byte) uint16 {
	crc = (crc >> 4) ^ crcTable[(crc^uint16(b))&0xF]
	crc = (crc >> 4) ^ crcTable[(crc^uint16(b>>4))&0xF]

	return crc
}

// crcOf computes the FIT CRC-16 over data, starting from zero, as required
// for both the header CRC and the file trailer CRC (spec.md §4.6, §6.2).
func crcOf(data []byte) uint16 {
	var crc uint16

	for _, b := range data {
		crc = crcUpdate(crc, b)
	}

	return crc
}
