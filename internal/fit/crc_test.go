package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCrcOfEmpty(t *testing.T) {
	assert.Equal(t, uint16(0), crcOf(nil))
}

func TestCrcIsDeterministic(t *testing.T) {
	data := []byte("a FIT course file body")
	assert.Equal(t, crcOf(data), crcOf(data))
}

func TestCrcDistinguishesSingleByteChange(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 5}
	assert.NotEqual(t, crcOf(a), crcOf(b))
}

// TestPropertyCrcIncrementalMatchesBulk checks that folding a CRC byte by
// byte across two halves of a buffer gives the same result as crcOf over
// the whole buffer at once, for arbitrary split points.
func TestPropertyCrcIncrementalMatchesBulk(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "data")
		split := rapid.IntRange(0, len(data)).Draw(rt, "split")

		var crc uint16
		for _, b := range data[:split] {
			crc = crcUpdate(crc, b)
		}
		for _, b := range data[split:] {
			crc = crcUpdate(crc, b)
		}

		assert.Equal(rt, crcOf(data), crc)
	})
}
