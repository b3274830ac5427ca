package fit

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

func TestHeaderShapeAndCRC(t *testing.T) {
	h := buildHeader(1234)

	assert.Equal(t, byte(headerSize), h[0])
	assert.Equal(t, protocolVersion, h[1])
	assert.Equal(t, uint32(1234), binary.LittleEndian.Uint32(h[4:8]))
	assert.Equal(t, ".FIT", string(h[8:12]))
	assert.Equal(t, crcOf(h[:12]), binary.LittleEndian.Uint16(h[12:14]))
}

func TestEncoderRoundTripsFileIDAndCourse(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)

	created := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	require.NoError(t, e.WriteFileID(created))
	require.NoError(t, e.WriteFileCreator(100, 1))
	require.NoError(t, e.WriteCourse("Ridge Loop", SportCode("cycling")))
	require.NoError(t, e.Close())

	recs, err := testDecode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, globalFileID, recs[0].globalNum)
	assert.Equal(t, fileTypeCourse, recs[0].uint8(0))
	assert.Equal(t, manufacturerDevelopment, recs[0].uint16(1))
	assert.Equal(t, encodeTime(created), recs[0].uint32(4))

	assert.Equal(t, globalFileCreator, recs[1].globalNum)
	assert.Equal(t, uint16(100), recs[1].uint16(0))

	assert.Equal(t, globalCourse, recs[2].globalNum)
	assert.Equal(t, SportCode("cycling"), recs[2].uint8(4))
	assert.Equal(t, "Ridge Loop", recs[2].string(5))
}

func TestEncoderRoundTripsRecordsAndCoursePoints(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)

	base := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	require.NoError(t, e.WriteFileID(base))
	require.NoError(t, e.WriteEventStart(base))
	require.NoError(t, e.WriteRecord(base, 45.0, -122.0, measure.Meters(0)))
	require.NoError(t, e.WriteRecord(base.Add(time.Minute), 45.001, -122.001, measure.Meters(150.25)))
	require.NoError(t, e.WriteCoursePoint(base.Add(30*time.Second), 45.0005, -122.0005, measure.Meters(75), pointtype.Water, "Spring"))
	require.NoError(t, e.WriteEventStop(base.Add(time.Minute)))
	require.NoError(t, e.Close())

	recs, err := testDecode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, recs, 6)

	assert.Equal(t, globalEvent, recs[1].globalNum)
	assert.Equal(t, eventTypeStart, recs[1].uint8(1))

	assert.Equal(t, globalRecord, recs[2].globalNum)
	assert.Equal(t, measure.Degrees(45.0).ToSemicircles(), measure.Semicircles(recs[2].sint32(0)))
	assert.Equal(t, uint32(0), recs[2].uint32(5))

	assert.Equal(t, globalRecord, recs[3].globalNum)
	assert.Equal(t, measure.Meters(150.25).ToCentimeters(), measure.Centimeters(recs[3].uint32(5)))

	assert.Equal(t, globalCoursePoint, recs[4].globalNum)
	assert.Equal(t, byte(pointtype.Water), recs[4].uint8(5))
	assert.Equal(t, "Spring", recs[4].string(6))
}

// TestVeryLongCoursePointNameTruncates is scenario 5 from spec.md §8: a
// course point name far longer than its field can hold is truncated to
// fit, without splitting a multi-byte UTF-8 rune, and stays
// null-terminated.
func TestVeryLongCoursePointNameTruncates(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)

	longName := strings.Repeat("Aid Station ", 20) + "café"
	require.NoError(t, e.WriteFileID(time.Now()))
	require.NoError(t, e.WriteCoursePoint(time.Time{}, 0, 0, 0, pointtype.AidStation, longName))
	require.NoError(t, e.Close())

	recs, err := testDecode(buf.Bytes())
	require.NoError(t, err)

	decodedName := recs[1].string(6)
	assert.LessOrEqual(t, len(decodedName), coursePointNameFieldSize-1)
	assert.True(t, strings.HasPrefix(longName, decodedName))

	raw := recs[1].fields[6]
	assert.Len(t, raw, coursePointNameFieldSize)
	assert.Equal(t, byte(0), raw[len(decodedName)])
}

func TestTruncateUTF8NeverSplitsARune(t *testing.T) {
	b := []byte("café")
	got := truncateUTF8(b, len(b)-1)
	assert.Equal(t, []byte("caf"), got)
}

func TestEncoderTrailerCRCValidates(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	require.NoError(t, e.WriteFileID(time.Now()))
	require.NoError(t, e.Close())

	data := buf.Bytes()
	trailer := binary.LittleEndian.Uint16(data[len(data)-2:])
	assert.Equal(t, crcOf(data[:len(data)-2]), trailer)
}

func TestLocalType0IsReusedBetweenFileIDAndFileCreator(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	require.NoError(t, e.WriteFileID(time.Now()))
	require.NoError(t, e.WriteFileCreator(1, 1))
	require.NoError(t, e.Close())

	body := buf.Bytes()[headerSize : len(buf.Bytes())-2]
	// First definition record: local type 0 defined as FileId.
	assert.Equal(t, byte(0x40), body[0])
	assert.Equal(t, globalFileID, binary.LittleEndian.Uint16(body[3:5]))
	// Second definition record, after FileId's 21-byte definition and
	// 14-byte data record: local type 0 redefined as FileCreator.
	assert.Equal(t, byte(0x40), body[35])
	assert.Equal(t, globalFileCreator, binary.LittleEndian.Uint16(body[38:40]))
}
