// Package fit implements component C6: a minimal, write-only encoder for
// the Garmin FIT course file format (spec.md §4.6, §6.2). It supports
// exactly the message set a course file needs — FileId, FileCreator,
// Course, Lap, Event, Record, CoursePoint — and nothing else.
package fit

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

// Local message types. FileId and the final FileCreator message share
// local type 0: by the time FileCreator is written, local 0's last use
// was FileId at the very start of the file, so redefining it costs one
// extra definition record instead of reserving a local type that's
// otherwise unused for the whole body, the same tradeoff real Garmin
// encoders make.
const (
	localFileIDOrCreator byte = 0
	localCourse          byte = 1
	localLap             byte = 2
	localEvent           byte = 3
	localRecord          byte = 4
	localCoursePoint     byte = 5
)

// Field widths are bit-exact per spec: Course.name is 15 bytes,
// CoursePoint.name is 16 bytes, both including the null terminator.
const courseNameFieldSize = 15
const coursePointNameFieldSize = 16

// Encoder buffers a FIT course file body and writes the complete file
// (header, body, trailer CRC) on Close. Buffering is required because
// the header declares the body's length before any byte of the body is
// known to be final.
type Encoder struct {
	w    io.Writer
	body bytes.Buffer

	curDef map[byte]uint16
	err    error
}

// NewEncoder returns an Encoder that will write a single FIT course file
// to w when Close is called.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, curDef: make(map[byte]uint16)}
}

func (e *Encoder) fail(err error) error {
	if e.err == nil {
		e.err = err
	}

	return e.err
}

// ensureDefinition writes a definition record for localType/globalNum if
// it isn't already the most recently defined message for that local
// type.
func (e *Encoder) ensureDefinition(localType byte, globalNum uint16, fields []fieldDef) {
	if g, ok := e.curDef[localType]; ok && g == globalNum {
		return
	}

	e.body.WriteByte(0x40 | localType)
	e.body.WriteByte(0) // reserved
	e.body.WriteByte(0) // architecture: little endian
	putUint16(&e.body, globalNum)
	e.body.WriteByte(byte(len(fields)))

	for _, f := range fields {
		e.body.WriteByte(f.num)
		e.body.WriteByte(f.size)
		e.body.WriteByte(f.baseType)
	}

	e.curDef[localType] = globalNum
}

func (e *Encoder) dataHeader(localType byte) {
	e.body.WriteByte(localType)
}

var fileIDFields = []fieldDef{
	newField(0, baseTypeEnum),
	newField(1, baseTypeUInt16),
	newField(2, baseTypeUInt16),
	newField(3, baseTypeUInt32z),
	newField(4, baseTypeUInt32),
}

// WriteFileID writes the mandatory leading FileId message identifying
// this as a course file.
func (e *Encoder) WriteFileID(created time.Time) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localFileIDOrCreator, globalFileID, fileIDFields)
	e.dataHeader(localFileIDOrCreator)
	putUint8(&e.body, fileTypeCourse)
	putUint16(&e.body, manufacturerDevelopment)
	putUint16(&e.body, 0) // product
	putUint32(&e.body, 0) // serial_number
	putUint32(&e.body, encodeTime(created))

	return nil
}

var fileCreatorFields = []fieldDef{
	newField(0, baseTypeUInt16),
	newField(1, baseTypeUInt8),
}

// WriteFileCreator writes the software/hardware version stamp that
// conventionally follows FileId.
func (e *Encoder) WriteFileCreator(softwareVersion uint16, hardwareVersion uint8) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localFileIDOrCreator, globalFileCreator, fileCreatorFields)
	e.dataHeader(localFileIDOrCreator)
	putUint16(&e.body, softwareVersion)
	putUint8(&e.body, hardwareVersion)

	return nil
}

var courseFields = []fieldDef{
	newField(4, baseTypeEnum),
	newStringField(5, courseNameFieldSize),
}

// WriteCourse writes the Course message carrying the course's display
// name and sport tag.
func (e *Encoder) WriteCourse(name string, sportCode byte) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localCourse, globalCourse, courseFields)
	e.dataHeader(localCourse)
	putUint8(&e.body, sportCode)
	putString(&e.body, name, courseNameFieldSize)

	return nil
}

var lapFields = []fieldDef{
	newField(253, baseTypeUInt32),
	newField(2, baseTypeUInt32),
	newField(3, baseTypeSInt32),
	newField(4, baseTypeSInt32),
	newField(5, baseTypeSInt32),
	newField(6, baseTypeSInt32),
	newField(7, baseTypeUInt32),
	newField(8, baseTypeUInt32),
	newField(9, baseTypeUInt32),
}

// LapSummary carries the handful of whole-course totals a single Lap
// message reports, per spec.md §4.6.
type LapSummary struct {
	StartTime     time.Time
	Timestamp     time.Time
	StartLat      measure.Degrees
	StartLon      measure.Degrees
	EndLat        measure.Degrees
	EndLon        measure.Degrees
	ElapsedTime   time.Duration
	TimerTime     time.Duration
	TotalDistance measure.Meters
}

// WriteLap writes the single whole-course Lap summary message.
func (e *Encoder) WriteLap(s LapSummary) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localLap, globalLap, lapFields)
	e.dataHeader(localLap)
	putUint32(&e.body, encodeTime(s.Timestamp))
	putUint32(&e.body, encodeTime(s.StartTime))
	putSInt32(&e.body, int32(s.StartLat.ToSemicircles()))
	putSInt32(&e.body, int32(s.StartLon.ToSemicircles()))
	putSInt32(&e.body, int32(s.EndLat.ToSemicircles()))
	putSInt32(&e.body, int32(s.EndLon.ToSemicircles()))
	putUint32(&e.body, uint32(s.ElapsedTime.Seconds()*1000))
	putUint32(&e.body, uint32(s.TimerTime.Seconds()*1000))
	putUint32(&e.body, uint32(s.TotalDistance.ToCentimeters()))

	return nil
}

var eventFields = []fieldDef{
	newField(253, baseTypeUInt32),
	newField(0, baseTypeEnum),
	newField(1, baseTypeEnum),
}

func (e *Encoder) writeEvent(timestamp time.Time, eventType byte) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localEvent, globalEvent, eventFields)
	e.dataHeader(localEvent)
	putUint32(&e.body, encodeTime(timestamp))
	putUint8(&e.body, eventTimer)
	putUint8(&e.body, eventType)

	return nil
}

// WriteEventStart writes the Timer/Start event that must precede the
// course's Record stream.
func (e *Encoder) WriteEventStart(timestamp time.Time) error {
	return e.writeEvent(timestamp, eventTypeStart)
}

// WriteEventStop writes the Timer/Stop event that must follow the
// course's Record stream.
func (e *Encoder) WriteEventStop(timestamp time.Time) error {
	return e.writeEvent(timestamp, eventTypeStopAll)
}

var recordFields = []fieldDef{
	newField(253, baseTypeUInt32),
	newField(0, baseTypeSInt32),
	newField(1, baseTypeSInt32),
	newField(5, baseTypeUInt32),
}

// WriteRecord writes one Record message: a trackpoint along the route at
// a given cumulative distance.
func (e *Encoder) WriteRecord(timestamp time.Time, lat, lon measure.Degrees, distance measure.Meters) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localRecord, globalRecord, recordFields)
	e.dataHeader(localRecord)
	putUint32(&e.body, encodeTime(timestamp))
	putSInt32(&e.body, int32(lat.ToSemicircles()))
	putSInt32(&e.body, int32(lon.ToSemicircles()))
	putUint32(&e.body, uint32(distance.ToCentimeters()))

	return nil
}

var coursePointFields = []fieldDef{
	newField(1, baseTypeUInt32),
	newField(2, baseTypeSInt32),
	newField(3, baseTypeSInt32),
	newField(4, baseTypeUInt32),
	newField(5, baseTypeEnum),
	newStringField(6, coursePointNameFieldSize),
}

// WriteCoursePoint writes one CoursePoint message: a named, typed
// annotation at a given cumulative distance along the course.
func (e *Encoder) WriteCoursePoint(timestamp time.Time, lat, lon measure.Degrees, distance measure.Meters, t pointtype.Type, name string) error {
	if e.err != nil {
		return e.err
	}

	e.ensureDefinition(localCoursePoint, globalCoursePoint, coursePointFields)
	e.dataHeader(localCoursePoint)
	putUint32(&e.body, encodeTime(timestamp))
	putSInt32(&e.body, int32(lat.ToSemicircles()))
	putSInt32(&e.body, int32(lon.ToSemicircles()))
	putUint32(&e.body, uint32(distance.ToCentimeters()))
	putUint8(&e.body, byte(t))
	putString(&e.body, name, coursePointNameFieldSize)

	return nil
}

// Close finalizes the file: it writes the header, the buffered body,
// and the trailing CRC-16 computed over the whole file, in one shot, to
// the underlying writer.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}

	if e.body.Len() > int(^uint32(0)) {
		return e.fail(fmt.Errorf("fit: encoded body too large: %d bytes", e.body.Len()))
	}

	header := buildHeader(uint32(e.body.Len()))

	if _, err := e.w.Write(header[:]); err != nil {
		return e.fail(err)
	}

	bodyBytes := e.body.Bytes()
	if _, err := e.w.Write(bodyBytes); err != nil {
		return e.fail(err)
	}

	crc := runningCRC(header[:], bodyBytes)

	var trailer [2]byte
	trailer[0] = byte(crc)
	trailer[1] = byte(crc >> 8)

	_, err := e.w.Write(trailer[:])

	return e.fail(err)
}

// runningCRC computes the FIT file trailer CRC: one continuous CRC-16
// run across the header followed by the body, starting from zero.
func runningCRC(parts ...[]byte) uint16 {
	var crc uint16

	for _, p := range parts {
		for _, b := range p {
			crc = crcUpdate(crc, b)
		}
	}

	return crc
}
