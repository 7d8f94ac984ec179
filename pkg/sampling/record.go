// Package sampling draws area-uniform, reproducible surface samples over a
// mesh and optionally reorders them by a caller-supplied score.
package sampling

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	vmath "github.com/Faultbox/meshbake/pkg/math"
)

// RecordSize is the byte size of one encoded Record.
const RecordSize = 12

// ErrTruncatedRecords is returned when decoding a buffer that is not a whole number of records.
var ErrTruncatedRecords = errors.New("truncated sample records")

// Record is one baked sample: a barycentric coordinate and the triangle it lies on.
// The third weight is implied as 1 - Coord.X - Coord.Y.
//
// Encoded layout (little-endian, no padding):
//
//	offset 0: u     float32
//	offset 4: v     float32
//	offset 8: index uint32
type Record struct {
	Coord vmath.Vec2
	Index uint32
}

// ByteSize returns the encoded size of n records.
func ByteSize(n int) int {
	return n * RecordSize
}

// Put writes r into buf, which must hold at least RecordSize bytes.
func (r Record) Put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(r.Coord.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(r.Coord.Y))
	binary.LittleEndian.PutUint32(buf[8:12], r.Index)
}

// Marshal encodes samples into a buffer suitable for a structured GPU buffer upload.
func Marshal(samples []Record) []byte {
	buf := make([]byte, ByteSize(len(samples)))
	for i, r := range samples {
		r.Put(buf[i*RecordSize:])
	}
	return buf
}

// Unmarshal decodes a buffer produced by Marshal.
func Unmarshal(data []byte) ([]Record, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedRecords, len(data))
	}
	samples := make([]Record, len(data)/RecordSize)
	for i := range samples {
		b := data[i*RecordSize:]
		samples[i] = Record{
			Coord: vmath.Vec2{
				X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
				Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
			},
			Index: binary.LittleEndian.Uint32(b[8:12]),
		}
	}
	return samples, nil
}
