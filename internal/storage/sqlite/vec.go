package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"
)

// serializeVector encodes a float32 vector as the little-endian BLOB
// format sqlite-vec expects for float[] columns.
func serializeVector(vector []float32) ([]byte, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("cannot serialize empty vector")
	}
	buf := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf, nil
}
