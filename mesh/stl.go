package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteSTL encodes m as binary STL. Colors are dropped; STL has no portable
// per-face color.
func WriteSTL(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	if uint64(len(m.Faces)) > math.MaxUint32 {
		return fmt.Errorf("stl: %d faces exceed the format limit", len(m.Faces))
	}
	bw := bufio.NewWriterSize(w, 256*1024)

	var header [80]byte
	copy(header[:], "boardforge binary stl")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(m.Faces)))
	if _, err := bw.Write(count[:]); err != nil {
		return err
	}

	var rec [50]byte
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := faceNormal(a, b, c)
		vals := [12]float64{n.X, n.Y, n.Z, a.X, a.Y, a.Z, b.X, b.Y, b.Z, c.X, c.Y, c.Z}
		for i, v := range vals {
			binary.LittleEndian.PutUint32(rec[i*4:], math.Float32bits(float32(v)))
		}
		rec[48], rec[49] = 0, 0
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
