package mesh

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// WritePLY encodes m as ASCII PLY. Coordinates are written with the shortest
// representation that parses back to the same float64, so a write/read cycle is
// lossless. Per-face colors are written as uchar red/green/blue/alpha properties.
func WritePLY(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("ply: %w", err)
	}
	colored := len(m.Colors) > 0
	bw := bufio.NewWriterSize(w, 256*1024)

	fmt.Fprintf(bw, "ply\nformat ascii 1.0\ncomment boardforge\n")
	fmt.Fprintf(bw, "element vertex %d\nproperty double x\nproperty double y\nproperty double z\n", len(m.Vertices))
	fmt.Fprintf(bw, "element face %d\nproperty list uchar int vertex_indices\n", len(m.Faces))
	if colored {
		fmt.Fprintf(bw, "property uchar red\nproperty uchar green\nproperty uchar blue\nproperty uchar alpha\n")
	}
	fmt.Fprintf(bw, "end_header\n")

	buf := make([]byte, 0, 96)
	for _, v := range m.Vertices {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, v.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, v.Y, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, v.Z, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	for i, f := range m.Faces {
		buf = buf[:0]
		buf = append(buf, '3')
		for _, idx := range f {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(idx), 10)
		}
		if colored {
			c := m.Colors[i]
			for _, ch := range [4]uint8{c.R, c.G, c.B, c.A} {
				buf = append(buf, ' ')
				buf = strconv.AppendUint(buf, uint64(ch), 10)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type plyHeader struct {
	vertices      int
	vertexProps   int
	faces         int
	faceColorProp []string
}

// ReadPLY decodes an ASCII PLY stream with triangular faces. Extra vertex
// properties after x, y, z are ignored; face color properties red, green, blue
// and optional alpha are honored.
func ReadPLY(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	hdr, err := readPLYHeader(sc)
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		Vertices: make([]r3.Vec, 0, hdr.vertices),
		Faces:    make([][3]int, 0, hdr.faces),
	}
	for i := 0; i < hdr.vertices; i++ {
		fields, err := nextFields(sc)
		if err != nil {
			return nil, fmt.Errorf("ply: vertex %d: %w", i, err)
		}
		if len(fields) < hdr.vertexProps || len(fields) < 3 {
			return nil, fmt.Errorf("ply: vertex %d: expected %d values, got %d", i, hdr.vertexProps, len(fields))
		}
		var xyz [3]float64
		for k := range xyz {
			if xyz[k], err = strconv.ParseFloat(fields[k], 64); err != nil {
				return nil, fmt.Errorf("ply: vertex %d: %w", i, err)
			}
		}
		m.Vertices = append(m.Vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}

	if len(hdr.faceColorProp) > 0 {
		m.Colors = make([]color.NRGBA, 0, hdr.faces)
	}
	for i := 0; i < hdr.faces; i++ {
		fields, err := nextFields(sc)
		if err != nil {
			return nil, fmt.Errorf("ply: face %d: %w", i, err)
		}
		if len(fields) < 4 || fields[0] != "3" {
			return nil, fmt.Errorf("ply: face %d: only triangles are supported", i)
		}
		var f [3]int
		for k := range f {
			if f[k], err = strconv.Atoi(fields[k+1]); err != nil {
				return nil, fmt.Errorf("ply: face %d: %w", i, err)
			}
		}
		m.Faces = append(m.Faces, f)
		if len(hdr.faceColorProp) == 0 {
			continue
		}
		rest := fields[4:]
		if len(rest) != len(hdr.faceColorProp) {
			return nil, fmt.Errorf("ply: face %d: expected %d color values, got %d", i, len(hdr.faceColorProp), len(rest))
		}
		c := color.NRGBA{A: 255}
		for k, name := range hdr.faceColorProp {
			v, err := strconv.ParseUint(rest[k], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("ply: face %d: %w", i, err)
			}
			switch name {
			case "red":
				c.R = uint8(v)
			case "green":
				c.G = uint8(v)
			case "blue":
				c.B = uint8(v)
			case "alpha":
				c.A = uint8(v)
			}
		}
		m.Colors = append(m.Colors, c)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("ply: %w", err)
	}
	return m, nil
}

func readPLYHeader(sc *bufio.Scanner) (plyHeader, error) {
	var hdr plyHeader
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return hdr, fmt.Errorf("ply: missing magic")
	}
	element := ""
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return hdr, fmt.Errorf("ply: unsupported format %q", strings.Join(fields[1:], " "))
			}
		case "comment", "obj_info":
		case "element":
			if len(fields) != 3 {
				return hdr, fmt.Errorf("ply: malformed element line %q", sc.Text())
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return hdr, fmt.Errorf("ply: bad element count %q", fields[2])
			}
			element = fields[1]
			switch element {
			case "vertex":
				hdr.vertices = n
			case "face":
				hdr.faces = n
			default:
				return hdr, fmt.Errorf("ply: unsupported element %q", element)
			}
		case "property":
			if len(fields) < 3 {
				return hdr, fmt.Errorf("ply: malformed property line %q", sc.Text())
			}
			name := fields[len(fields)-1]
			switch element {
			case "vertex":
				hdr.vertexProps++
			case "face":
				if fields[1] == "list" {
					continue
				}
				switch name {
				case "red", "green", "blue", "alpha":
					hdr.faceColorProp = append(hdr.faceColorProp, name)
				default:
					return hdr, fmt.Errorf("ply: unsupported face property %q", name)
				}
			default:
				return hdr, fmt.Errorf("ply: property outside of an element")
			}
		case "end_header":
			return hdr, nil
		default:
			return hdr, fmt.Errorf("ply: unexpected header line %q", sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return hdr, fmt.Errorf("ply: %w", err)
	}
	return hdr, fmt.Errorf("ply: header not terminated")
}

func nextFields(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}
