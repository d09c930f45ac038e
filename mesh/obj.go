package mesh

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
)

// objMaterial names the material for a face color.
func objMaterial(c color.NRGBA) string {
	return fmt.Sprintf("c%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// objGroups returns the distinct face colors in order of first use and the
// faces painted with each.
func objGroups(m *Mesh) ([]color.NRGBA, map[color.NRGBA][]int) {
	var order []color.NRGBA
	groups := make(map[color.NRGBA][]int)
	for i, c := range m.Colors {
		if _, ok := groups[c]; !ok {
			order = append(order, c)
		}
		groups[c] = append(groups[c], i)
	}
	return order, groups
}

// WriteOBJ encodes m as Wavefront OBJ. Faces of a colored mesh are grouped by
// color under usemtl statements naming materials from WriteMTL; mtllib, when
// set, is written as the material library reference.
func WriteOBJ(w io.Writer, m *Mesh, mtllib string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("obj: %w", err)
	}
	bw := bufio.NewWriterSize(w, 256*1024)
	fmt.Fprintf(bw, "# boardforge\n")
	if mtllib != "" && len(m.Colors) > 0 {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}

	buf := make([]byte, 0, 96)
	for _, v := range m.Vertices {
		buf = append(buf[:0], 'v')
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, c, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	writeFace := func(f [3]int) error {
		buf = append(buf[:0], 'f')
		for _, idx := range f {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(idx+1), 10)
		}
		buf = append(buf, '\n')
		_, err := bw.Write(buf)
		return err
	}

	if len(m.Colors) == 0 {
		for _, f := range m.Faces {
			if err := writeFace(f); err != nil {
				return err
			}
		}
		return bw.Flush()
	}
	order, groups := objGroups(m)
	for _, c := range order {
		fmt.Fprintf(bw, "usemtl %s\n", objMaterial(c))
		for _, i := range groups[c] {
			if err := writeFace(m.Faces[i]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteMTL writes one material per distinct face color of m, with the alpha
// channel as dissolve. An uncolored mesh yields an empty library.
func WriteMTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	order, _ := objGroups(m)
	for _, c := range order {
		fmt.Fprintf(bw, "newmtl %s\nKd %s %s %s\nd %s\n\n",
			objMaterial(c), unit(c.R), unit(c.G), unit(c.B), unit(c.A))
	}
	return bw.Flush()
}

func unit(v uint8) string {
	return strconv.FormatFloat(float64(v)/255, 'f', 4, 64)
}
