package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardforge/boardforge/mesh"
)

// solidFormat picks the output format from an explicit name or the file extension.
func solidFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch strings.ToLower(format) {
	case "ply":
		return "ply", nil
	case "stl":
		return "stl", nil
	case "obj":
		return "obj", nil
	default:
		return "", fmt.Errorf("unknown solid format %q (want ply, stl or obj)", format)
	}
}

// writeSolid writes m to path as PLY, STL or OBJ, creating the parent
// directory. OBJ output of a colored mesh also writes its materials next to
// path with the .mtl extension.
func writeSolid(path, format string, m *mesh.Mesh) error {
	format, err := solidFormat(path, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	switch format {
	case "stl":
		return createWith(path, func(w io.Writer) error { return mesh.WriteSTL(w, m) })
	case "obj":
		var mtllib string
		if len(m.Colors) > 0 {
			mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
			if err := createWith(mtlPath, func(w io.Writer) error { return mesh.WriteMTL(w, m) }); err != nil {
				return err
			}
			mtllib = filepath.Base(mtlPath)
		}
		return createWith(path, func(w io.Writer) error { return mesh.WriteOBJ(w, m, mtllib) })
	default:
		return createWith(path, func(w io.Writer) error { return mesh.WritePLY(w, m) })
	}
}

func createWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// readSolid reads a PLY file. Files ending in .zst, such as compressed cache
// entries, are decompressed first.
func readSolid(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	m, err := mesh.ReadPLY(bufio.NewReaderSize(r, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

var (
	convertIn     string
	convertOut    string
	convertFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a PLY solid (or a compressed cache entry) to PLY, STL or OBJ",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		m, err := readSolid(convertIn)
		if err != nil {
			logrus.Fatalf("Failed to read %s: %v", convertIn, err)
		}
		if err := writeSolid(convertOut, convertFormat, m); err != nil {
			logrus.Fatalf("Failed to write %s: %v", convertOut, err)
		}
		logrus.Infof("Converted %s to %s (%d faces)", convertIn, convertOut, len(m.Faces))
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "Input PLY file (.ply or .ply.zst)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output file")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output format (ply, stl, obj); taken from --out when empty")
	_ = convertCmd.MarkFlagRequired("in")
	_ = convertCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(convertCmd)
}
