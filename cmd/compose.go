package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardforge/boardforge/mesh"
)

var (
	composeFromPaths []string
	composeOut       string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Merge several PLY solids into one",
	Long:  "Load several PLY solids and concatenate them into one file. Shells are kept separate; nothing is merged or deduplicated.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if len(composeFromPaths) == 0 {
			logrus.Fatalf("at least one --from flag is required")
		}

		var parts []*mesh.Mesh
		for _, path := range composeFromPaths {
			m, err := readSolid(path)
			if err != nil {
				logrus.Fatalf("Failed to load solid %s: %v", path, err)
			}
			parts = append(parts, m)
		}

		merged := mesh.Concat(parts...)
		if err := writeSolid(composeOut, "", merged); err != nil {
			logrus.Fatalf("Failed to write %s: %v", composeOut, err)
		}
		logrus.Infof("Composed %d solids into %s (%d faces)", len(parts), composeOut, len(merged.Faces))
	},
}

func init() {
	composeCmd.Flags().StringArrayVar(&composeFromPaths, "from", nil, "Path to a PLY solid (can be repeated)")
	composeCmd.Flags().StringVar(&composeOut, "out", "composed.ply", "Output file")
	_ = composeCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(composeCmd)
}
