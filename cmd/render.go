package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardforge/boardforge/pattern/raster"
	"github.com/boardforge/boardforge/pattern/relief"
)

var (
	// CLI flags for the render command
	patternPath      string  // Pattern YAML
	patternStep      float64 // Grid pitch; defaults.grid_step when zero
	pngPath          string  // Raster output
	dpi              float64 // Raster resolution
	supersample      int     // Raster supersampling factor
	reliefPath       string  // Relief solid output
	reliefMode       string  // raised or engraved
	reliefBase       float64 // Slab thickness
	reliefHeight     float64 // Raised feature height
	reliefDepth      float64 // Engraving depth, 0 cuts through
	reliefResolution float64 // Heightfield sample spacing
)

// renderCmd draws a board pattern as an image and/or a relief solid
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a trace pattern to PNG and/or a relief solid",
	Run: func(cmd *cobra.Command, args []string) {
		log, _ := setupLogging()

		if pngPath == "" && reliefPath == "" {
			logrus.Fatalf("Nothing to render: pass --png and/or --relief")
		}
		defaults, err := loadDefaults(defaultsPath)
		if err != nil {
			logrus.Fatalf("Failed to load defaults: %v", err)
		}
		step := patternStep
		if step == 0 {
			step = defaults.Step
		}

		pc, err := loadPatternConfig(patternPath)
		if err != nil {
			logrus.Fatalf("Failed to load pattern: %v", err)
		}
		p, err := pc.Pattern()
		if err != nil {
			logrus.Fatalf("Invalid pattern %s: %v", patternPath, err)
		}
		log.Infof("Pattern %dx%d with %d pins and %d tracks", p.XCount, p.YCount, len(p.Pins), len(p.Tracks))

		if pngPath != "" {
			opts := raster.DefaultOptions(step)
			opts.DPI = dpi
			opts.Supersample = supersample
			img, err := raster.Render(p, opts)
			if err != nil {
				logrus.Fatalf("Raster render failed: %v", err)
			}
			if err := raster.SavePNG(pngPath, img); err != nil {
				logrus.Fatalf("Failed to write %s: %v", pngPath, err)
			}
			log.Infof("Wrote %s (%dx%d px)", pngPath, img.Bounds().Dx(), img.Bounds().Dy())
		}

		if reliefPath != "" {
			mode, err := relief.ParseMode(reliefMode)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			opts := relief.DefaultOptions(step)
			opts.Mode = mode
			opts.Base = reliefBase
			opts.Relief = reliefHeight
			opts.Depth = reliefDepth
			opts.Resolution = reliefResolution
			solid, err := relief.Build(p, opts)
			if err != nil {
				logrus.Fatalf("Relief build failed: %v", err)
			}
			if err := writeSolid(reliefPath, "", solid); err != nil {
				logrus.Fatalf("Failed to write %s: %v", reliefPath, err)
			}
			log.Infof("Wrote %s (%d faces)", reliefPath, len(solid.Faces))
		}
	},
}

func init() {
	renderCmd.Flags().StringVar(&patternPath, "pattern", "", "Path to the pattern YAML")
	renderCmd.Flags().Float64Var(&patternStep, "step", 0, "Grid pitch in mm (defaults grid_step when 0)")

	// raster output
	renderCmd.Flags().StringVar(&pngPath, "png", "", "Write the pattern image to this PNG file")
	renderCmd.Flags().Float64Var(&dpi, "dpi", 300, "Image resolution in dots per inch")
	renderCmd.Flags().IntVar(&supersample, "supersample", 4, "Draw at this multiple of the resolution, then downsample")

	// relief output
	renderCmd.Flags().StringVar(&reliefPath, "relief", "", "Write the relief solid to this PLY or STL file")
	renderCmd.Flags().StringVar(&reliefMode, "mode", "raised", "Relief mode (raised, engraved)")
	renderCmd.Flags().Float64Var(&reliefBase, "base", 1, "Relief slab thickness in mm")
	renderCmd.Flags().Float64Var(&reliefHeight, "height", 1, "Raised feature height in mm")
	renderCmd.Flags().Float64Var(&reliefDepth, "depth", 0, "Engraving depth in mm (0 cuts through)")
	renderCmd.Flags().Float64Var(&reliefResolution, "resolution", 0.1, "Relief sample spacing in mm")
	_ = renderCmd.MarkFlagRequired("pattern")

	rootCmd.AddCommand(renderCmd)
}
