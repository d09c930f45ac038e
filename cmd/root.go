package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardforge/boardforge/board/cache"
	"github.com/boardforge/boardforge/board/trace"
)

var (
	// CLI flags shared by every command
	logLevel     string // Log verbosity level
	defaultsPath string // Path to defaults.yaml with component constants

	// CLI flags for the build command
	scenePath   string // Scene YAML
	outPath     string // Output solid
	outFormat   string // ply, stl or obj; empty picks from the output extension
	cacheDir    string // Directory of persisted solids
	noCache     bool   // Keep built solids in memory only
	compress    bool   // zstd frame persisted solids
	manifestDB  string // sqlite manifest of persisted solids
	showSummary bool   // Print the placement summary to stdout
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boardforge",
	Short: "Procedural assembler for electronics board models",
}

// setupLogging applies --log and returns a logger tagged with a fresh run id.
func setupLogging() (*logrus.Entry, string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
	runID := uuid.NewString()
	return logrus.WithField("run", runID), runID
}

// manifestPath resolves --manifest, defaulting to a database inside the cache directory.
func manifestPath() string {
	if manifestDB != "" {
		return manifestDB
	}
	return filepath.Join(cacheDir, "manifest.db")
}

// buildCmd composes a scene file into a single solid
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a board scene into a PLY or STL solid",
	Run: func(cmd *cobra.Command, args []string) {
		log, runID := setupLogging()

		defaults, err := loadDefaults(defaultsPath)
		if err != nil {
			logrus.Fatalf("Failed to load defaults: %v", err)
		}
		sc, err := loadSceneConfig(scenePath)
		if err != nil {
			logrus.Fatalf("Failed to load scene: %v", err)
		}
		scene, err := sc.Scene(defaults)
		if err != nil {
			logrus.Fatalf("Invalid scene %s: %v", scenePath, err)
		}

		var opts []cache.Option
		if !noCache {
			opts = append(opts, cache.WithStore(cache.NewStore(cacheDir, compress)))
			mf := cache.NewManifest(manifestPath())
			defer mf.Close()
			opts = append(opts, cache.WithManifest(mf, runID))
		}
		manager := cache.NewManager(opts...)

		log.Infof("Building %d placements from %s", len(scene.Placements), scenePath)
		startTime := time.Now()

		tr := trace.NewPlacementTrace()
		solid, err := scene.Compose(manager, tr)
		if err != nil {
			logrus.Fatalf("Build failed: %v", err)
		}
		if err := writeSolid(outPath, outFormat, solid); err != nil {
			logrus.Fatalf("Failed to write %s: %v", outPath, err)
		}

		stats := manager.Stats()
		log.WithFields(logrus.Fields{
			"faces":       len(solid.Faces),
			"builds":      stats.Builds,
			"memory_hits": stats.MemoryHits,
			"disk_hits":   stats.DiskHits,
			"elapsed":     time.Since(startTime).Round(time.Millisecond),
		}).Infof("Wrote %s", outPath)

		if showSummary {
			printSummary(os.Stdout, trace.Summarize(tr), stats)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&defaultsPath, "defaults", "", "Path to defaults.yaml (built-in constants when empty)")

	buildCmd.Flags().StringVar(&scenePath, "scene", "", "Path to the scene YAML")
	buildCmd.Flags().StringVar(&outPath, "out", "board.ply", "Output file")
	buildCmd.Flags().StringVar(&outFormat, "format", "", "Output format (ply, stl, obj); taken from --out when empty")
	buildCmd.Flags().StringVar(&cacheDir, "cache-dir", ".boardforge-cache", "Directory of persisted part solids")
	buildCmd.Flags().BoolVar(&noCache, "no-cache", false, "Keep part solids in memory only")
	buildCmd.Flags().BoolVar(&compress, "compress", false, "Persist part solids zstd compressed")
	buildCmd.Flags().StringVar(&manifestDB, "manifest", "", "Cache manifest database (default <cache-dir>/manifest.db)")
	buildCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a placement summary to stdout")
	_ = buildCmd.MarkFlagRequired("scene")

	// Attach `build` as a subcommand to `root`
	rootCmd.AddCommand(buildCmd)
}
