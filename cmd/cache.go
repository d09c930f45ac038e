package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardforge/boardforge/board/cache"
)

// key filter for cache list
var listKey string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the persisted part cache",
}

// --- boardforge cache list ---

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted solids recorded in the manifest",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		mf := cache.NewManifest(manifestPath())
		defer mf.Close()

		entries, err := listEntries(context.Background(), mf, listKey)
		if err != nil {
			logrus.Fatalf("Failed to read cache manifest: %v", err)
		}
		files, err := cache.NewStore(cacheDir, false).Files()
		if err != nil {
			logrus.Fatalf("Failed to list cache directory: %v", err)
		}
		if err := printEntries(os.Stdout, entries, len(files)); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// --- boardforge cache clear ---

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every persisted solid and empty the manifest",
	Run: func(cmd *cobra.Command, args []string) {
		log, _ := setupLogging()
		removed, err := cache.NewStore(cacheDir, false).Clear()
		if err != nil {
			logrus.Fatalf("Failed to clear %s after %d files: %v", cacheDir, removed, err)
		}
		mf := cache.NewManifest(manifestPath())
		defer mf.Close()
		rows, err := mf.Clear(context.Background())
		if err != nil {
			logrus.Fatalf("Failed to clear cache manifest: %v", err)
		}
		log.Infof("Removed %d files and %d manifest entries from %s", removed, rows, cacheDir)
	},
}

// listEntries returns the whole manifest, or only the entry for key when key
// is set.
func listEntries(ctx context.Context, mf *cache.Manifest, key string) ([]cache.Entry, error) {
	if key == "" {
		return mf.List(ctx)
	}
	e, ok, err := mf.Lookup(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return []cache.Entry{e}, nil
}

// printEntries writes the manifest as a table followed by a one-line total.
func printEntries(w io.Writer, entries []cache.Entry, files int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tFACES\tFILE\tRUN\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", e.Kind, e.Faces, e.File, shortRunID(e.RunID), e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d manifest entries, %d files in %s\n", len(entries), files, cacheDir)
	return err
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	for _, c := range []*cobra.Command{cacheListCmd, cacheClearCmd} {
		c.Flags().StringVar(&cacheDir, "cache-dir", ".boardforge-cache", "Directory of persisted part solids")
		c.Flags().StringVar(&manifestDB, "manifest", "", "Cache manifest database (default <cache-dir>/manifest.db)")
	}
	cacheListCmd.Flags().StringVar(&listKey, "key", "", "Show only the entry with this cache key")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}
