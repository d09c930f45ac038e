package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/board/components"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults_ShippedFileMatchesBuiltIn(t *testing.T) {
	// Skip if defaults.yaml not available
	path := "../defaults.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("defaults.yaml not found, skipping integration test")
	}

	// GIVEN the defaults.yaml shipped with the repository
	got, err := loadDefaults(path)
	require.NoError(t, err)

	// THEN it restates the built-in constants exactly
	assert.Empty(t, cmp.Diff(components.DefaultConfig(), got))
}

func TestLoadDefaults_EmptyPathIsBuiltIn(t *testing.T) {
	got, err := loadDefaults("")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(components.DefaultConfig(), got))
}

func TestLoadDefaults_PartialFileKeepsOtherValues(t *testing.T) {
	// GIVEN a file overriding only the board thickness and the chip color
	path := writeFile(t, "defaults.yaml", "board:\n  thickness: 2.0\nchip:\n  color: \"#102030\"\n")

	got, err := loadDefaults(path)
	require.NoError(t, err)

	// THEN exactly those fields change
	want := components.DefaultConfig()
	want.Board.Thickness = 2.0
	want.Chip.Color = components.RGB(0x10, 0x20, 0x30)
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLoadDefaults_UnknownFieldIsRejected(t *testing.T) {
	// a typo must not silently fall back to the built-in value
	path := writeFile(t, "defaults.yaml", "board:\n  thicknes: 2.0\n")
	_, err := loadDefaults(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thicknes")
}

func TestLoadDefaults_InvalidValueIsRejected(t *testing.T) {
	path := writeFile(t, "defaults.yaml", "board:\n  contact_pad_radius: 0.2\n")
	_, err := loadDefaults(path)
	assert.ErrorIs(t, err, board.ErrInvalidParameter)

	path = writeFile(t, "defaults.yaml", "track:\n  color: green\n")
	_, err = loadDefaults(path)
	assert.Error(t, err)
}

func TestLoadDefaults_MissingFile(t *testing.T) {
	_, err := loadDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
