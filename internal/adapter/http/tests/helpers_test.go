package tests

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func projectRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func migrationsFolder(t *testing.T) string {
	return filepath.Join(projectRoot(t), "db", "migrations")
}

func translationFolder(t *testing.T) string {
	return filepath.Join(projectRoot(t), "pkg", "translator", "translation")
}
