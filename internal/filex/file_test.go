package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "nested", "fuel.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Join(tmp, "data", "nested"))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("fuel.db"))
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "exports")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	err := EnsureParentDir(filepath.Join(blocker, "fuel.xlsx"))
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestWriteFileAtomic(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out", "fuel.xlsx")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}
