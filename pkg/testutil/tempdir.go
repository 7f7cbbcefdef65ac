package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a temporary directory, and removes it when the test
// finishes. The returned path has symlinks resolved, so that it can be
// compared against paths reported by the OS.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "roosttest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory and changes
// back to the original working directory when the test finishes.
func InTempDir(c Cleanuper) string {
	pwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	dir := TempDir(c)
	MustChdir(dir)
	c.Cleanup(func() { MustChdir(pwd) })
	return dir
}
