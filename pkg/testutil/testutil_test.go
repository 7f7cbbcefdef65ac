package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet(t *testing.T) {
	v := 1
	t.Run("subtest", func(t *testing.T) {
		Set(t, &v, 2)
		if v != 2 {
			t.Errorf("got %d, want 2", v)
		}
	})
	if v != 1 {
		t.Errorf("after cleanup got %d, want 1", v)
	}
}

func TestSetenv(t *testing.T) {
	const name = "ROOST_TESTUTIL_VAR"
	os.Unsetenv(name)
	t.Run("subtest", func(t *testing.T) {
		Setenv(t, name, "value")
		if got := os.Getenv(name); got != "value" {
			t.Errorf("got %q, want %q", got, "value")
		}
	})
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("variable still set after cleanup")
	}
}

func TestInTempDir(t *testing.T) {
	pwd, _ := os.Getwd()
	var dir string
	t.Run("subtest", func(t *testing.T) {
		dir = InTempDir(t)
		MustWriteFile(filepath.Join("a", "b"), "content")
		if bs, err := os.ReadFile(filepath.Join(dir, "a", "b")); string(bs) != "content" {
			t.Errorf("got %q, %v", bs, err)
		}
	})
	if now, _ := os.Getwd(); now != pwd {
		t.Errorf("working directory not restored: %q", now)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("temp dir not removed")
	}
}
