package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_DirIsValid(t *testing.T) {
	dir := TempDir(t)

	stat, err := os.Stat(dir)
	if err != nil {
		t.Errorf("TempDir returns %q which cannot be stated", dir)
	}
	if !stat.IsDir() {
		t.Errorf("TempDir returns %q which is not a dir", dir)
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)

	MustWriteFile(filepath.Join(dir, "a"), []byte("test"), 0600)

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestChdir(t *testing.T) {
	dir := TempDir(t)
	original := getWd()

	c := &cleanuper{}
	Chdir(c, dir)

	after := getWd()
	if after != dir {
		t.Errorf("pwd is now %q, want %q", after, dir)
	}

	c.runCleanups()
	restored := getWd()
	if restored != original {
		t.Errorf("pwd restored to %q, want %q", restored, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"a": "a content",
		"d": Dir{
			"d1": "d1 content",
			"dd": Dir{"dd1": "dd1 content"},
		},
	})

	testFileContent(t, "a", "a content")
	testFileContent(t, "d/d1", "d1 content")
	testFileContent(t, "d/dd/dd1", "dd1 content")
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("after Set, x = %d, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("after cleanup, x = %d, want 1", x)
	}
}

func getWd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	return dir
}

func testFileContent(t *testing.T, filename string, wantContent string) {
	t.Helper()
	content, err := os.ReadFile(filename)
	if err != nil {
		t.Errorf("Could not read %v: %v", filename, err)
		return
	}
	if string(content) != wantContent {
		t.Errorf("File %v is %q, want %q", filename, content, wantContent)
	}
}
