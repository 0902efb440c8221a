package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.crush.sh/pkg/testutil"
)

func TestGetLogger_FollowsSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	logger := GetLogger("[test] ")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Println("hello")
	// The prefix goes right before the message, after the timestamp.
	if !strings.HasSuffix(buf.String(), " [test] hello\n") {
		t.Errorf("log output is %q, want it to end with %q", buf.String(), " [test] hello\n")
	}

	buf.Reset()
	SetOutput(io.Discard)
	logger.Println("dropped")
	if buf.Len() != 0 {
		t.Errorf("log output is %q after discarding", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	dir := testutil.TempDir(t)
	fname := filepath.Join(dir, "log")
	logger := GetLogger("[file] ")

	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	SetOutputFile("")

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[file] to file") {
		t.Errorf("log file has %q", content)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	dir := testutil.TempDir(t)
	if err := SetOutputFile(filepath.Join(dir, "no", "such", "dir")); err == nil {
		t.Errorf("SetOutputFile in missing dir returns nil error")
	}
}
