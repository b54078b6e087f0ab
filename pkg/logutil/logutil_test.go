package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Print("out 1")
	if got := buf.String(); !strings.Contains(got, "foo ") || !strings.HasSuffix(got, "out 1\n") {
		t.Errorf("got %q, want prefixed output ending in %q", got, "out 1\n")
	}

	logFile := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(logFile); err != nil {
		t.Fatal(err)
	}
	logger.Print("out 2")
	SetOutput(io.Discard)
	logger.Print("dropped")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); !strings.HasSuffix(got, "out 2\n") || strings.Contains(got, "dropped") {
		t.Errorf("log file content %q", got)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "missing", "log"))
	if err == nil {
		t.Errorf("want error for unwritable path")
	}
}
