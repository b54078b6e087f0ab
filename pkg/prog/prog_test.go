package prog_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"src.attrkit.dev/pkg/logutil"
	. "src.attrkit.dev/pkg/prog"
	"src.attrkit.dev/pkg/prog/progtest"
)

var (
	Test = progtest.Test
	That = progtest.That
)

func TestCommonFlagHandling(t *testing.T) {
	Test(t, testProgram{},
		That("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		That("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		That("-help").
			WritesStdoutContaining("Usage: attrkit [flags] command [args]"),
	)
}

func TestLogFlag(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log")
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })

	Test(t, testProgram{logMsg: "hello"},
		That("-log", logPath).DoesNothing(),
		That("-log", filepath.Join(t.TempDir(), "no", "such", "dir")).
			WritesStderrContaining("no such file or directory"),
	)

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Errorf("log file is empty")
	}
}

func TestFlagsPassedToProgram(t *testing.T) {
	Test(t, testProgram{echoDB: true},
		That("-db", "a.db", "ls").WritesStdout("a.db [ls]\n"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		That().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		That().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		That().ExitsWith(0),
	)
}

var testLogger = logutil.GetLogger("[prog-test] ")

type testProgram struct {
	echoDB    bool
	logMsg    string
	returnErr error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.echoDB {
		fmt.Fprintln(fds[1], f.DB, args)
	}
	if p.logMsg != "" {
		testLogger.Println(p.logMsg)
	}
	return p.returnErr
}
