// Package progtest provides a framework for testing subprograms.
//
// The entry point is Test, which runs a prog.Program with a set of cases built
// with That.
package progtest

import (
	"io"
	"os"
	"strconv"
	"strings"
	"testing"

	"src.attrkit.dev/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
	checked bool
}

func (o output) matches(s string) bool {
	if !o.checked {
		return true
	}
	if o.partial {
		return strings.Contains(s, o.content)
	}
	return s == o.content
}

// That returns a new Case with the specified CLI arguments. The program name
// is prepended automatically.
//
// The new Case expects the program run to exit with 0 and write nothing to
// stdout or stderr. Use the methods to change these expectations.
func That(args ...string) Case {
	return Case{args: args, want: result{
		stdout: output{checked: true}, stderr: output{checked: true}}}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. Useful to mark tests that otherwise don't have
// any expectations.
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that expects the program to exit with the
// given code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that expects the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s, checked: true}
	return c
}

// WritesStdoutContaining returns an altered Case that expects the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true, checked: true}
	return c
}

// WritesStderr returns an altered Case that expects the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s, checked: true}
	return c
}

// WritesStderrContaining returns an altered Case that expects the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true, checked: true}
	return c
}

// AnyStderr returns an altered Case that accepts anything on stderr.
func (c Case) AnyStderr() Case {
	c.want.stderr = output{}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(t, p, c.stdin, c.args...)
			if exit != c.want.exit {
				t.Errorf("got exit %v, want %v", exit, c.want.exit)
			}
			if !c.want.stdout.matches(stdout) {
				t.Errorf("got stdout %q, want %s", stdout, c.want.stdout.describe())
			}
			if !c.want.stderr.matches(stderr) {
				t.Errorf("got stderr %q, want %s", stderr, c.want.stderr.describe())
			}
		})
	}
}

func (o output) describe() string {
	if o.partial {
		return "containing " + strconv.Quote(o.content)
	}
	return strconv.Quote(o.content)
}

// Run runs p with the given stdin and arguments, and returns its exit code and
// captured output.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	r0, w0 := pipe(t)
	r1, w1 := pipe(t)
	r2, w2 := pipe(t)

	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	outCh := readAllAsync(r1)
	errCh := readAllAsync(r2)

	exit = prog.Run([3]*os.File{r0, w1, w2}, append([]string{"attrkit"}, args...), p)
	w1.Close()
	w2.Close()
	return exit, <-outCh, <-errCh
}

func pipe(t *testing.T) (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

// Output is read concurrently so that programs writing more than a pipe buffer
// do not block.
func readAllAsync(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		ch <- string(b)
	}()
	return ch
}
