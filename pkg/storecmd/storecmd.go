// Package storecmd implements the attrkit commands that inspect and edit a
// dico store.
package storecmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"src.attrkit.dev/pkg/dico"
	"src.attrkit.dev/pkg/logutil"
	"src.attrkit.dev/pkg/prog"
)

var logger = logutil.GetLogger("[storecmd] ")

// Program is the attrkit store program.
type Program struct{}

// Run runs the command named by args[0].
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("no command given")
	}
	if f.DB == "" {
		return prog.BadUsage("-db is required")
	}
	cmd, args := args[0], args[1:]
	var run func(fds [3]*os.File, st *dico.Store, args []string) error
	switch cmd {
	case "ls":
		run = ls
	case "show":
		run = show
	case "import":
		run = importDoc
	case "rm":
		run = rm
	default:
		return prog.BadUsage(fmt.Sprintf("unknown command %q", cmd))
	}

	st, err := dico.NewStore(f.DB)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Printf("running %s %q on %s", cmd, args, f.DB)
	return run(fds, st, args)
}

func ls(fds [3]*os.File, st *dico.Store, args []string) error {
	if len(args) != 0 {
		return prog.BadUsage("ls takes no arguments")
	}
	docs, err := st.Docs()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		fmt.Fprintln(fds[1], doc)
	}
	return nil
}

func show(fds [3]*os.File, st *dico.Store, args []string) error {
	if len(args) != 1 {
		return prog.BadUsage("show takes exactly one argument")
	}
	m, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return dico.Encode(fds[1], m)
}

func importDoc(fds [3]*os.File, st *dico.Store, args []string) error {
	var r io.Reader
	switch len(args) {
	case 1:
		if isTerminal(fds[0]) {
			return prog.BadUsage("no input file given and stdin is a terminal")
		}
		r = fds[0]
	case 2:
		file, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	default:
		return prog.BadUsage("import takes one or two arguments")
	}
	m, err := dico.Decode(r)
	if err != nil {
		return err
	}
	return st.Save(args[0], m)
}

func rm(fds [3]*os.File, st *dico.Store, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("rm takes at least one argument")
	}
	var errs []error
	for _, doc := range args {
		if err := st.Delete(doc); err != nil {
			errs = append(errs, fmt.Errorf("rm %s: %w", doc, err))
		}
	}
	return errors.Join(errs...)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
