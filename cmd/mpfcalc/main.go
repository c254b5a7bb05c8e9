// mpfcalc is a command-line calculator over the mpf command set.
//
// It runs a script of command lines, a single -e expression, or an
// interactive session when stdin is a terminal. Lines have the form
//
//	?name =? command arg ...
//
// where $name substitutes a stored result or a registered constant.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/feather-lang/mpf"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var expr string

	root := &cobra.Command{
		Use:          "mpfcalc [script]",
		Short:        "arbitrary-precision floating-point calculator",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			i := mpf.New()
			defer i.Close()
			s := newSession(i)

			if expr != "" {
				return s.runLine(expr, os.Stdout)
			}
			if len(args) == 1 {
				return s.runFile(args[0])
			}
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return s.repl()
			}
			return s.run(os.Stdin, "stdin")
		},
	}
	root.Flags().StringVarP(&expr, "eval", "e", "", "evaluate one command line and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

// session holds named results between lines.
type session struct {
	interp *mpf.Interp
	vars   map[string]*mpf.Obj
}

func newSession(i *mpf.Interp) *session {
	return &session{interp: i, vars: make(map[string]*mpf.Obj)}
}

func (s *session) lookup(name string) (*mpf.Obj, bool) {
	if o, ok := s.vars[name]; ok {
		return o, true
	}
	return s.interp.Const(name)
}

// runLine executes one command line. An assignment stores the result
// silently; otherwise a non-empty result is printed to w.
func (s *session) runLine(line string, w io.Writer) error {
	words, err := mpf.Fields(line)
	if err != nil {
		return err
	}
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return nil
	}
	var target string
	if len(words) >= 3 && words[1] == "=" {
		target = words[0]
		words = words[2:]
	}
	args := make([]*mpf.Obj, 0, len(words)-1)
	for _, word := range words[1:] {
		if strings.HasPrefix(word, "$") {
			o, ok := s.lookup(word[1:])
			if !ok {
				return fmt.Errorf("no such name %q", word[1:])
			}
			args = append(args, o)
			continue
		}
		args = append(args, s.interp.String(word))
	}
	result, err := s.interp.Call(words[0], args...)
	if err != nil {
		return err
	}
	if target != "" {
		s.vars[target] = result
		return nil
	}
	if out := result.String(); out != "" {
		fmt.Fprintln(w, out)
	}
	return nil
}

func (s *session) run(r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if err := s.runLine(scanner.Text(), os.Stdout); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineno, err)
		}
	}
	return scanner.Err()
}

func (s *session) runFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.run(f, path)
}
