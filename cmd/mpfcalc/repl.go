package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// repl runs the interactive loop with the terminal in raw mode.
func (s *session) repl() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(screen, "mpf% ")
	if w, _, err := term.GetSize(fd); err == nil {
		t.SetSize(w, 24)
	}

	for {
		line, err := t.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := s.runLine(line, t); err != nil {
			fmt.Fprintf(t, "error: %s\n", err.Error())
		}
	}
}
