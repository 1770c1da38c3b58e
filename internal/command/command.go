// Package command parses and executes colon commands.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
)

// Kind identifies a colon command.
type Kind int

const (
	Write Kind = iota
	Quit
	ForceQuit
	WriteQuit
)

// String returns the command name as typed.
func (k Kind) String() string {
	switch k {
	case Write:
		return "w"
	case Quit:
		return "q"
	case ForceQuit:
		return "q!"
	case WriteQuit:
		return "wq"
	default:
		return "?"
	}
}

// Command is a parsed command line.
type Command struct {
	Kind Kind
	// Path is set for "w PATH" and "wq PATH".
	Path string
}

// Parse parses a command line typed after ':'. The bare commands must match
// exactly; w and wq also accept a file name separated by whitespace.
func Parse(line string) (Command, error) {
	switch line {
	case "w":
		return Command{Kind: Write}, nil
	case "q":
		return Command{Kind: Quit}, nil
	case "q!":
		return Command{Kind: ForceQuit}, nil
	case "wq":
		return Command{Kind: WriteQuit}, nil
	}

	name, arg, ok := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	if ok && arg != "" {
		switch name {
		case "w":
			return Command{Kind: Write, Path: arg}, nil
		case "wq":
			return Command{Kind: WriteQuit, Path: arg}, nil
		}
	}

	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, line)
}

// Target is what commands act on.
type Target interface {
	// Save writes the document to path, or to its bound path when path is
	// empty, and returns a message describing what was written.
	Save(path string) (string, error)
	// Dirty reports unsaved changes.
	Dirty() bool
}

// Result is the outcome of a command.
type Result struct {
	Quit   bool
	Status string
	Err    error
}

// Run parses and executes line against t. Parse errors come back as a
// status message with Err set.
func Run(line string, t Target) Result {
	cmd, err := Parse(line)
	if err != nil {
		return Result{Status: fmt.Sprintf("Unknown command: %s", line), Err: err}
	}
	return Execute(cmd, t)
}

// Execute runs cmd against t.
func Execute(cmd Command, t Target) Result {
	switch cmd.Kind {
	case Write:
		msg, err := t.Save(cmd.Path)
		if err != nil {
			return saveFailed(err)
		}
		return Result{Status: msg}

	case Quit:
		if t.Dirty() {
			return Result{Status: "File has unsaved changes. Use :q! to force quit."}
		}
		return Result{Quit: true}

	case ForceQuit:
		return Result{Quit: true}

	case WriteQuit:
		msg, err := t.Save(cmd.Path)
		if err != nil {
			return saveFailed(err)
		}
		return Result{Quit: true, Status: msg}
	}

	return Result{Status: fmt.Sprintf("Unknown command: %s", cmd.Kind), Err: ErrUnknownCommand}
}

func saveFailed(err error) Result {
	return Result{Status: fmt.Sprintf("Error saving file: %v", err), Err: err}
}
