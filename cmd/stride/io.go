package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/stride"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
)

// newUserIO picks the terminal-backed readline IO when stdin is a terminal,
// and a plain line reader otherwise (piped input, CI).
func newUserIO() (stride.UserIO, func()) {
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
		rl, err := readline.New("")
		if err == nil {
			return &readlineIO{rl: rl}, func() { rl.Close() }
		}
	}
	return &stdinIO{scanner: bufio.NewScanner(os.Stdin)}, func() {}
}

// readlineIO answers agent questions through an interactive readline prompt.
type readlineIO struct {
	rl *readline.Instance
}

func (r *readlineIO) Prompt(_ context.Context, request string) (string, error) {
	r.rl.SetPrompt(colorGreen + request + colorReset + " > ")
	defer r.rl.SetPrompt("")

	line, err := r.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", errors.New("input interrupted")
		}
		if errors.Is(err, io.EOF) {
			return "", errors.New("input closed")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *readlineIO) Echo(message string) {
	fmt.Println(message)
}

// stdinIO reads answers line by line without terminal control sequences.
type stdinIO struct {
	scanner *bufio.Scanner
}

func (s *stdinIO) Prompt(_ context.Context, request string) (string, error) {
	fmt.Printf("%s > ", request)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

func (s *stdinIO) Echo(message string) {
	fmt.Println(message)
}
