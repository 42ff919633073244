// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package prompt reads console input with the liner line editor on a tty
// and with a line scanner on pipes and scripts.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/platinasystems/liner"
)

type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// New returns a liner if both stdin and stdout are terminals; otherwise, a
// scanner of stdin that echos prompts to stdout.
func New() Prompter {
	if isatty.IsTerminal(os.Stdin.Fd()) &&
		isatty.IsTerminal(os.Stdout.Fd()) {
		return &Liner{liner.NewLiner()}
	}
	return NewScanner(os.Stdin, os.Stdout)
}

type Liner struct {
	s *liner.State
}

func (l *Liner) Prompt(prompt string) (string, error) {
	s, err := l.s.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		err = io.EOF
	}
	return s, err
}

func (l *Liner) Close() error { return l.s.Close() }

type Scanner struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewScanner prompts on w, if not nil, then reads a line from r.
func NewScanner(r io.Reader, w io.Writer) *Scanner {
	return &Scanner{bufio.NewScanner(r), w}
}

func (p *Scanner) Close() error { return nil }

func (p *Scanner) Prompt(prompt string) (string, error) {
	if p.w != nil {
		fmt.Fprint(p.w, prompt)
	}
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	err := p.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	return "", err
}
