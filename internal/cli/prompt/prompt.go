package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyPassword is returned by Password when the user enters nothing.
var ErrEmptyPassword = errors.New("prompt: empty password")

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal descriptor for in, or -1
}

// New creates a Prompter. If in is a terminal, passwords are read without
// echo.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line prints label and returns the trimmed answer. io.EOF is returned once
// input is exhausted and nothing was typed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Required is like Line but asks again until the answer is non-empty.
func (p *Prompter) Required(label string) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil || s != "" {
			return s, err
		}
	}
}

// Confirm asks a yes/no question. Answers starting with y or s count as yes;
// an empty answer returns def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	s, err := p.Line(label)
	if err != nil {
		return false, err
	}
	if s == "" {
		return def, nil
	}
	switch strings.ToLower(s)[0] {
	case 'y', 's':
		return true, nil
	default:
		return false, nil
	}
}

// Password reads a secret. On a terminal the input is not echoed.
func (p *Prompter) Password(label string) ([]byte, error) {
	var pw []byte
	if p.fd >= 0 {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		pw = b
	} else {
		s, err := p.Line(label)
		if err != nil {
			return nil, err
		}
		pw = []byte(s)
	}

	if len(pw) == 0 {
		return nil, ErrEmptyPassword
	}
	return pw, nil
}
