package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks the interactive questions of the run and clean commands.
// An empty answer or end of input selects the default.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) answer(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// YesNo returns true only for an answer of y or yes
func (p *Prompter) YesNo(question string) (bool, error) {
	a, err := p.answer(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	a = strings.ToLower(a)
	return a == "y" || a == "yes", nil
}

// Int asks for a positive integer, re-asking on invalid input
func (p *Prompter) Int(question string, def int) (int, error) {
	for {
		a, err := p.answer(fmt.Sprintf("%s [default %d]: ", question, def))
		if err != nil {
			return 0, err
		}
		if a == "" {
			return def, nil
		}
		n, err := strconv.Atoi(a)
		if err == nil && n > 0 {
			return n, nil
		}
		fmt.Fprintf(p.out, "invalid number %q\n", a)
	}
}
