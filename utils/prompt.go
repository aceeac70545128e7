package utils

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks the operator blocking questions on a terminal
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing
// questions to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Bool asks a yes/no question until it gets an answer strconv.ParseBool
// understands; "y"/"yes"/"n"/"no" are accepted too.
func (p *Prompter) Bool(question string) (bool, error) {
	for {
		answer, err := p.String(question + " (true/false)")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if v, err := strconv.ParseBool(answer); err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "  %q is not a boolean\n", answer)
	}
}

// String asks a question until a non-blank answer is given
func (p *Prompter) String(question string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", question)

		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer != "" {
			return answer, nil
		}
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("no answer for %q: %w", question, io.ErrUnexpectedEOF)
			}
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
	}
}
