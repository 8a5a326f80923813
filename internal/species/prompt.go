package species

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Question is shown before reading the animal name.
const Question = "What kind of animal do you want to detect? "

// Prompter asks the user which animal to detect.
type Prompter interface {
	Ask() (string, error)
}

// LinePrompter writes Question to out and reads one line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask returns the typed line without its line terminator. A final line
// without newline is accepted; empty input at EOF is io.EOF.
func (p *LinePrompter) Ask() (string, error) {
	if _, err := io.WriteString(p.out, Question); err != nil {
		return "", errors.Wrap(err, "failed to write prompt")
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FormPrompter asks through an interactive huh input field.
type FormPrompter struct{}

func (FormPrompter) Ask() (string, error) {
	var name string
	input := huh.NewInput().
		Title(strings.TrimSpace(Question)).
		Placeholder(strings.Join(Names(), ", ")).
		Value(&name)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", errors.Wrap(err, "prompt aborted")
	}
	return name, nil
}

// NewPrompter picks the interactive form when stdin is a terminal and the
// plain line reader otherwise (pipes, redirected files).
func NewPrompter() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return FormPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}
