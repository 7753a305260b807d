package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/morroware/DupeFInder/internal/model"
)

// StdinPrompter implements runctl.Prompter by asking the operator a y/N
// question per target on the terminal, used when --interactive is set.
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinPrompter builds a StdinPrompter reading from in and writing
// prompts to out.
func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks whether target should be acted on, given its survivor.
// Any answer other than "y"/"yes" (case-insensitive) declines; EOF also
// declines, so a non-interactive terminal attached by mistake fails safe.
func (p *StdinPrompter) Confirm(target, survivor model.FileRecord, group model.DigestGroup) bool {
	fmt.Fprintf(p.out, "group %d: remove %s (keeping %s)? [y/N] ", group.GroupID, target.Path, survivor.Path)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
