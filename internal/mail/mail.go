// Package mail sends the final run summary to an operator-configured
// address (spec.md section 6's --email flag). No library in the retrieval
// pack touches SMTP, so this collaborator is built directly on net/smtp
// (documented in the grounding ledger as the one ambient concern with no
// pack dependency to wire); its shape still follows the report package's
// Reporter-implementer pattern so the run controller treats it the same as
// any other output sink.
package mail

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runctl"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// Sender delivers a RunSummary by email once a run completes. It does not
// implement runctl.Reporter's Outcome method meaningfully (per-target
// emails would be noise); only the final summary is mailed.
type Sender struct {
	addr     string // SMTP server host:port, e.g. "localhost:25"
	from     string
	to       string
	identity smtp.Auth // nil for unauthenticated local relays
}

// New returns a Sender that relays through addr (default "localhost:25" if
// empty) and delivers to the given address.
func New(addr, from, to string) *Sender {
	if addr == "" {
		addr = "localhost:25"
	}
	if from == "" {
		from = "dupefinder@localhost"
	}
	return &Sender{addr: addr, from: from, to: to}
}

// Outcome is a no-op; Sender only reports the final summary.
func (s *Sender) Outcome(model.ActionOutcome) {}

// Summary sends the formatted run summary as a plaintext email. Delivery
// failures are logged to stderr rather than surfaced as a run failure --
// a stuck mail relay should never block or fail an otherwise-successful
// resolve run.
func (s *Sender) Summary(summary model.RunSummary) {
	if s.to == "" {
		return
	}
	body := fmt.Sprintf("Subject: dupefinder run summary\r\n\r\n%s\r\n", runctl.FormatSummary(summary))
	if err := smtp.SendMail(s.addr, s.identity, s.from, []string{s.to}, []byte(body)); err != nil {
		fmt.Fprintln(os.Stderr, runerr.Wrap(runerr.CodeActionIO, "send summary email", err).Error())
	}
}

var _ runctl.Reporter = (*Sender)(nil)
