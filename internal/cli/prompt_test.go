package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/morroware/DupeFInder/internal/model"
)

func TestStdinPrompterConfirmsOnYes(t *testing.T) {
	in := strings.NewReader("y\n")
	var out bytes.Buffer
	p := NewStdinPrompter(in, &out)

	ok := p.Confirm(model.FileRecord{Path: "/a"}, model.FileRecord{Path: "/b"}, model.DigestGroup{GroupID: 1})
	assert.True(t, ok)
	assert.Contains(t, out.String(), "group 1")
}

func TestStdinPrompterDeclinesOnEmptyLine(t *testing.T) {
	in := strings.NewReader("\n")
	var out bytes.Buffer
	p := NewStdinPrompter(in, &out)

	ok := p.Confirm(model.FileRecord{Path: "/a"}, model.FileRecord{Path: "/b"}, model.DigestGroup{GroupID: 1})
	assert.False(t, ok)
}

func TestStdinPrompterDeclinesOnEOF(t *testing.T) {
	in := strings.NewReader("")
	var out bytes.Buffer
	p := NewStdinPrompter(in, &out)

	ok := p.Confirm(model.FileRecord{Path: "/a"}, model.FileRecord{Path: "/b"}, model.DigestGroup{GroupID: 1})
	assert.False(t, ok)
}

func TestStdinPrompterDeclinesOnOtherAnswer(t *testing.T) {
	in := strings.NewReader("n\n")
	var out bytes.Buffer
	p := NewStdinPrompter(in, &out)

	ok := p.Confirm(model.FileRecord{Path: "/a"}, model.FileRecord{Path: "/b"}, model.DigestGroup{GroupID: 1})
	assert.False(t, ok)
}

func TestStdinPrompterAcceptsYesWord(t *testing.T) {
	in := strings.NewReader("YES\n")
	var out bytes.Buffer
	p := NewStdinPrompter(in, &out)

	ok := p.Confirm(model.FileRecord{Path: "/a"}, model.FileRecord{Path: "/b"}, model.DigestGroup{GroupID: 1})
	assert.True(t, ok)
}
