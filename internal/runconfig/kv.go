package runconfig

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// shellMetacharacters are rejected in configuration-file values per
// spec.md section 6: "values containing shell metacharacters are
// rejected." This engine never shells out to interpret config values, but
// a value smuggling metacharacters is still a strong signal of a malformed
// or hostile config file, so it is rejected outright rather than silently
// accepted.
const shellMetacharacters = "`$;&|<>(){}\\\"'"

// ParseKVFile reads a flat key=value configuration file (spec.md section
// 6). Recognized keys mirror the CLI flag names (see flags.go); unknown
// keys are returned in the second value so the caller can log a warning
// per key rather than fail the load, and "path" / "exclude" / "pattern"
// keys may repeat to build a list.
//
// Grammar, adapted from the teacher's INI-section parser in
// theweak1-file-maintenance's config.parseIniSections but flattened (no
// [section] headers -- the spec's config file is a plain key=value list):
//
//	; comment
//	# comment
//	key=value
//	key=value another   (repeatable keys accumulate)
//
// Blank lines and lines starting with ';' or '#' are ignored. A line with
// no '=' is an error. Leading/trailing whitespace around key and value is
// trimmed.
func ParseKVFile(path string) (map[string][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, runerr.Wrap(runerr.CodeConfigInvalid, "open config file", err)
	}
	defer f.Close()

	values := make(map[string][]string)
	var unknown []string

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, nil, runerr.New(runerr.CodeConfigInvalid,
				fmt.Sprintf("%s:%d: expected key=value, got %q", path, lineNo, line))
		}

		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])

		if key == "" {
			return nil, nil, runerr.New(runerr.CodeConfigInvalid,
				fmt.Sprintf("%s:%d: empty key", path, lineNo))
		}
		if strings.ContainsAny(val, shellMetacharacters) {
			return nil, nil, runerr.New(runerr.CodeConfigInvalid,
				fmt.Sprintf("%s:%d: value for %q contains shell metacharacters", path, lineNo, key))
		}

		if !recognizedKeys[key] {
			unknown = append(unknown, key)
		}
		values[key] = append(values[key], val)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, runerr.Wrap(runerr.CodeConfigInvalid, "read config file", err)
	}

	return values, unknown, nil
}

// recognizedKeys lists every key=value configuration key that maps onto a
// CLI flag, used by ParseKVFile to classify unrecognized keys for the
// "ignored with a warning" policy in spec.md section 6.
var recognizedKeys = map[string]bool{
	"path": true, "output": true, "exclude": true, "min-size": true,
	"max-size": true, "pattern": true, "level": true, "follow-symlinks": true,
	"all": true, "empty": true, "fast": true, "verify": true, "fuzzy": true,
	"threshold": true, "delete": true, "interactive": true, "dry-run": true,
	"trash": true, "hardlink": true, "quarantine": true, "keep-newest": true,
	"keep-oldest": true, "keep-path": true, "smart-delete": true,
	"threads": true, "cache": true, "sha256": true, "sha512": true,
	"skip-system": true, "force-system": true, "backup": true, "csv": true,
	"json": true, "html": true, "email": true, "log": true, "verbose": true, "quiet": true,
	"resume": true, "exclude-list": true,
}
