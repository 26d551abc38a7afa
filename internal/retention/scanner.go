package retention

import (
	"bufio"
	"io"
	"strings"
)

type eventKind int

const (
	eventOpen eventKind = iota
	eventBody
	eventClose
)

type event struct {
	kind eventKind
	tag  string
	line string
}

// Scanner walks a retention file line by line and emits block events.
// Two states: outside a block and inside one. Comment and blank lines
// never reach the builder.
type Scanner struct {
	s      *bufio.Scanner
	inside bool
}

func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{s: s}
}

func (s *Scanner) Next() (event, bool) {
	for s.s.Scan() {
		line := s.s.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		if idx := strings.Index(line, "{"); idx >= 0 {
			s.inside = true
			tag := ""
			if fields := strings.Fields(line[:idx]); len(fields) > 0 {
				tag = fields[0]
			}
			return event{kind: eventOpen, tag: tag}, true
		}
		if strings.Contains(line, "}") {
			s.inside = false
			return event{kind: eventClose}, true
		}
		if !s.inside {
			// stray text between blocks, nothing to attach it to
			continue
		}
		return event{kind: eventBody, line: line}, true
	}
	return event{}, false
}

func (s *Scanner) Err() error {
	return s.s.Err()
}
