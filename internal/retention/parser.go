package retention

import (
	"fmt"
	"io"
	"os"

	"downtimes/internal/model"
)

// ParseFile reads a retention snapshot and returns its downtime records
// in file order. Failure to open the file is the only error surfaced;
// malformed content is absorbed.
func ParseFile(path string) ([]model.Downtime, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open retention file: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}

func ParseReader(r io.Reader) ([]model.Downtime, error) {
	sc := NewScanner(r)
	b := NewBuilder()
	for {
		ev, ok := sc.Next()
		if !ok {
			break
		}
		switch ev.kind {
		case eventOpen:
			b.Open(ev.tag)
		case eventBody:
			b.Body(ev.line)
		case eventClose:
			b.Close()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read retention file: %w", err)
	}
	return b.Finish(), nil
}
