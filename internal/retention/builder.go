package retention

import (
	"strings"

	"downtimes/internal/model"
)

// Builder accumulates one record per accepted block. Blocks whose tag
// lacks the "downtime" substring never get an accumulator; their body
// lines fall through untouched.
type Builder struct {
	current *model.Downtime
	records []model.Downtime
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Open(tag string) {
	b.finalize()
	if !strings.Contains(tag, "downtime") {
		return
	}
	b.current = &model.Downtime{Type: tag}
}

func (b *Builder) Body(line string) {
	if b.current == nil {
		return
	}
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if !found {
		value = ""
	}
	b.current.Set(key, value)
}

func (b *Builder) Close() {
	b.finalize()
}

// Finish flushes a dangling accumulator (file truncated mid-block) and
// returns everything collected so far.
func (b *Builder) Finish() []model.Downtime {
	b.finalize()
	return b.records
}

// A record survives finalize iff end_time is present and numeric.
func (b *Builder) finalize() {
	if b.current == nil {
		return
	}
	if _, ok := b.current.EndEpoch(); ok {
		b.records = append(b.records, *b.current)
	}
	b.current = nil
}
