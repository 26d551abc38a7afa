package annotate

import (
	"strconv"
	"strings"
	"time"

	"downtimes/internal/model"
)

const layout = "2006-01-02 15:04:05"

// Location resolves a config timezone name. Empty or "Local" means the
// host clock; an unknown name falls back to the host clock rather than
// failing the report.
func Location(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.Local
}

// Epoch renders an epoch-seconds string in the given location. A value
// that does not parse as an integer reports ok=false and the raw string
// stays untouched on the record.
func Epoch(value string, loc *time.Location) (string, bool) {
	sec, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return "", false
	}
	return time.Unix(sec, 0).In(loc).Format(layout), true
}

func Apply(rec *model.Downtime, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	if rec.EntryTime != "" {
		if nice, ok := Epoch(rec.EntryTime, loc); ok {
			rec.EntryTimeNice = nice
		}
	}
	if rec.StartTime != "" {
		if nice, ok := Epoch(rec.StartTime, loc); ok {
			rec.StartTimeNice = nice
		}
	}
	if rec.EndTime != "" {
		if nice, ok := Epoch(rec.EndTime, loc); ok {
			rec.EndTimeNice = nice
		}
	}
}

func All(records []model.Downtime, loc *time.Location) {
	for i := range records {
		Apply(&records[i], loc)
	}
}
