package annotate

import (
	"testing"
	"time"

	"downtimes/internal/model"
)

func TestEpochRendering(t *testing.T) {
	nice, ok := Epoch("1000", time.UTC)
	if !ok {
		t.Fatalf("expected ok")
	}
	if nice != "1970-01-01 00:16:40" {
		t.Fatalf("rendering: %s", nice)
	}
}

func TestEpochIsPure(t *testing.T) {
	first, _ := Epoch("1735689600", time.UTC)
	second, _ := Epoch("1735689600", time.UTC)
	if first != second {
		t.Fatalf("same epoch rendered differently: %s vs %s", first, second)
	}
}

func TestEpochNonNumeric(t *testing.T) {
	if _, ok := Epoch("soon", time.UTC); ok {
		t.Fatalf("expected non-numeric value to be rejected")
	}
}

func TestApplySetsNiceFields(t *testing.T) {
	rec := model.Downtime{
		Type:      "hostdowntime",
		EntryTime: "1000",
		StartTime: "2000",
		EndTime:   "3000",
	}
	Apply(&rec, time.UTC)
	if rec.EntryTimeNice == "" || rec.StartTimeNice == "" || rec.EndTimeNice == "" {
		t.Fatalf("nice fields missing: %+v", rec)
	}
	if rec.EndTimeNice != "1970-01-01 00:50:00" {
		t.Fatalf("end_time_nice: %s", rec.EndTimeNice)
	}
}

func TestApplySkipsAbsentAndMalformed(t *testing.T) {
	rec := model.Downtime{
		Type:      "hostdowntime",
		StartTime: "not-a-number",
		EndTime:   "3000",
	}
	Apply(&rec, time.UTC)
	if rec.EntryTimeNice != "" {
		t.Fatalf("absent field got annotated")
	}
	if rec.StartTimeNice != "" {
		t.Fatalf("malformed field got annotated")
	}
	if rec.StartTime != "not-a-number" {
		t.Fatalf("raw value changed: %s", rec.StartTime)
	}
	if rec.EndTimeNice == "" {
		t.Fatalf("valid field not annotated")
	}
}

func TestLocationFallback(t *testing.T) {
	if Location("") != time.Local {
		t.Fatalf("empty name should mean host clock")
	}
	if Location("no/such_zone") != time.Local {
		t.Fatalf("unknown name should fall back to host clock")
	}
	if Location("UTC") != time.UTC {
		t.Fatalf("UTC should resolve")
	}
}
