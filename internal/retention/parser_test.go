package retention

import (
	"strings"
	"testing"
)

func TestSingleHostDowntime(t *testing.T) {
	input := "hostdowntime {\nend_time=1000\nhost_name=web1\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Type != "hostdowntime" {
		t.Fatalf("downtime_type: %s", records[0].Type)
	}
	if records[0].HostName != "web1" {
		t.Fatalf("host_name: %s", records[0].HostName)
	}
	if records[0].EndTime != "1000" {
		t.Fatalf("end_time: %s", records[0].EndTime)
	}
}

func TestNonDowntimeBlockSkipped(t *testing.T) {
	input := "somethingelse {\nend_time=1000\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

func TestMissingEndTimeDropped(t *testing.T) {
	input := "servicedowntime {\nhost_name=web1\nservice_description=http\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	input := "# retention snapshot\n\nhostdowntime {\n# not a field\nend_time=1000\n}\n# trailing comment\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestValueMayContainEquals(t *testing.T) {
	input := "hostdowntime {\nend_time=1000\ncomment=planned a=b maintenance\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Comment != "planned a=b maintenance" {
		t.Fatalf("comment: %q", records[0].Comment)
	}
}

func TestLaterKeyOverwrites(t *testing.T) {
	input := "hostdowntime {\nend_time=1000\nend_time=2000\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 || records[0].EndTime != "2000" {
		t.Fatalf("expected overwritten end_time, got %+v", records)
	}
}

func TestLineWithoutEquals(t *testing.T) {
	input := "hostdowntime {\nend_time=1000\nnot a key value line\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if v, ok := records[0].Get("not a key value line"); !ok || v != "" {
		t.Fatalf("expected whole-line key with empty value, got %q ok=%v", v, ok)
	}
}

func TestUnknownKeysLandInExtras(t *testing.T) {
	input := "servicedowntime {\nend_time=1000\ntriggered_by=0\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Extras["triggered_by"] != "0" {
		t.Fatalf("extras: %+v", records[0].Extras)
	}
}

func TestTruncatedBlockWithoutEndTime(t *testing.T) {
	input := "hostdowntime {\nhost_name=web1\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

func TestTruncatedBlockWithEndTime(t *testing.T) {
	input := "hostdowntime {\nend_time=1000\nhost_name=web1\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestMixedBlockTypes(t *testing.T) {
	input := "info {\nversion=4.4.6\n}\nhost {\nhost_name=web1\nend_time=999\n}\nhostdowntime {\ndowntime_id=7\nend_time=2000\nhost_name=web1\n}\nservicedowntime {\ndowntime_id=8\nend_time=1000\nhost_name=db1\nservice_description=mysql\nauthor=ops\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "7" || records[1].ID != "8" {
		t.Fatalf("file order not preserved: %+v", records)
	}
	if records[1].ServiceDescription != "mysql" || records[1].Author != "ops" {
		t.Fatalf("service record fields: %+v", records[1])
	}
}

func TestNonNumericEndTimeDropped(t *testing.T) {
	input := "hostdowntime {\nend_time=soon\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

func TestOpenWithoutCloseStartsNewBlock(t *testing.T) {
	input := "hostdowntime {\nend_time=1000\nservicedowntime {\nend_time=2000\n}\n"
	records, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both blocks finalized, got %d", len(records))
	}
	if records[0].Type != "hostdowntime" || records[1].Type != "servicedowntime" {
		t.Fatalf("types: %s %s", records[0].Type, records[1].Type)
	}
}
