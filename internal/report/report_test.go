package report

import (
	"strings"
	"testing"

	"downtimes/internal/model"
)

func sampleRecords() []model.Downtime {
	return []model.Downtime{
		{Type: "hostdowntime", ID: "2", EndTime: "2000", HostName: "web2"},
		{Type: "servicedowntime", ID: "1", EndTime: "1000", HostName: "web1", ServiceDescription: "http", Author: "ops"},
	}
}

func TestSortAscendingByEndTime(t *testing.T) {
	records := sampleRecords()
	Sort(records)
	if records[0].EndTime != "1000" || records[1].EndTime != "2000" {
		t.Fatalf("sort order: %s, %s", records[0].EndTime, records[1].EndTime)
	}
}

func TestSortUnparsableEndTimeLast(t *testing.T) {
	records := []model.Downtime{
		{ID: "a", EndTime: "oops"},
		{ID: "b", EndTime: "500"},
	}
	Sort(records)
	if records[0].ID != "b" {
		t.Fatalf("unparsable end_time should sort last: %+v", records)
	}
}

func TestSortIsStable(t *testing.T) {
	records := []model.Downtime{
		{ID: "first", EndTime: "1000"},
		{ID: "second", EndTime: "1000"},
	}
	Sort(records)
	if records[0].ID != "first" || records[1].ID != "second" {
		t.Fatalf("tie order changed: %+v", records)
	}
}

func TestProjectEmptyForMissingFields(t *testing.T) {
	records := []model.Downtime{{Type: "hostdowntime", EndTime: "1000"}}
	rows := Project(records, DefaultColumns())
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row[0] != "" || row[4] != "" || row[5] != "" || row[6] != "" {
		t.Fatalf("missing fields should project empty: %q", row)
	}
	if row[3] != "hostdowntime" {
		t.Fatalf("type cell: %q", row[3])
	}
}

func TestRenderTab(t *testing.T) {
	records := sampleRecords()
	Sort(records)
	var b strings.Builder
	if err := RenderTab(&b, DefaultColumns(), records); err != nil {
		t.Fatalf("render error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "id\tend_time\tin_effect\ttype\thost\tdescription\tuser" {
		t.Fatalf("header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1\t") {
		t.Fatalf("first row should be the earlier end_time: %q", lines[1])
	}
}

func TestRenderTableBoxed(t *testing.T) {
	records := sampleRecords()
	var b strings.Builder
	if err := RenderTable(&b, DefaultColumns(), records); err != nil {
		t.Fatalf("render error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	// border, header, border, two rows, border
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), b.String())
	}
	if !strings.HasPrefix(lines[0], "+-") {
		t.Fatalf("top border: %q", lines[0])
	}
	if lines[0] != lines[2] || lines[0] != lines[5] {
		t.Fatalf("borders differ")
	}
	for _, line := range lines[1:5] {
		if len(line) != len(lines[0]) {
			t.Fatalf("ragged table:\n%s", b.String())
		}
	}
}

func TestRenderCSVMatchesTabCells(t *testing.T) {
	records := sampleRecords()
	Sort(records)
	var c strings.Builder
	if err := RenderCSV(&c, DefaultColumns(), records); err != nil {
		t.Fatalf("render error: %v", err)
	}
	csvLines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(csvLines) != 3 {
		t.Fatalf("expected 3 csv lines, got %d", len(csvLines))
	}
	if csvLines[1] != "1,,,servicedowntime,web1,http,ops" {
		t.Fatalf("csv row: %q", csvLines[1])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, "yamlish", DefaultColumns(), nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
