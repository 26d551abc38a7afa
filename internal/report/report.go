package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"downtimes/internal/config"
	"downtimes/internal/model"
)

// Column maps a record field to the header it is displayed under.
type Column struct {
	Field string
	Alias string
}

// The seven-column layout the tool prints by default.
func DefaultColumns() []Column {
	return []Column{
		{Field: "downtime_id", Alias: "id"},
		{Field: "end_time_nice", Alias: "end_time"},
		{Field: "is_in_effect", Alias: "in_effect"},
		{Field: "downtime_type", Alias: "type"},
		{Field: "host_name", Alias: "host"},
		{Field: "service_description", Alias: "description"},
		{Field: "author", Alias: "user"},
	}
}

// ColumnsFromConfig resolves the configured column list, falling back
// to the default seven columns when none are set. A column without an
// alias is displayed under its field name.
func ColumnsFromConfig(cols []config.ColumnConfig) []Column {
	if len(cols) == 0 {
		return DefaultColumns()
	}
	out := make([]Column, 0, len(cols))
	for _, col := range cols {
		alias := col.Alias
		if alias == "" {
			alias = col.Field
		}
		out = append(out, Column{Field: col.Field, Alias: alias})
	}
	return out
}

// Sort orders records ascending by numeric end_time. Records whose
// end_time does not parse sort last; ties keep file order.
func Sort(records []model.Downtime) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i].EndEpoch()
		b, bok := records[j].EndEpoch()
		if aok != bok {
			return aok
		}
		return a < b
	})
}

func Header(columns []Column) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = col.Alias
	}
	return out
}

// Project turns records into display rows, one cell per column, empty
// string where a record lacks the field.
func Project(records []model.Downtime, columns []Column) [][]string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			value, _ := records[i].Get(col.Field)
			row[j] = value
		}
		rows = append(rows, row)
	}
	return rows
}

func Render(w io.Writer, format string, columns []Column, records []model.Downtime) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return RenderTable(w, columns, records)
	case "tab":
		return RenderTab(w, columns, records)
	case "csv":
		return RenderCSV(w, columns, records)
	case "json":
		return RenderJSON(w, records)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func RenderTab(w io.Writer, columns []Column, records []model.Downtime) error {
	if _, err := fmt.Fprintln(w, strings.Join(Header(columns), "\t")); err != nil {
		return err
	}
	for _, row := range Project(records, columns) {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func RenderCSV(w io.Writer, columns []Column, records []model.Downtime) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(columns)); err != nil {
		return err
	}
	for _, row := range Project(records, columns) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func RenderJSON(w io.Writer, records []model.Downtime) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func RenderTable(w io.Writer, columns []Column, records []model.Downtime) error {
	header := Header(columns)
	rows := Project(records, columns)
	widths := make([]int, len(columns))
	for i, cell := range header {
		widths[i] = len(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	sep := border(widths)
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return err
	}
	if err := writeRow(w, header, widths); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, sep)
	return err
}

func border(widths []int) string {
	var b strings.Builder
	for _, width := range widths {
		b.WriteByte('+')
		b.WriteString(strings.Repeat("-", width+2))
	}
	b.WriteByte('+')
	return b.String()
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString("| ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+1))
	}
	b.WriteByte('|')
	_, err := fmt.Fprintln(w, b.String())
	return err
}
