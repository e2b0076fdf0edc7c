package output

import (
	"strings"
	"testing"

	"github.com/omicstation/mtxkit/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", Format(""), false},
		{"xml", Format(""), true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	if got := DetectFormat("YAML"); got != FormatYAML {
		t.Errorf("DetectFormat(YAML) = %q, want yaml", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(FormatJSON)

	err := f.Format(&buf, map[string]int{"rows": 3})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"rows": 3`) {
		t.Errorf("unexpected JSON output: %s", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(FormatYAML)

	err := f.Format(&buf, map[string]string{"sample": "s1"})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), "sample: s1") {
		t.Errorf("unexpected YAML output: %s", buf.String())
	}
}

func TestTableFormatterData(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(FormatTable)

	err := f.Format(&buf, Data{
		Headers: []string{"File", "Entries"},
		Rows:    [][]string{{"a.mtx", "42"}},
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "a.mtx") || !strings.Contains(out, "42") {
		t.Errorf("table output missing cells:\n%s", out)
	}
}

func TestTableFormatterAcceptsTableData(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(FormatTable)

	err := f.Format(&buf, table.Data{
		Headers:         []string{"Property", "Value"},
		Rows:            [][]string{{"Sample", "s1"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Sample") {
		t.Errorf("table output missing row:\n%s", buf.String())
	}
}

func TestTableFormatterReflectsStructs(t *testing.T) {
	type report struct {
		Sample  string `json:"sample"`
		Entries int    `json:"entry_count"`
	}

	var buf strings.Builder
	f := &TableFormatter{}

	err := f.Format(&buf, report{Sample: "s1", Entries: 9})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	// json tags become title-cased headers for the key/value view
	if !strings.Contains(out, "Entry Count") {
		t.Errorf("expected title-cased property name, got:\n%s", out)
	}
}

func TestTableFormatterReflectsStructSlices(t *testing.T) {
	type row struct {
		File   string   `json:"file"`
		Layers []string `json:"layers"`
		hidden int
	}

	var buf strings.Builder
	f := &TableFormatter{}

	err := f.Format(&buf, []row{
		{File: "a.mtx", Layers: []string{"spliced", "unspliced"}, hidden: 1},
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "spliced, unspliced") {
		t.Errorf("expected joined string slice cell, got:\n%s", out)
	}
	if strings.Contains(out, "HIDDEN") || strings.Contains(out, "hidden") {
		t.Errorf("unexported field leaked into output:\n%s", out)
	}
}

func TestTableFormatterDereferencesPointers(t *testing.T) {
	type report struct {
		Sample string `json:"sample"`
	}

	var buf strings.Builder
	f := &TableFormatter{}

	if err := f.Format(&buf, &report{Sample: "s1"}); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), "s1") {
		t.Errorf("pointer value not rendered:\n%s", buf.String())
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf strings.Builder
	f := &TableFormatter{}

	if err := f.Format(&buf, []int{1, 2, 3}); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[") {
		t.Errorf("expected JSON fallback for non-tabular data:\n%s", buf.String())
	}
}
