package output

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/omicstation/mtxkit/internal/cmd/table"
)

// Formatter renders a value to a writer.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter returns the formatter for the given format. Unknown
// formats fall back to the table renderer.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable, FormatWide:
		return &TableFormatter{Wide: format == FormatWide}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter renders values as JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	var (
		buf []byte
		err error
	)
	if f.Indent != "" {
		buf, err = json.MarshalIndent(data, "", f.Indent)
	} else {
		buf, err = json.Marshal(data)
	}
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

// YAMLFormatter renders values as YAML.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	buf, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Data holds rows already shaped for table rendering.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []table.Align
}

// TableFormatter renders values as aligned text tables.
type TableFormatter struct {
	Wide bool
}

// Format renders prepared table data directly. Structs and struct
// slices are reshaped through reflection; anything else falls back to
// indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return f.render(w, v)
	case table.Data:
		return f.render(w, Data{
			Headers:         v.Headers,
			Rows:            v.Rows,
			ColumnAlignment: v.ColumnAlignment,
		})
	default:
		if view, ok := tableView(data); ok {
			return f.render(w, view)
		}
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func (f *TableFormatter) render(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		perColumn := tw.CellAlignment{PerColumn: alignments(data.ColumnAlignment)}
		config.Header.Alignment = perColumn
		config.Row.Alignment = perColumn
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		tbl.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := tbl.Append(cells(row)...); err != nil {
			return err
		}
	}

	return tbl.Render()
}

// alignments translates table alignment hints into tablewriter's type.
func alignments(hints []table.Align) []tw.Align {
	out := make([]tw.Align, len(hints))
	for i, hint := range hints {
		switch hint {
		case table.AlignLeft:
			out[i] = tw.AlignLeft
		case table.AlignCenter:
			out[i] = tw.AlignCenter
		case table.AlignRight:
			out[i] = tw.AlignRight
		default:
			out[i] = tw.Skip
		}
	}
	return out
}

// cells widens a string row to the variadic any slice tablewriter takes.
func cells(row []string) []any {
	out := make([]any, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}
