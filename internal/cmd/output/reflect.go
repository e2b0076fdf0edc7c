package output

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// tableView reshapes a struct or struct slice into table data. The
// second return is false when the value has no tabular shape.
func tableView(data any) (Data, bool) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Data{}, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Struct {
			return sliceView(v), true
		}
	case reflect.Struct:
		return structView(v), true
	}

	return Data{}, false
}

// sliceView renders one row per element with a shared header row.
func sliceView(v reflect.Value) Data {
	elemType := v.Type().Elem()

	var headers []string
	var fields []int
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		label, ok := fieldLabel(field)
		if !ok {
			continue
		}
		headers = append(headers, label)
		fields = append(fields, i)
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		row := make([]string, 0, len(fields))
		for _, j := range fields {
			row = append(row, cellString(elem.Field(j)))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// structView renders a single value as a property/value listing.
func structView(v reflect.Value) Data {
	elemType := v.Type()

	var rows [][]string
	for i := 0; i < elemType.NumField(); i++ {
		label, ok := fieldLabel(elemType.Field(i))
		if !ok {
			continue
		}
		rows = append(rows, []string{label, cellString(v.Field(i))})
	}

	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// fieldLabel derives a column header from a struct field, preferring
// the json tag. Unexported and json-suppressed fields report false.
func fieldLabel(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}

	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name, true
	}

	return titler.String(strings.ReplaceAll(tag, "_", " ")), true
}

func cellString(v reflect.Value) string {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.String {
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = v.Index(i).String()
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%v", v.Interface())
}
