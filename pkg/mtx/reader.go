package mtx

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/omicstation/mtxkit/pkg/constants"
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/matrix"
)

const formatName = "matrix market"

// Read parses a Matrix Market coordinate stream into a header and 0-based
// entries. Indices in the stream are 1-based and validated against the
// declared dimensions; pattern files yield entries with value 1.
func Read(r io.Reader) (Header, []matrix.Entry, error) {
	return read(r, "")
}

// ReadFile parses the Matrix Market file at path, decompressing gzip content
// transparently. Parse errors carry the path and 1-based line number.
func ReadFile(path string) (Header, []matrix.Entry, error) {
	r, closer, err := openReader(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer closer.Close()
	return read(r, path)
}

// Stat parses only the header of the Matrix Market file at path. It reads a
// few lines at most, so it is cheap on arbitrarily large matrices.
func Stat(path string) (Header, error) {
	r, closer, err := openReader(path)
	if err != nil {
		return Header{}, err
	}
	defer closer.Close()

	sc := newScanner(r)
	h, _, err := readHeader(sc, path)
	return h, err
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), constants.ScanBufferSize)
	return sc
}

// readHeader consumes the banner, comment lines and the size line. It
// returns the header and the number of lines consumed.
func readHeader(sc *bufio.Scanner, path string) (Header, int, error) {
	line := 0

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Header{}, line, pkgerrors.WrapIO("read", path, err)
		}
		return Header{}, line, pkgerrors.NewParseError(formatName, path, 1, "empty file", nil)
	}
	line++

	fields := strings.Fields(sc.Text())
	if len(fields) < 5 || !strings.EqualFold(fields[0], Banner) {
		return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("malformed banner %q", sc.Text()), nil)
	}

	h := Header{
		Object:   strings.ToLower(fields[1]),
		Format:   strings.ToLower(fields[2]),
		Field:    strings.ToLower(fields[3]),
		Symmetry: strings.ToLower(fields[4]),
	}
	if h.Object != "matrix" {
		return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("unsupported object %q", h.Object), nil)
	}
	if h.Format != "coordinate" {
		return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("unsupported format %q (only coordinate)", h.Format), nil)
	}
	switch h.Field {
	case FieldReal, FieldInteger, FieldPattern:
	default:
		return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("unsupported field %q", h.Field), nil)
	}
	if h.Symmetry != "general" {
		return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("unsupported symmetry %q (only general)", h.Symmetry), nil)
	}

	// Skip comment and blank lines up to the size line.
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		dims := strings.Fields(text)
		if len(dims) != 3 {
			return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("malformed size line %q", text), nil)
		}
		var err error
		if h.Rows, err = strconv.Atoi(dims[0]); err != nil {
			return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("bad row count %q", dims[0]), err)
		}
		if h.Cols, err = strconv.Atoi(dims[1]); err != nil {
			return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("bad column count %q", dims[1]), err)
		}
		if h.NNZ, err = strconv.Atoi(dims[2]); err != nil {
			return Header{}, line, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("bad entry count %q", dims[2]), err)
		}
		if h.Rows < 0 || h.Cols < 0 || h.NNZ < 0 {
			return Header{}, line, pkgerrors.NewParseError(formatName, path, line, "negative dimension", nil)
		}
		return h, line, nil
	}
	if err := sc.Err(); err != nil {
		return Header{}, line, pkgerrors.WrapIO("read", path, err)
	}
	return Header{}, line, pkgerrors.NewParseError(formatName, path, line, "missing size line", nil)
}

func read(r io.Reader, path string) (Header, []matrix.Entry, error) {
	sc := newScanner(r)
	h, line, err := readHeader(sc, path)
	if err != nil {
		return Header{}, nil, err
	}

	entries := make([]matrix.Entry, 0, h.NNZ)
	wantValue := h.Field != FieldPattern

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		fields := strings.Fields(text)
		want := 2
		if wantValue {
			want = 3
		}
		if len(fields) != want {
			return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("expected %d fields, got %d", want, len(fields)), nil)
		}

		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("bad row index %q", fields[0]), err)
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("bad column index %q", fields[1]), err)
		}
		if row < 1 || row > h.Rows {
			return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("row index %d outside [1,%d]", row, h.Rows), nil)
		}
		if col < 1 || col > h.Cols {
			return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("column index %d outside [1,%d]", col, h.Cols), nil)
		}

		value := 1.0
		if wantValue {
			value, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("bad value %q", fields[2]), err)
			}
		}

		if len(entries) == h.NNZ {
			return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("more than %d declared entries", h.NNZ), nil)
		}
		entries = append(entries, matrix.Entry{Row: row - 1, Col: col - 1, Value: value})
	}
	if err := sc.Err(); err != nil {
		return Header{}, nil, pkgerrors.WrapIO("read", path, err)
	}
	if len(entries) != h.NNZ {
		return Header{}, nil, pkgerrors.NewParseError(formatName, path, line, fmt.Sprintf("declared %d entries, found %d", h.NNZ, len(entries)), nil)
	}

	return h, entries, nil
}

// ReadIDs reads an identifier side table (barcodes.txt, genes.txt): one
// identifier per line, first tab-separated field, in file order. Blank lines
// are skipped; no deduplication or reordering happens here.
func ReadIDs(path string) ([]string, error) {
	r, closer, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var ids []string
	sc := newScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, pkgerrors.WrapIO("read", path, err)
	}
	return ids, nil
}
