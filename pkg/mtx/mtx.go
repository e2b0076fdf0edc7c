// Package mtx reads and writes sparse matrices in the Matrix Market
// coordinate format, the on-disk representation emitted by kallisto|bustools
// quantification (matrix.mtx plus barcodes.txt and genes.txt side tables).
//
// Only the subset those tools produce is supported: object "matrix", format
// "coordinate", symmetry "general", with real, integer or pattern fields.
// Files compressed with gzip are detected by content and decompressed
// transparently; writers compress when the target name ends in ".gz".
package mtx

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/omicstation/mtxkit/pkg/constants"
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

// Banner is the required first token of a Matrix Market file.
const Banner = "%%MatrixMarket"

// Field names accepted in the header.
const (
	FieldReal    = "real"
	FieldInteger = "integer"
	FieldPattern = "pattern"
)

// Header is the parsed Matrix Market banner and size line.
type Header struct {
	Object   string // always "matrix"
	Format   string // always "coordinate"
	Field    string // "real", "integer" or "pattern"
	Symmetry string // always "general"
	Rows     int
	Cols     int
	NNZ      int
}

// gzipMagic is the two-byte gzip stream signature.
var gzipMagic = []byte{0x1f, 0x8b}

// Open opens path for reading, decompressing gzip content transparently.
// Other packages use it for the plain-text side tables that travel with
// matrices and share their compression conventions.
func Open(path string) (io.ReadCloser, error) {
	r, closer, err := openReader(path)
	if err != nil {
		return nil, err
	}
	return &readCloser{r: r, c: closer}, nil
}

type readCloser struct {
	r io.Reader
	c io.Closer
}

func (rc *readCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }
func (rc *readCloser) Close() error               { return rc.c.Close() }

// Create creates path for writing, compressing when the name ends in ".gz".
// Close flushes buffers and finalizes the gzip stream.
func Create(path string) (io.WriteCloser, error) {
	w, finish, err := openWriter(path)
	if err != nil {
		return nil, err
	}
	return &writeCloser{w: w, finish: finish}, nil
}

type writeCloser struct {
	w      io.Writer
	finish func() error
}

func (wc *writeCloser) Write(p []byte) (int, error) { return wc.w.Write(p) }
func (wc *writeCloser) Close() error                { return wc.finish() }

// openReader opens path for reading, unwrapping gzip content regardless of
// the file's extension. The returned closer releases the file handle.
func openReader(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, pkgerrors.WrapIO("open", path, err)
	}

	br := bufio.NewReaderSize(f, constants.ScanBufferSize)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, nil, pkgerrors.WrapIO("read", path, err)
	}
	if len(magic) == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, nil, pkgerrors.WrapIO("read", path, err)
		}
		return zr, f, nil
	}
	return br, f, nil
}

// openWriter creates path for writing, compressing when the name ends in
// ".gz". The returned flush must be called before the closer.
func openWriter(path string) (io.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, pkgerrors.WrapIO("create", path, err)
	}

	bw := bufio.NewWriterSize(f, constants.WriteBufferSize)
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(bw)
		finish := func() error {
			if err := zw.Close(); err != nil {
				f.Close()
				return pkgerrors.WrapIO("write", path, err)
			}
			if err := bw.Flush(); err != nil {
				f.Close()
				return pkgerrors.WrapIO("write", path, err)
			}
			return f.Close()
		}
		return zw, finish, nil
	}

	finish := func() error {
		if err := bw.Flush(); err != nil {
			f.Close()
			return pkgerrors.WrapIO("write", path, err)
		}
		return f.Close()
	}
	return bw, finish, nil
}
