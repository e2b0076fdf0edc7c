// Package annotate attaches gene-level metadata to the feature axis of an
// assembled matrix: symbols joined from a transcript-to-gene mapping, version
// suffixes split off into their own column, and identifiers de-duplicated the
// way downstream single-cell tooling expects.
package annotate

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/omicstation/mtxkit/pkg/constants"
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/mtx"
)

// T2G is a transcript-to-gene mapping reduced to its gene columns: for every
// gene identifier, the symbol it maps to. Duplicate gene rows keep the first
// symbol encountered.
type T2G struct {
	symbols map[string]string
}

// LoadT2G reads a kallisto t2g table: tab-separated, transcript identifier in
// column 0, gene identifier in column 1, gene symbol in column 2. A two-column
// row contributes a gene with an empty symbol. Gzip content is detected and
// decompressed transparently.
func LoadT2G(path string) (*T2G, error) {
	r, err := mtx.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	symbols := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), constants.ScanBufferSize)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, pkgerrors.NewParseError("t2g", path, line, fmt.Sprintf("expected at least 2 tab-separated fields, got %d", len(fields)), nil)
		}

		geneID := fields[1]
		symbol := ""
		if len(fields) > 2 {
			symbol = fields[2]
		}
		if _, seen := symbols[geneID]; !seen {
			symbols[geneID] = symbol
		}
	}
	if err := sc.Err(); err != nil {
		return nil, pkgerrors.WrapIO("read", path, err)
	}

	return &T2G{symbols: symbols}, nil
}

// Symbol returns the gene symbol mapped to the given identifier.
func (t *T2G) Symbol(geneID string) (string, bool) {
	s, ok := t.symbols[geneID]
	return s, ok
}

// Len returns the number of distinct gene identifiers in the mapping.
func (t *T2G) Len() int { return len(t.symbols) }

// FeatureTable is the annotated feature axis: one row per matrix column, all
// slices equal length and positionally aligned with the matrix.
type FeatureTable struct {
	// IDs are the final feature identifiers: version-stripped and made
	// unique. This is the index downstream tools address features by.
	IDs []string

	// Versions are the identifiers exactly as quantification emitted
	// them, version suffix included.
	Versions []string

	// Symbols are the joined gene symbols, empty where the mapping has no
	// entry for the feature.
	Symbols []string
}

// Annotate builds the feature table for the given column identifiers. The
// symbol join uses the versioned identifier as written in the input, because
// t2g tables carry the same versioned form; stripping happens after the join.
// A nil mapping yields empty symbols.
func Annotate(ids []string, mapping *T2G) *FeatureTable {
	versions := append([]string(nil), ids...)
	stripped := make([]string, len(ids))
	symbols := make([]string, len(ids))

	for i, id := range ids {
		stripped[i] = StripVersion(id)
		if mapping != nil {
			symbols[i], _ = mapping.Symbol(id)
		}
	}

	return &FeatureTable{
		IDs:      MakeUnique(stripped),
		Versions: versions,
		Symbols:  symbols,
	}
}

// StripVersion removes an Ensembl-style version suffix: everything from the
// first "." on. Identifiers without a dot pass through unchanged.
func StripVersion(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// MakeUnique de-duplicates identifiers in sequence order. The first
// occurrence keeps its name; later occurrences get "-1", "-2", ... suffixes,
// skipping any tentative name that already exists elsewhere in the input.
// Non-Ensembl references can produce duplicate gene names, and downstream
// tools refuse indices that are not unique.
func MakeUnique(ids []string) []string {
	taken := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		taken[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(ids))
	counter := make(map[string]int)
	out := make([]string, len(ids))

	for i, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out[i] = id
			continue
		}
		for {
			counter[id]++
			tentative := fmt.Sprintf("%s-%d", id, counter[id])
			if _, exists := taken[tentative]; !exists {
				out[i] = tentative
				taken[tentative] = struct{}{}
				break
			}
		}
	}
	return out
}
