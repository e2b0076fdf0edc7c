// Package discover locates quantification outputs inside a sample directory.
// kallisto|bustools names its files per workflow variant; discovery resolves
// the variant's glob patterns to concrete paths and fails with the offending
// pattern when an expected file is absent, instead of failing later with a
// bare index panic deep in the load.
package discover

import (
	"os"
	"path/filepath"
	"sort"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/workflow"
)

// Triple is one resolved count matrix with its identifier side tables.
// Category is empty for the standard workflow's single matrix.
type Triple struct {
	Category string
	Matrix   string
	Barcodes string
	Features string
}

// Inputs resolves the matrix triples of dir for the given workflow variant,
// in category order. Each pattern is tried as-is and then with a ".gz"
// suffix; when several files match, the lexicographically first wins so
// repeated runs resolve identically.
func Inputs(dir string, w workflow.Workflow) ([]Triple, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, pkgerrors.NewNotFoundError("inputs directory", dir, "")
	}

	switch w {
	case workflow.Standard:
		t, err := resolveTriple(dir, "", "*.mtx", "*.barcodes.txt", "*.genes.txt")
		if err != nil {
			return nil, err
		}
		return []Triple{t}, nil

	case workflow.LaManno:
		triples := make([]Triple, 0, 2)
		for _, cat := range w.Categories() {
			t, err := resolveTriple(dir, cat, cat+"*.mtx", cat+"*.barcodes.txt", cat+"*.genes.txt")
			if err != nil {
				return nil, err
			}
			triples = append(triples, t)
		}
		return triples, nil

	case workflow.Nac:
		// All three categories read one shared pair of side tables.
		barcodes, err := resolve(dir, "barcodes", "*.barcodes.txt")
		if err != nil {
			return nil, err
		}
		features, err := resolve(dir, "features", "*.genes.txt")
		if err != nil {
			return nil, err
		}
		triples := make([]Triple, 0, 3)
		for _, cat := range w.Categories() {
			m, err := resolve(dir, cat+" matrix", "*"+cat+".mtx")
			if err != nil {
				return nil, err
			}
			triples = append(triples, Triple{
				Category: cat,
				Matrix:   m,
				Barcodes: barcodes,
				Features: features,
			})
		}
		return triples, nil
	}

	return nil, pkgerrors.NewConfigError("workflow", "unknown workflow "+w.String(), nil)
}

func resolveTriple(dir, category, mtxPat, barcodesPat, featuresPat string) (Triple, error) {
	prefix := ""
	if category != "" {
		prefix = category + " "
	}

	m, err := resolve(dir, prefix+"matrix", mtxPat)
	if err != nil {
		return Triple{}, err
	}
	b, err := resolve(dir, prefix+"barcodes", barcodesPat)
	if err != nil {
		return Triple{}, err
	}
	f, err := resolve(dir, prefix+"features", featuresPat)
	if err != nil {
		return Triple{}, err
	}
	return Triple{Category: category, Matrix: m, Barcodes: b, Features: f}, nil
}

// resolve globs pattern under dir, falling back to the gzipped variant.
func resolve(dir, resource, pattern string) (string, error) {
	for _, pat := range []string{pattern, pattern + ".gz"} {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			return "", pkgerrors.NewConfigError("discovery", "bad pattern "+pat, err)
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", pkgerrors.NewNotFoundError(resource, pattern, dir)
}
