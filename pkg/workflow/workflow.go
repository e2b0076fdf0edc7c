// Package workflow defines the closed set of kallisto|bustools quantification
// variants mtxkit understands. The variant determines how many count matrices
// a sample directory holds, what the categories are called, and whether the
// categories share identifier side tables.
package workflow

import (
	"fmt"
	"strings"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

// Workflow identifies a quantification variant.
type Workflow string

// The three recognized variants.
const (
	// Standard is plain gene quantification: one matrix per sample,
	// nothing to merge.
	Standard Workflow = "standard"

	// LaManno is RNA velocity quantification: spliced and unspliced
	// matrices, each with its own barcode and feature tables.
	LaManno Workflow = "lamanno"

	// Nac is nucleus quantification: nascent, ambiguous and mature
	// matrices sharing a single pair of side tables.
	Nac Workflow = "nac"
)

// All returns the recognized workflows in declaration order.
func All() []Workflow {
	return []Workflow{Standard, LaManno, Nac}
}

// Parse resolves a workflow name. Names are matched case-insensitively after
// trimming whitespace; anything outside the closed set is an error naming the
// valid choices.
func Parse(s string) (Workflow, error) {
	switch Workflow(strings.ToLower(strings.TrimSpace(s))) {
	case Standard:
		return Standard, nil
	case LaManno:
		return LaManno, nil
	case Nac:
		return Nac, nil
	}
	return "", pkgerrors.NewConfigError("workflow",
		fmt.Sprintf("unknown workflow %q (valid: standard, lamanno, nac)", s), nil)
}

// String implements fmt.Stringer.
func (w Workflow) String() string { return string(w) }

// Valid reports whether w is one of the recognized variants.
func (w Workflow) Valid() bool {
	return w == Standard || w == LaManno || w == Nac
}

// Categories returns the biological category names of w in load order, which
// is also the order of the per-category layers in assembled output. Standard
// has none: its single matrix is the output directly.
func (w Workflow) Categories() []string {
	switch w {
	case LaManno:
		return []string{"spliced", "unspliced"}
	case Nac:
		return []string{"nascent", "ambiguous", "mature"}
	default:
		return nil
	}
}

// Multi reports whether w merges multiple per-category matrices.
func (w Workflow) Multi() bool { return len(w.Categories()) > 0 }

// SharedSideTables reports whether all categories of w read one shared pair
// of barcode and feature tables instead of per-category tables.
func (w Workflow) SharedSideTables() bool { return w == Nac }
