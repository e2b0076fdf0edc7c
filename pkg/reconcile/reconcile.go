// Package reconcile aligns per-category count matrices that describe the same
// experiment onto one shared barcode space and merges them into a single
// annotated table with per-category layers.
//
// Quantification emits each category independently, so their barcode sets may
// differ. Reconciliation computes the union of all barcode identifiers,
// extends every category with explicit zero-count rows for the barcodes it
// never observed, reorders everything onto the union sequence, verifies the
// categories agree on the feature axis, and sums them element-wise.
package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/logging"
	"github.com/omicstation/mtxkit/pkg/matrix"
)

// Partition is one biological category's count matrix (e.g. "spliced").
type Partition struct {
	Name  string
	Table *matrix.Sparse
}

// UnionOrder selects how the merged barcode sequence is ordered.
type UnionOrder int

const (
	// OrderLexicographic sorts the barcode union, so identical inputs
	// produce byte-identical outputs regardless of partition layout.
	OrderLexicographic UnionOrder = iota

	// OrderFirstSeen keeps barcodes in first-appearance order across
	// partitions, preserving the input file ordering where possible.
	OrderFirstSeen
)

// Stats summarizes one reconciliation for logs and reports.
type Stats struct {
	Partitions  int            `json:"partitions" yaml:"partitions"`
	UnionRows   int            `json:"union_rows" yaml:"union_rows"`
	Columns     int            `json:"columns" yaml:"columns"`
	Filled      map[string]int `json:"filled,omitempty" yaml:"filled,omitempty"`
	MergedNNZ   int            `json:"merged_nnz" yaml:"merged_nnz"`
	TotalTimeMs int64          `json:"total_time_ms" yaml:"total_time_ms"`
}

// Result is the outcome of a reconciliation: the merged table with its
// per-category layers, the barcode union backing its rows, and statistics.
type Result struct {
	Assembled *matrix.Assembled
	Union     []string
	Stats     Stats
}

// Reconciler merges category partitions into one assembled table.
type Reconciler interface {
	// Reconcile aligns the partitions onto their shared barcode union and
	// sums them. Partition order is preserved in the output layers. A
	// single partition passes through untouched, rows in file order.
	Reconcile(ctx context.Context, parts []Partition) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	order UnionOrder
}

// Option configures a Reconciler.
type Option func(*reconciler) error

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{order: OrderLexicographic}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Reconcile merges the partitions into one table.
func (r *reconciler) Reconcile(ctx context.Context, parts []Partition) (*Result, error) {
	start := time.Now()
	log := logging.Ctx(ctx)

	if len(parts) == 0 {
		return nil, fmt.Errorf("no partitions to reconcile: %w", pkgerrors.ErrInvalidInput)
	}
	for _, p := range parts {
		if p.Table == nil {
			return nil, fmt.Errorf("partition %q has no table: %w", p.Name, pkgerrors.ErrInvalidInput)
		}
	}

	// A single partition needs no alignment at all. Its rows keep their
	// file order and the result carries no layers.
	if len(parts) == 1 {
		t := parts[0].Table
		return &Result{
			Assembled: &matrix.Assembled{X: t},
			Union:     t.RowIDs(),
			Stats: Stats{
				Partitions:  1,
				UnionRows:   t.Rows(),
				Columns:     t.Cols(),
				MergedNNZ:   t.NNZ(),
				TotalTimeMs: time.Since(start).Milliseconds(),
			},
		}, nil
	}

	// Step 1: compute the barcode union and each partition's presence set.
	union, present, err := r.union(parts)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("partitions", len(parts)).
		Int("union_rows", len(union.ids)).
		Msg("computed barcode union")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: zero-fill each partition's missing barcodes and reorder all
	// partitions onto the union sequence.
	filled := make(map[string]int, len(parts))
	aligned := make([]*matrix.Sparse, len(parts))
	for i, p := range parts {
		missing := union.complement(present[i])
		complement := matrix.NewZero(missing, p.Table.ColIDs())
		widened, err := p.Table.ConcatRows(complement)
		if err != nil {
			return nil, fmt.Errorf("extending partition %s: %w", p.Name, err)
		}
		aligned[i], err = widened.ReorderRows(union.ids)
		if err != nil {
			return nil, fmt.Errorf("reordering partition %s: %w", p.Name, err)
		}
		filled[p.Name] = len(missing)
		log.Debug().
			Str("category", p.Name).
			Int("filled_rows", len(missing)).
			Msg("zero-filled missing barcodes")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: verify the feature axis agrees across partitions before any
	// value is summed.
	ref := aligned[0].ColIDs()
	for i := 1; i < len(aligned); i++ {
		if err := verifyColumns(parts[0].Name, parts[i].Name, ref, aligned[i].ColIDs()); err != nil {
			return nil, err
		}
	}

	// Step 4: sum element-wise and attach the per-category layers.
	merged, err := aligned[0].Add(aligned[1:]...)
	if err != nil {
		return nil, fmt.Errorf("summing partitions: %w", err)
	}

	layers := make([]matrix.Layer, len(parts))
	for i, p := range parts {
		layers[i] = matrix.Layer{Name: p.Name, Matrix: aligned[i]}
	}

	stats := Stats{
		Partitions:  len(parts),
		UnionRows:   len(union.ids),
		Columns:     merged.Cols(),
		Filled:      filled,
		MergedNNZ:   merged.NNZ(),
		TotalTimeMs: time.Since(start).Milliseconds(),
	}
	log.Debug().
		Int("merged_nnz", stats.MergedNNZ).
		Int64("total_time_ms", stats.TotalTimeMs).
		Msg("merged partitions")

	return &Result{
		Assembled: &matrix.Assembled{X: merged, Layers: layers},
		Union:     union.ids,
		Stats:     stats,
	}, nil
}

// barcodeUnion is the materialized union sequence plus the first-seen
// position index the presence bitmaps are keyed to.
type barcodeUnion struct {
	ids       []string // final order (lexicographic or first-seen)
	firstSeen []string // position i holds the barcode assigned index i
}

// union scans every partition once, assigning each distinct barcode a stable
// index and recording per-partition presence as a bitmap over those indices.
// A barcode repeated within one partition is fatal: positional alignment is
// undefined for duplicated identifiers.
func (r *reconciler) union(parts []Partition) (*barcodeUnion, []*roaring.Bitmap, error) {
	index := make(map[string]uint32)
	var firstSeen []string
	present := make([]*roaring.Bitmap, len(parts))

	for i, p := range parts {
		bm := roaring.New()
		for _, id := range p.Table.RowIDs() {
			pos, ok := index[id]
			if !ok {
				pos = uint32(len(firstSeen))
				index[id] = pos
				firstSeen = append(firstSeen, id)
			}
			if bm.Contains(pos) {
				return nil, nil, fmt.Errorf("duplicate barcode %q in partition %s: %w", id, p.Name, pkgerrors.ErrInvalidInput)
			}
			bm.Add(pos)
		}
		present[i] = bm
	}

	ids := firstSeen
	if r.order == OrderLexicographic {
		ids = append([]string(nil), firstSeen...)
		sort.Strings(ids)
	}

	return &barcodeUnion{ids: ids, firstSeen: firstSeen}, present, nil
}

// complement returns the barcodes of the union absent from present, in
// first-seen order.
func (u *barcodeUnion) complement(present *roaring.Bitmap) []string {
	universe := roaring.New()
	universe.AddRange(0, uint64(len(u.firstSeen)))
	missing := roaring.AndNot(universe, present)

	ids := make([]string, 0, missing.GetCardinality())
	it := missing.Iterator()
	for it.HasNext() {
		ids = append(ids, u.firstSeen[it.Next()])
	}
	return ids
}

// verifyColumns checks two feature identifier sequences element-wise.
func verifyColumns(refName, name string, ref, got []string) error {
	if len(ref) != len(got) {
		return pkgerrors.NewAlignmentError("column", refName, name, -1)
	}
	for i := range ref {
		if ref[i] != got[i] {
			return pkgerrors.NewAlignmentError("column", refName, name, i)
		}
	}
	return nil
}

// Option Functions
// ================

// WithFirstSeenOrder orders the barcode union by first appearance across
// partitions instead of lexicographically.
func WithFirstSeenOrder() Option {
	return func(r *reconciler) error {
		r.order = OrderFirstSeen
		return nil
	}
}

// WithOrder sets the union ordering explicitly.
func WithOrder(order UnionOrder) Option {
	return func(r *reconciler) error {
		if order != OrderLexicographic && order != OrderFirstSeen {
			return fmt.Errorf("unknown union order %d", order)
		}
		r.order = order
		return nil
	}
}
