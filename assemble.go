package mtxkit

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/omicstation/mtxkit/pkg/annotate"
	"github.com/omicstation/mtxkit/pkg/bundle"
	"github.com/omicstation/mtxkit/pkg/constants"
	"github.com/omicstation/mtxkit/pkg/discover"
	"github.com/omicstation/mtxkit/pkg/logging"
	"github.com/omicstation/mtxkit/pkg/mtx"
	"github.com/omicstation/mtxkit/pkg/reconcile"
	"github.com/omicstation/mtxkit/pkg/versions"
)

// Assemble runs the full pipeline for the configured sample.
func (k *kit) Assemble(ctx context.Context) (*Result, error) {
	cfg := k.config

	runID := cfg.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	base := cfg.logger
	if base == nil {
		base = logging.Default()
	}
	log := base.With().
		Str("sample", cfg.sample).
		Str("workflow", cfg.wf.String()).
		Str("run_id", runID).
		Logger()
	ctx = logging.WithLogger(ctx, &log)

	log.Info().Str("inputs", cfg.inputsDir).Msg("assembling count matrix")

	// Step 1: resolve the workflow's input files.
	triples, err := discover.Inputs(cfg.inputsDir, cfg.wf)
	if err != nil {
		return nil, err
	}

	// Step 2: load each matrix with its side tables.
	parts := make([]reconcile.Partition, 0, len(triples))
	for _, tr := range triples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := mtx.Load(tr.Matrix, tr.Barcodes, tr.Features)
		if err != nil {
			if tr.Category != "" {
				return nil, fmt.Errorf("loading %s matrix: %w", tr.Category, err)
			}
			return nil, fmt.Errorf("loading matrix: %w", err)
		}
		log.Debug().
			Str("category", tr.Category).
			Str("matrix", tr.Matrix).
			Int("rows", m.Rows()).
			Int("columns", m.Cols()).
			Int("entries", m.NNZ()).
			Msg("loaded matrix")
		parts = append(parts, reconcile.Partition{Name: tr.Category, Table: m})
	}

	// Step 3: reconcile the categories onto the shared barcode union.
	rec, err := reconcile.New(reconcile.WithOrder(cfg.order))
	if err != nil {
		return nil, err
	}
	res, err := rec.Reconcile(ctx, parts)
	if err != nil {
		return nil, err
	}

	// Step 4: annotate the feature axis.
	var t2g *annotate.T2G
	if cfg.t2gPath != "" {
		t2g, err = annotate.LoadT2G(cfg.t2gPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("t2g", cfg.t2gPath).Int("genes", t2g.Len()).Msg("loaded gene mapping")
	}
	features := annotate.Annotate(res.Assembled.X.ColIDs(), t2g)

	// Step 5: write the output bundle.
	var bopts []bundle.Option
	if !cfg.compress {
		bopts = append(bopts, bundle.WithUncompressed())
	}
	manifest, err := bundle.Write(ctx, cfg.outputDir, &bundle.Bundle{
		Sample:    cfg.sample,
		InputType: cfg.inputType,
		Workflow:  cfg.wf,
		Assembled: res.Assembled,
		Features:  features,
		Version:   cfg.version,
		RunID:     runID,
	}, bopts...)
	if err != nil {
		return nil, err
	}

	// Step 6: record the tool versions that produced the bundle.
	versionsPath := ""
	if cfg.writeVersions {
		vf := versions.New(cfg.processLabel,
			versions.Tool{Name: "mtxkit", Version: cfg.version},
			versions.Tool{Name: "go", Version: runtime.Version()},
		)
		versionsPath = filepath.Join(cfg.outputDir, constants.VersionsFilename)
		if err := vf.WriteFile(versionsPath); err != nil {
			return nil, err
		}
	}

	bundleDir := filepath.Join(cfg.outputDir, bundle.Dir(cfg.sample, cfg.inputType))
	log.Info().
		Str("bundle", bundleDir).
		Int("rows", manifest.Rows).
		Int("columns", manifest.Columns).
		Int("entries", manifest.Entries).
		Msg("assembly complete")

	return &Result{
		Manifest:     manifest,
		Stats:        res.Stats,
		BundleDir:    bundleDir,
		VersionsPath: versionsPath,
	}, nil
}
