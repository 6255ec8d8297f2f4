package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"genegraph/internal/models"
	"genegraph/internal/util"
)

type RunRepo struct {
	db *DB

	schemaMu       sync.Mutex
	schemaPrepared bool
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) CreateRun(ctx context.Context, run models.Run) error {
	if err := r.ensureRunSchema(ctx); err != nil {
		return err
	}
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO ingest_runs(run_id, status, taxon_ids, test_mode)
VALUES ($1::uuid, $2, $3, $4)`,
		run.RunID, run.Status, strings.Join(run.TaxonIDs, ","), run.TestMode)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (r *RunRepo) UpdateRun(ctx context.Context, runID, status string, nodeCount, edgeCount, orthologs int, failReason string) error {
	if err := r.ensureRunSchema(ctx); err != nil {
		return err
	}
	_, err := r.db.Pool.Exec(ctx, `
UPDATE ingest_runs
SET status = $2,
    node_count = GREATEST(node_count, $3),
    edge_count = GREATEST(edge_count, $4),
    ortholog_count = GREATEST(ortholog_count, $5),
    fail_reason = NULLIF($6, ''),
    updated_at = NOW()
WHERE run_id = $1::uuid`,
		runID, status, nodeCount, edgeCount, orthologs, failReason)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, runID string) (models.Run, error) {
	if err := r.ensureRunSchema(ctx); err != nil {
		return models.Run{}, err
	}
	var run models.Run
	var taxa string
	var failReason *string
	err := r.db.Pool.QueryRow(ctx, `
SELECT run_id::text, status, taxon_ids, test_mode, node_count, edge_count, ortholog_count, fail_reason, created_at, updated_at
FROM ingest_runs WHERE run_id = $1::uuid`, runID).
		Scan(&run.RunID, &run.Status, &taxa, &run.TestMode, &run.NodeCount, &run.EdgeCount, &run.Orthologs, &failReason, &run.CreatedAt, &run.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Run{}, util.ErrRunNotFound
	}
	if err != nil {
		return models.Run{}, fmt.Errorf("get run: %w", err)
	}
	if taxa != "" {
		run.TaxonIDs = strings.Split(taxa, ",")
	}
	if failReason != nil {
		run.FailReason = *failReason
	}
	return run, nil
}

func (r *RunRepo) ListRuns(ctx context.Context) ([]models.Run, error) {
	if err := r.ensureRunSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT run_id::text, status, taxon_ids, test_mode, node_count, edge_count, ortholog_count, fail_reason, created_at, updated_at
FROM ingest_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Run, 0)
	for rows.Next() {
		var run models.Run
		var taxa string
		var failReason *string
		if err := rows.Scan(&run.RunID, &run.Status, &taxa, &run.TestMode, &run.NodeCount, &run.EdgeCount, &run.Orthologs, &failReason, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if taxa != "" {
			run.TaxonIDs = strings.Split(taxa, ",")
		}
		if failReason != nil {
			run.FailReason = *failReason
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func (r *RunRepo) ensureRunSchema(ctx context.Context) error {
	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()

	if r.schemaPrepared {
		return nil
	}

	ddl := `
CREATE TABLE IF NOT EXISTS ingest_runs (
  run_id UUID PRIMARY KEY,
  status TEXT NOT NULL CHECK (status IN ('running','completed','failed')),
  taxon_ids TEXT NOT NULL DEFAULT '',
  test_mode BOOLEAN NOT NULL DEFAULT FALSE,
  node_count INT NOT NULL DEFAULT 0,
  edge_count INT NOT NULL DEFAULT 0,
  ortholog_count INT NOT NULL DEFAULT 0,
  fail_reason TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ingest_runs_created ON ingest_runs(created_at DESC);
`
	if _, err := r.db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure run schema: %w", err)
	}
	r.schemaPrepared = true
	return nil
}
