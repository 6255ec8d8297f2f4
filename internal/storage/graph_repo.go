package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"genegraph/internal/graph"
	"genegraph/internal/models"
)

type GraphRepo struct {
	db *DB

	schemaMu       sync.Mutex
	schemaPrepared bool
}

func NewGraphRepo(db *DB) *GraphRepo {
	return &GraphRepo{db: db}
}

// SaveSnapshot persists every node, synonym, and edge of an in-memory graph
// under runID, sending upserts in batches of batchSize statements. Upserts
// are idempotent so a retried activity re-writes the same rows.
func (r *GraphRepo) SaveSnapshot(ctx context.Context, runID string, m *graph.Memory, batchSize int) (nodeCount, edgeCount int, err error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	if err := r.ensureGraphSchema(ctx); err != nil {
		return 0, 0, err
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin graph snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	b := &pgx.Batch{}
	flush := func() error {
		if b.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return fmt.Errorf("send graph snapshot batch: %w", err)
		}
		b = &pgx.Batch{}
		return nil
	}
	queue := func(sql string, args ...any) error {
		b.Queue(sql, args...)
		if b.Len() >= batchSize {
			return flush()
		}
		return nil
	}

	for _, n := range m.Nodes() {
		err = queue(`
INSERT INTO graph_nodes(run_id, node_id, label, kind, type_code, description, deprecated)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
ON CONFLICT (run_id, node_id)
DO UPDATE SET
  label = CASE WHEN EXCLUDED.label <> '' THEN EXCLUDED.label ELSE graph_nodes.label END,
  kind = EXCLUDED.kind,
  type_code = CASE WHEN EXCLUDED.type_code <> '' THEN EXCLUDED.type_code ELSE graph_nodes.type_code END,
  description = CASE WHEN EXCLUDED.description <> '' THEN EXCLUDED.description ELSE graph_nodes.description END,
  deprecated = graph_nodes.deprecated OR EXCLUDED.deprecated`,
			runID, n.ID, n.Label, n.Kind.String(), n.TypeCode, n.Description, n.Deprecated)
		if err != nil {
			return 0, 0, err
		}
		nodeCount++
		for _, s := range n.Synonyms {
			err = queue(`
INSERT INTO graph_synonyms(run_id, node_id, synonym, relation)
VALUES ($1::uuid, $2, $3, $4)
ON CONFLICT (run_id, node_id, synonym, relation) DO NOTHING`,
				runID, n.ID, s.Text, string(s.Relation))
			if err != nil {
				return 0, 0, err
			}
		}
	}

	for _, e := range m.Edges() {
		err = queue(`
INSERT INTO graph_edges(run_id, subject, predicate, object)
VALUES ($1::uuid, $2, $3, $4)
ON CONFLICT (run_id, subject, predicate, object) DO NOTHING`,
			runID, e.Subject, e.Predicate, e.Object)
		if err != nil {
			return 0, 0, err
		}
		edgeCount++
	}

	if err := flush(); err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit graph snapshot tx: %w", err)
	}
	return nodeCount, edgeCount, nil
}

func (r *GraphRepo) GetGraph(ctx context.Context, runID string) ([]models.GraphNode, []models.GraphEdge, error) {
	if err := r.ensureGraphSchema(ctx); err != nil {
		return nil, nil, err
	}
	nodeRows, err := r.db.Pool.Query(ctx, `
SELECT node_id, label, kind, type_code, description, deprecated
FROM graph_nodes WHERE run_id = $1::uuid ORDER BY node_id`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query graph nodes: %w", err)
	}
	defer nodeRows.Close()
	nodes := make([]models.GraphNode, 0)
	for nodeRows.Next() {
		var n models.GraphNode
		if err := nodeRows.Scan(&n.ID, &n.Label, &n.Kind, &n.TypeCode, &n.Description, &n.Deprecated); err != nil {
			return nil, nil, fmt.Errorf("scan graph node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate graph nodes: %w", err)
	}

	edgeRows, err := r.db.Pool.Query(ctx, `
SELECT subject, predicate, object
FROM graph_edges WHERE run_id = $1::uuid ORDER BY subject, predicate, object`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query graph edges: %w", err)
	}
	defer edgeRows.Close()
	edges := make([]models.GraphEdge, 0)
	for edgeRows.Next() {
		var e models.GraphEdge
		if err := edgeRows.Scan(&e.Subject, &e.Predicate, &e.Object); err != nil {
			return nil, nil, fmt.Errorf("scan graph edge: %w", err)
		}
		edges = append(edges, e)
	}
	return nodes, edges, edgeRows.Err()
}

// ListOrthologs returns the ortholog mates recorded for geneID in a run,
// reading the direct orthology edges in both orientations.
func (r *GraphRepo) ListOrthologs(ctx context.Context, runID, geneID string) ([]models.GraphEdge, error) {
	if err := r.ensureGraphSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT subject, predicate, object
FROM graph_edges
WHERE run_id = $1::uuid AND predicate = $2 AND (subject = $3 OR object = $3)
ORDER BY subject, object`, runID, graph.PredOrthologousTo, geneID)
	if err != nil {
		return nil, fmt.Errorf("query orthologs: %w", err)
	}
	defer rows.Close()
	out := make([]models.GraphEdge, 0)
	for rows.Next() {
		var e models.GraphEdge
		if err := rows.Scan(&e.Subject, &e.Predicate, &e.Object); err != nil {
			return nil, fmt.Errorf("scan ortholog edge: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *GraphRepo) ensureGraphSchema(ctx context.Context) error {
	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()

	if r.schemaPrepared {
		return nil
	}

	// Keep graph migrations resilient even if the operator forgot to run `make migrate`.
	ddl := `
CREATE TABLE IF NOT EXISTS graph_nodes (
  run_id UUID NOT NULL,
  node_id TEXT NOT NULL,
  label TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL CHECK (kind IN ('class','individual','unknown')),
  type_code TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  deprecated BOOLEAN NOT NULL DEFAULT FALSE,
  PRIMARY KEY (run_id, node_id)
);

CREATE TABLE IF NOT EXISTS graph_synonyms (
  run_id UUID NOT NULL,
  node_id TEXT NOT NULL,
  synonym TEXT NOT NULL,
  relation TEXT NOT NULL,
  PRIMARY KEY (run_id, node_id, synonym, relation)
);

CREATE TABLE IF NOT EXISTS graph_edges (
  run_id UUID NOT NULL,
  subject TEXT NOT NULL,
  predicate TEXT NOT NULL,
  object TEXT NOT NULL,
  PRIMARY KEY (run_id, subject, predicate, object)
);

CREATE INDEX IF NOT EXISTS idx_graph_edges_predicate ON graph_edges(run_id, predicate);
CREATE INDEX IF NOT EXISTS idx_graph_edges_object ON graph_edges(run_id, object);
`
	if _, err := r.db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}
	r.schemaPrepared = true
	return nil
}
