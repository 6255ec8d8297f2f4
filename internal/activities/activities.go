package activities

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.temporal.io/sdk/temporal"

	"genegraph/internal/config"
	"genegraph/internal/graph"
	"genegraph/internal/sources/ensembl"
	"genegraph/internal/sources/ncbigene"
	"genegraph/internal/storage"
	"genegraph/internal/util"
)

// ErrTypeMalformedRecord is the application error type attached to
// malformed-record failures so workflows can classify them non-retryable.
const ErrTypeMalformedRecord = "MalformedRecord"

// classifyParseError converts malformed-record failures into typed
// application errors. Plain wrapped sentinels lose their identity crossing
// the activity boundary; the retry policy matches on the error type.
func classifyParseError(err error) error {
	if errors.Is(err, util.ErrMalformedRecord) {
		return temporal.NewApplicationError(err.Error(), ErrTypeMalformedRecord)
	}
	return err
}

type Activities struct {
	cfg       config.Config
	runRepo   *storage.RunRepo
	graphRepo *storage.GraphRepo
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	return &Activities{
		cfg:       cfg,
		runRepo:   storage.NewRunRepo(db),
		graphRepo: storage.NewGraphRepo(db),
	}, nil
}

// ParseNCBIGeneActivity runs the gene_info, gene_history, and gene2pubmed
// passes over a single graph session so classification decisions from the
// first pass carry into the later ones, then persists the snapshot.
func (a *Activities) ParseNCBIGeneActivity(ctx context.Context, in ParseNCBIGeneInput) (ParseNCBIGeneOutput, error) {
	mem := graph.NewMemory()
	p := ncbigene.NewParser(mem, graph.NewRegistry(), ncbigene.Options{
		TaxonIDs: in.TaxonIDs,
		GeneIDs:  in.GeneIDs,
		TestMode: in.TestMode,
	})

	if err := a.parseFile(in.InputDir, "gene_info", p.ParseGeneInfo); err != nil {
		return ParseNCBIGeneOutput{}, err
	}
	if err := a.parseFile(in.InputDir, "gene_history", p.ParseGeneHistory); err != nil {
		return ParseNCBIGeneOutput{}, err
	}
	if err := a.parseFile(in.InputDir, "gene2pubmed", p.ParseGene2Pubmed); err != nil {
		return ParseNCBIGeneOutput{}, err
	}

	nodes, edges, err := a.graphRepo.SaveSnapshot(ctx, in.RunID, mem, a.cfg.UpsertBatchSize)
	if err != nil {
		return ParseNCBIGeneOutput{}, err
	}
	return ParseNCBIGeneOutput{NodeCount: nodes, EdgeCount: edges, SeedGeneIDs: p.SeenGeneIDs()}, nil
}

// ParseEnsemblActivity processes one BioMart export per requested taxon.
// A missing export for a taxon is skipped rather than failing the run;
// Ensembl coverage varies by species.
func (a *Activities) ParseEnsemblActivity(ctx context.Context, in ParseEnsemblInput) (ParseEnsemblOutput, error) {
	mem := graph.NewMemory()
	p := ensembl.NewParser(mem, graph.NewRegistry(), ensembl.Options{
		GeneIDs:  in.GeneIDs,
		TestMode: in.TestMode,
	})

	for _, tax := range in.TaxonIDs {
		name := "ensembl_biomart_" + tax
		f, err := openInput(in.InputDir, name)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return ParseEnsemblOutput{}, err
		}
		err = p.ParseGenes(f, tax)
		f.Close()
		if err != nil {
			return ParseEnsemblOutput{}, classifyParseError(fmt.Errorf("parse %s: %w", name, err))
		}
	}

	nodes, edges, err := a.graphRepo.SaveSnapshot(ctx, in.RunID, mem, a.cfg.UpsertBatchSize)
	if err != nil {
		return ParseEnsemblOutput{}, err
	}
	return ParseEnsemblOutput{NodeCount: nodes, EdgeCount: edges}, nil
}

// ResolveOrthologsActivity loads the gene_group file into a two-way group
// index and emits ortholog associations for every seed gene from the
// gene_info pass.
func (a *Activities) ResolveOrthologsActivity(ctx context.Context, in ResolveOrthologsInput) (ResolveOrthologsOutput, error) {
	f, err := openInput(in.InputDir, "gene_group")
	if err != nil {
		return ResolveOrthologsOutput{}, err
	}
	ix, err := ncbigene.BuildGroupIndex(f)
	f.Close()
	if err != nil {
		return ResolveOrthologsOutput{}, classifyParseError(fmt.Errorf("parse gene_group: %w", err))
	}

	mem := graph.NewMemory()
	n := ncbigene.EmitOrthologs(mem, ix, in.SeedGeneIDs)

	nodes, edges, err := a.graphRepo.SaveSnapshot(ctx, in.RunID, mem, a.cfg.UpsertBatchSize)
	if err != nil {
		return ResolveOrthologsOutput{}, err
	}
	return ResolveOrthologsOutput{Associations: n, NodeCount: nodes, EdgeCount: edges}, nil
}

func (a *Activities) MarkRunActivity(ctx context.Context, in MarkRunInput) error {
	return a.runRepo.UpdateRun(ctx, in.RunID, in.Status, in.NodeCount, in.EdgeCount, in.Orthologs, in.FailReason)
}

func (a *Activities) WriteRunManifestActivity(ctx context.Context, in WriteRunManifestInput) (WriteRunManifestOutput, error) {
	_ = ctx
	path := filepath.Join(a.cfg.DataOutRoot, "runs", in.RunID, "manifest.json")
	if err := util.WriteJSONAtomic(path, in.Manifest); err != nil {
		return WriteRunManifestOutput{}, err
	}
	return WriteRunManifestOutput{Path: path}, nil
}

func (a *Activities) parseFile(dir, name string, parse func(io.Reader) error) error {
	f, err := openInput(dir, name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return classifyParseError(fmt.Errorf("parse %s: %w", name, err))
	}
	return nil
}

// openInput opens dir/name, falling back to the gzipped variant. NCBI ships
// these files gzipped; fixtures are plain text.
func openInput(dir, name string) (io.ReadCloser, error) {
	path := util.SafeJoin(dir, name)
	if f, err := os.Open(path); err == nil {
		return f, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	f, err := os.Open(path + ".gz")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("open %s.gz: %w", path, err)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip %s.gz: %w", path, err)
	}
	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
