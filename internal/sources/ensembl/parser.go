// Package ensembl parses BioMart gene exports: one TSV per taxon carrying
// the Ensembl gene id, display name, description, biotype, and the
// equivalent NCBI (and, for human, HGNC) identifiers.
package ensembl

import (
	"encoding/csv"
	"fmt"
	"io"

	"genegraph/internal/curie"
	"genegraph/internal/graph"
	"genegraph/internal/util"
)

type Options struct {
	// GeneIDs restricts processing to these NCBI gene numbers when TestMode
	// is set.
	GeneIDs  []string
	TestMode bool
}

type Parser struct {
	sink     graph.Sink
	kinds    *graph.Registry
	genes    map[string]bool
	testMode bool
}

func NewParser(sink graph.Sink, kinds *graph.Registry, opts Options) *Parser {
	genes := make(map[string]bool, len(opts.GeneIDs))
	for _, g := range opts.GeneIDs {
		genes[g] = true
	}
	return &Parser{sink: sink, kinds: kinds, genes: genes, testMode: opts.TestMode}
}

// ParseGenes processes one BioMart export for taxNum. Human exports carry a
// sixth hgnc_id column. Rows with fewer than five fields abort the file.
func (p *Parser) ParseGenes(r io.Reader, taxNum string) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("ensembl %s: %w: %v", taxNum, util.ErrMalformedRecord, err)
		}
		if len(row) < 5 {
			return fmt.Errorf("ensembl %s: %w: expected at least 5 fields, got %d", taxNum, util.ErrMalformedRecord, len(row))
		}
		ensemblGeneID, name, description, biotype, entrez := row[0], row[1], row[2], row[3], row[4]
		hgncID := ""
		if taxNum == "9606" && len(row) > 5 {
			hgncID = row[5]
		}

		if p.testMode && entrez != "" && !p.genes[entrez] {
			continue
		}

		geneID := curie.Make("ENSEMBL", ensemblGeneID)
		typeCode := MapBiotype(biotype)

		switch p.kinds.Decide(geneID, typeCode) {
		case graph.KindClass:
			p.sink.AddClass(geneID, name, typeCode, description)
			if entrez != "" {
				p.sink.AddEquivalence(geneID, curie.Make("NCBIGene", entrez))
			}
			if hgncID != "" {
				p.sink.AddEquivalence(geneID, curie.Clean(hgncID))
			}
		case graph.KindIndividual:
			p.sink.AddIndividual(geneID, name, typeCode, description)
			if entrez != "" {
				p.sink.AddSameIndividual(geneID, curie.Make("NCBIGene", entrez))
			}
			if hgncID != "" {
				p.sink.AddSameIndividual(geneID, curie.Clean(hgncID))
			}
		}
		p.sink.AddTaxon(curie.Make("NCBITaxon", taxNum), geneID)
	}
	return nil
}
