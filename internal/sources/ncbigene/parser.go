// Package ncbigene parses the NCBI Gene flat-file exports: gene_info (gene
// records, cross-references, chromosomal placement), gene_history
// (deprecated ids and their replacements), gene2pubmed (publication
// mentions), and gene_group (orthology). Genes are modeled as classes when
// properly typed; entries of unknown significance become individuals. The
// per-gene class-vs-individual decision is shared across passes through a
// graph.Registry, so the passes must run against one Parser in file order.
package ncbigene

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"genegraph/internal/curie"
	"genegraph/internal/genomic"
	"genegraph/internal/graph"
	"genegraph/internal/util"
)

const geneInfoFields = 15

// Cross-reference namespaces that never become equivalence links.
var excludedXrefPrefixes = map[string]bool{
	"Vega":         true,
	"IMGT/GENE-DB": true,
}

type Options struct {
	// TaxonIDs restricts processing to these NCBI taxon numbers.
	TaxonIDs []string
	// GeneIDs restricts processing further when TestMode is set.
	GeneIDs  []string
	TestMode bool
}

type Parser struct {
	sink     graph.Sink
	kinds    *graph.Registry
	taxa     map[string]bool
	genes    map[string]bool
	testMode bool

	seen    map[string]bool
	seenIDs []string
}

func NewParser(sink graph.Sink, kinds *graph.Registry, opts Options) *Parser {
	taxa := make(map[string]bool, len(opts.TaxonIDs))
	for _, t := range opts.TaxonIDs {
		taxa[t] = true
	}
	genes := make(map[string]bool, len(opts.GeneIDs))
	for _, g := range opts.GeneIDs {
		genes[g] = true
	}
	return &Parser{
		sink:     sink,
		kinds:    kinds,
		taxa:     taxa,
		genes:    genes,
		testMode: opts.TestMode,
		seen:     map[string]bool{},
	}
}

// SeenGeneIDs returns the canonical ids of every gene record processed by
// ParseGeneInfo, in input order. These seed the ortholog resolution.
func (p *Parser) SeenGeneIDs() []string {
	return p.seenIDs
}

func (p *Parser) keep(taxNum, geneNum string) bool {
	if p.testMode {
		return p.genes[geneNum]
	}
	return p.taxa[taxNum]
}

// ParseGeneInfo processes the gene_info export: one class (or individual)
// per gene with label, description, synonyms, cleaned cross-references, and
// chromosomal placement. Taxon and genome nodes for the configured taxa are
// added up front.
func (p *Parser) ParseGeneInfo(r io.Reader) error {
	for t := range p.taxa {
		taxID := curie.Make("NCBITaxon", t)
		p.sink.AddClass(taxID, "", "", "")
		p.sink.AddIndividual(taxID+"#genome", t+" genome", graph.TypeGenome, "")
		p.sink.AddTriple(taxID+"#genome", graph.PredInTaxon, taxID)
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != geneInfoFields {
			return fmt.Errorf("gene_info: %w: expected %d fields, got %d", util.ErrMalformedRecord, geneInfoFields, len(fields))
		}
		taxNum, geneNum := fields[0], fields[1]
		symbol, synonyms, xrefs := fields[2], fields[4], fields[5]
		chrom, mapLoc, desc := fields[6], fields[7], fields[8]
		typeOfGene, name, otherDesignations := fields[9], fields[11], fields[13]

		if !p.keep(taxNum, geneNum) {
			continue
		}

		geneID := curie.Make("NCBIGene", geneNum)
		taxID := curie.Make("NCBITaxon", taxNum)
		typeCode := MapTypeOfGene(strings.TrimSpace(typeOfGene))

		label := symbol
		if symbol == "NEWENTRY" {
			label = ""
		}
		if desc == "-" {
			desc = ""
		}

		if !p.seen[geneID] {
			p.seen[geneID] = true
			p.seenIDs = append(p.seenIDs, geneID)
		}

		switch p.kinds.Decide(geneID, typeCode) {
		case graph.KindClass:
			p.sink.AddClass(geneID, label, typeCode, desc)
		case graph.KindIndividual:
			// Not really a gene; keep it out of the class hierarchy.
			p.sink.AddIndividual(geneID, label, typeCode, desc)
		}

		if name != "-" {
			p.sink.AddSynonym(geneID, name, graph.SynonymExact)
		}
		if strings.TrimSpace(synonyms) != "-" {
			for _, syn := range strings.Split(synonyms, "|") {
				p.sink.AddSynonym(geneID, strings.TrimSpace(syn), graph.SynonymRelated)
			}
		}
		if strings.TrimSpace(otherDesignations) != "-" {
			for _, syn := range strings.Split(otherDesignations, "|") {
				p.sink.AddSynonym(geneID, strings.TrimSpace(syn), graph.SynonymRelated)
			}
		}

		if strings.TrimSpace(xrefs) != "-" {
			for _, raw := range strings.Split(strings.TrimSpace(xrefs), "|") {
				p.addXref(geneID, raw)
			}
		}

		p.addLocation(geneID, chrom, mapLoc, taxNum)
		p.sink.AddTaxon(taxID, geneID)
	}
	return s.Err()
}

// addXref routes one raw cross-reference token. HPRD entries are proteins,
// linked as gene products rather than equivalents; a few namespaces are
// excluded from equivalence entirely.
func (p *Parser) addXref(geneID, raw string) {
	fixed := strings.TrimSpace(curie.Clean(raw))
	if fixed == "" {
		return
	}
	prefix := curie.Prefix(fixed)
	if prefix == "HPRD" {
		p.sink.AddTriple(geneID, graph.PredHasGeneProduct, fixed)
		return
	}
	if excludedXrefPrefixes[prefix] {
		return
	}
	if p.kinds.Lookup(geneID) == graph.KindClass {
		p.sink.AddEquivalence(geneID, fixed)
	} else {
		p.sink.AddSameIndividual(geneID, fixed)
	}
}

func (p *Parser) addLocation(geneID, chrom, mapLoc, taxNum string) {
	placements := genomic.ResolveLocations(chrom, mapLoc, taxNum)
	for _, pl := range placements {
		p.sink.AddClass(pl.ChromosomeID, "", graph.TypeChromosome, "")
		p.sink.AddSynonym(pl.ChromosomeID, genomic.ChromLabel(pl.ChromosomeLabel, taxNum), graph.SynonymExact)
		if pl.Band {
			p.sink.AddClass(pl.RegionID, "", graph.TypeChromosomeBand, "")
			p.sink.AddTriple(pl.RegionID, graph.PredSubsequenceOf, pl.ChromosomeID)
		}
		p.sink.AddTriple(geneID, graph.PredSubsequenceOf, pl.RegionID)
	}
}

// ParseGeneHistory processes the gene_history export, deprecating each
// discontinued id in favor of its current replacement and carrying the old
// symbol forward as a synonym so historical names stay searchable.
func (p *Parser) ParseGeneHistory(r io.Reader) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return fmt.Errorf("gene_history: %w: expected 5 fields, got %d", util.ErrMalformedRecord, len(fields))
		}
		taxNum, geneNum := fields[0], fields[1]
		discontinuedNum, discontinuedSymbol := fields[2], fields[3]

		if geneNum == "-" || discontinuedNum == "-" {
			continue
		}
		if !p.keep(taxNum, geneNum) {
			continue
		}

		geneID := curie.Make("NCBIGene", geneNum)
		oldID := curie.Make("NCBIGene", discontinuedNum)

		kind := p.kinds.Lookup(geneID)
		if kind == graph.KindUnknown {
			kind = graph.KindIndividual
		}
		p.LinkDeprecated(oldID, discontinuedSymbol, []string{geneID}, kind)
	}
	return s.Err()
}

// LinkDeprecated marks oldID withdrawn in favor of newIDs: both sides are
// ensured to exist under kind, oldID is flagged deprecated with newIDs as
// its replacement set, and oldID's symbol is attached as a synonym of the
// first replacement. Class-kind ids only ever receive class-level
// operations.
func (p *Parser) LinkDeprecated(oldID, oldSymbol string, newIDs []string, kind graph.Kind) {
	p.kinds.Record(oldID, kind)
	for _, id := range newIDs {
		p.kinds.Record(id, kind)
	}
	switch kind {
	case graph.KindClass:
		p.sink.AddClass(oldID, oldSymbol, "", "")
		for _, id := range newIDs {
			p.sink.AddClass(id, "", "", "")
		}
	default:
		p.sink.AddIndividual(oldID, oldSymbol, "", "")
		for _, id := range newIDs {
			p.sink.AddIndividual(id, "", "", "")
		}
	}
	p.sink.AddDeprecated(oldID, newIDs)
	if oldSymbol != "" && oldSymbol != "-" && len(newIDs) > 0 {
		p.sink.AddSynonym(newIDs[0], oldSymbol, graph.SynonymExact)
	}
}

// ParseGene2Pubmed processes the gene2pubmed export: each publication
// becomes a journal-article individual with an is-about link to the gene.
func (p *Parser) ParseGene2Pubmed(r io.Reader) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return fmt.Errorf("gene2pubmed: %w: expected 3 fields, got %d", util.ErrMalformedRecord, len(fields))
		}
		taxNum, geneNum, pubmedNum := fields[0], fields[1], fields[2]

		if geneNum == "-" || pubmedNum == "-" {
			continue
		}
		if !p.keep(taxNum, geneNum) {
			continue
		}

		geneID := curie.Make("NCBIGene", geneNum)
		pubmedID := curie.Make("PMID", pubmedNum)

		if p.kinds.Lookup(geneID) == graph.KindClass {
			p.sink.AddClass(geneID, "", "", "")
		} else {
			p.sink.AddIndividual(geneID, "", "", "")
		}
		p.sink.AddIndividual(pubmedID, "", graph.TypeJournalArticle, "")
		p.sink.AddTriple(pubmedID, graph.PredIsAbout, geneID)
	}
	return s.Err()
}
