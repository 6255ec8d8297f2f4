package ncbigene

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"genegraph/internal/curie"
	"genegraph/internal/graph"
	"genegraph/internal/util"
)

// OrthologyCitation is the provenance attached to every ortholog
// association; the NCBI gene_group annotation pipeline is described in
// PMID:24063302.
const OrthologyCitation = "PMID:24063302"

const relationOrtholog = "Ortholog"

// GroupIndex is the two-way index over the gene_group orthology table.
// Many groups are keyed by a human "lead" gene, so membership queries go
// member -> leader keys -> group members. The index is built in one forward
// pass and read-only afterwards.
type GroupIndex struct {
	// leader gene -> group members (the leader is a member of its own group)
	groups map[string]map[string]bool
	// gene -> leader keys of every group it belongs to
	leaders map[string]map[string]bool
	// gene -> taxon number, for either tuple position
	taxa map[string]string
}

// BuildGroupIndex consumes the gene_group 5-tuple stream, keeping only
// Ortholog relations. Rows with the wrong field count abort the build.
func BuildGroupIndex(r io.Reader) (*GroupIndex, error) {
	ix := &GroupIndex{
		groups:  map[string]map[string]bool{},
		leaders: map[string]map[string]bool{},
		taxa:    map[string]string{},
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = 5
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gene_group: %w: %v", util.ErrMalformedRecord, err)
		}
		taxA, geneA, rel, taxB, geneB := row[0], row[1], row[2], row[3], row[4]
		if rel != relationOrtholog {
			continue
		}

		if ix.groups[geneA] == nil {
			ix.groups[geneA] = map[string]bool{}
		}
		ix.groups[geneA][geneB] = true
		// The lead belongs to its own group, so a query on any member also
		// discovers the lead (and a query on the lead, its members).
		ix.groups[geneA][geneA] = true

		if ix.leaders[geneB] == nil {
			ix.leaders[geneB] = map[string]bool{}
		}
		ix.leaders[geneB][geneA] = true
		if ix.leaders[geneA] == nil {
			ix.leaders[geneA] = map[string]bool{}
		}
		ix.leaders[geneA][geneA] = true

		ix.taxa[geneA] = taxA
		ix.taxa[geneB] = taxB
	}
	return ix, nil
}

// Mates returns every gene orthologous to geneNum: the union of the members
// of all groups geneNum belongs to, minus geneNum itself, sorted. A gene
// with no recorded relation yields an empty result.
func (ix *GroupIndex) Mates(geneNum string) []string {
	members := map[string]bool{}
	for leader := range ix.leaders[geneNum] {
		for member := range ix.groups[leader] {
			if member != geneNum {
				members[member] = true
			}
		}
	}
	out := make([]string, 0, len(members))
	for m := range members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Taxon returns the taxon number recorded for geneNum during the build.
func (ix *GroupIndex) Taxon(geneNum string) (string, bool) {
	t, ok := ix.taxa[geneNum]
	return t, ok
}

// EmitOrthologs queries the index for each seed gene (canonical NCBIGene
// ids) and emits one ortholog association per discovered (seed, mate) pair.
// Mates are always modeled as gene classes regardless of any prior kind
// decision, since the gene_group table never carries unknown-significance
// entries. A mate missing from the taxon index is skipped, not fatal.
// Returns the number of associations emitted.
func EmitOrthologs(sink graph.Sink, ix *GroupIndex, seedGeneIDs []string) int {
	emitted := 0
	for _, seedID := range seedGeneIDs {
		seedNum := strings.TrimPrefix(seedID, "NCBIGene:")
		for _, mate := range ix.Mates(seedNum) {
			taxNum, ok := ix.Taxon(mate)
			if !ok {
				log.Printf("ncbigene: no taxon recorded for ortholog %s of %s, skipping", mate, seedID)
				continue
			}
			mateID := curie.Make("NCBIGene", mate)
			sink.AddClass(mateID, "", graph.TypeGene, "")
			sink.AddTaxon(curie.Make("NCBITaxon", taxNum), mateID)
			emitAssociation(sink, seedID, graph.PredOrthologousTo, mateID, OrthologyCitation)
			emitted++
		}
	}
	return emitted
}

// emitAssociation writes the direct triple plus its reified association
// node carrying the provenance citation.
func emitAssociation(sink graph.Sink, subject, predicate, object, citation string) {
	sink.AddTriple(subject, predicate, object)

	assocID := "MONARCH:" + util.SHA256Hex([]byte(subject+predicate+object))[:16]
	sink.AddIndividual(assocID, "", graph.TypeAssociation, "")
	sink.AddTriple(assocID, graph.PredAssocSubject, subject)
	sink.AddTriple(assocID, graph.PredAssocPredicate, predicate)
	sink.AddTriple(assocID, graph.PredAssocObject, object)
	sink.AddTriple(assocID, graph.PredSource, citation)
}
