package ncbigene

import (
	"strings"
	"testing"

	"genegraph/internal/graph"
	"genegraph/internal/util"

	"github.com/stretchr/testify/require"
)

func geneInfoLine(fields ...string) string {
	return strings.Join(fields, "\t")
}

const header = "#tax_id\tGeneID\tSymbol\tLocusTag\tSynonyms\tdbXrefs\tchromosome\tmap_location\tdescription\ttype_of_gene\tSymbol_from_nomenclature_authority\tFull_name_from_nomenclature_authority\tNomenclature_status\tOther_designations\tModification_date\n"

func newTestParser(sink graph.Sink) *Parser {
	return NewParser(sink, graph.NewRegistry(), Options{TaxonIDs: []string{"9606"}})
}

func TestParseGeneInfoClassGene(t *testing.T) {
	line := geneInfoLine(
		"9606", "438", "ASMT", "-",
		"ASMTY|HIOMT",
		"MIM:402500|HGNC:HGNC:751|Ensembl:ENSG00000196433|HPRD:11479|Vega:OTTHUMG00000021065",
		"X|Y", "Xp22.3",
		"acetylserotonin O-methyltransferase",
		"protein-coding", "ASMT", "acetylserotonin O-methyltransferase",
		"O", "-", "20151127",
	)
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(header+line+"\n")))

	n, ok := m.Node("NCBIGene:438")
	require.True(t, ok)
	require.Equal(t, graph.KindClass, n.Kind)
	require.Equal(t, "ASMT", n.Label)
	require.Equal(t, "SO:0001217", n.TypeCode)

	// Normalized equivalences; Vega excluded, HPRD a gene product.
	require.True(t, m.HasEdge("NCBIGene:438", graph.PredEquivalentClass, "OMIM:402500"))
	require.True(t, m.HasEdge("HGNC:751", graph.PredEquivalentClass, "NCBIGene:438"))
	require.True(t, m.HasEdge("ENSEMBL:ENSG00000196433", graph.PredEquivalentClass, "NCBIGene:438"))
	require.True(t, m.HasEdge("NCBIGene:438", graph.PredHasGeneProduct, "HPRD:11479"))
	for _, e := range m.Edges() {
		require.NotContains(t, e.Object, "Vega:")
	}

	// Pseudoautosomal placement: one fact per chromosome.
	require.True(t, m.HasEdge("NCBIGene:438", graph.PredSubsequenceOf, "CHR:9606chrXp22.3"))
	require.True(t, m.HasEdge("NCBIGene:438", graph.PredSubsequenceOf, "CHR:9606chrYXp22.3"))
	require.True(t, m.HasEdge("NCBIGene:438", graph.PredInTaxon, "NCBITaxon:9606"))

	require.Equal(t, []string{"NCBIGene:438"}, p.SeenGeneIDs())
}

func TestParseGeneInfoUnknownSignificanceIsIndividual(t *testing.T) {
	line := geneInfoLine(
		"9606", "619538", "OMS", "-", "-",
		"MIM:614444",
		"10|19|3", "10q26.3;19q13.42-q13.43;3p25.3",
		"Otitis media, susceptibility to", "unknown",
		"-", "-", "-", "-", "20151127",
	)
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(line+"\n")))

	n, ok := m.Node("NCBIGene:619538")
	require.True(t, ok)
	require.Equal(t, graph.KindIndividual, n.Kind)

	// Individual-kind equivalence uses sameAs, never equivalentClass.
	require.True(t, m.HasEdge("NCBIGene:619538", graph.PredSameAs, "OMIM:614444"))
	require.False(t, m.HasEdge("NCBIGene:619538", graph.PredEquivalentClass, "OMIM:614444"))

	// Multi-chromosome mapping is skipped, not guessed.
	for _, e := range m.Edges() {
		require.NotEqual(t, graph.PredSubsequenceOf, e.Predicate)
	}
}

func TestParseGeneInfoRangeBandFallsBackToChromosome(t *testing.T) {
	line := geneInfoLine(
		"9606", "4204", "MECP2", "-", "-", "-",
		"10", "10q11.1-q24",
		"-", "protein-coding", "-", "-", "-", "-", "20151127",
	)
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(line+"\n")))
	require.True(t, m.HasEdge("NCBIGene:4204", graph.PredSubsequenceOf, "CHR:9606chr10"))
	require.False(t, m.HasEdge("NCBIGene:4204", graph.PredSubsequenceOf, "CHR:9606chr10q11.1-q24"))
}

func TestParseGeneInfoTaxonFilter(t *testing.T) {
	line := geneInfoLine(
		"10090", "11435", "Chrna1", "-", "-", "-",
		"2", "2 C3|2 43.76 cM",
		"-", "protein-coding", "-", "-", "-", "-", "20151127",
	)
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(line+"\n")))
	_, ok := m.Node("NCBIGene:11435")
	require.False(t, ok)
}

func TestParseGeneInfoTestModeGeneFilter(t *testing.T) {
	lines := geneInfoLine(
		"9606", "438", "ASMT", "-", "-", "-", "X", "Xp22.3",
		"-", "protein-coding", "-", "-", "-", "-", "20151127",
	) + "\n" + geneInfoLine(
		"9606", "439", "OTHER", "-", "-", "-", "1", "1p36",
		"-", "protein-coding", "-", "-", "-", "-", "20151127",
	) + "\n"
	m := graph.NewMemory()
	p := NewParser(m, graph.NewRegistry(), Options{TaxonIDs: []string{"9606"}, GeneIDs: []string{"438"}, TestMode: true})
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(lines)))
	_, ok := m.Node("NCBIGene:438")
	require.True(t, ok)
	_, ok = m.Node("NCBIGene:439")
	require.False(t, ok)
}

func TestParseGeneInfoNewEntryHasNoLabel(t *testing.T) {
	line := geneInfoLine(
		"9606", "999999", "NEWENTRY", "-", "-", "-", "-", "-",
		"Record to support submission of GeneRIFs", "other",
		"-", "-", "-", "-", "20151127",
	)
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(line+"\n")))
	n, _ := m.Node("NCBIGene:999999")
	require.Empty(t, n.Label)
}

func TestParseGeneInfoMalformedRecordFailsFast(t *testing.T) {
	m := graph.NewMemory()
	p := newTestParser(m)
	err := p.ParseGeneInfo(strings.NewReader("9606\t438\tASMT\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, util.ErrMalformedRecord)
}

func TestParseGeneHistoryDeprecation(t *testing.T) {
	info := geneInfoLine(
		"9606", "200", "NEW1", "-", "-", "-", "1", "1p36",
		"-", "protein-coding", "-", "-", "-", "-", "20151127",
	)
	history := "9606\t200\t100\tOLD1\t20040101\n" +
		"9606\t-\t101\tGONE\t20040101\n" // no replacement: skipped

	m := graph.NewMemory()
	kinds := graph.NewRegistry()
	p := NewParser(m, kinds, Options{TaxonIDs: []string{"9606"}})
	require.NoError(t, p.ParseGeneInfo(strings.NewReader(info+"\n")))
	require.NoError(t, p.ParseGeneHistory(strings.NewReader(history)))

	old, ok := m.Node("NCBIGene:100")
	require.True(t, ok)
	require.True(t, old.Deprecated)
	require.Equal(t, graph.KindClass, old.Kind)
	require.True(t, m.HasEdge("NCBIGene:100", graph.PredReplacedBy, "NCBIGene:200"))

	// The old symbol is searchable from the replacement.
	current, ok := m.Node("NCBIGene:200")
	require.True(t, ok)
	require.Contains(t, current.Synonyms, graph.Synonym{Text: "OLD1", Relation: graph.SynonymExact})

	_, ok = m.Node("NCBIGene:101")
	require.False(t, ok)
}

func TestParseGeneHistoryUnclassifiedGeneIsIndividual(t *testing.T) {
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGeneHistory(strings.NewReader("9606\t300\t150\tOLDSYM\t20040101\n")))
	old, _ := m.Node("NCBIGene:150")
	require.Equal(t, graph.KindIndividual, old.Kind)
}

func TestParseGene2Pubmed(t *testing.T) {
	m := graph.NewMemory()
	p := newTestParser(m)
	require.NoError(t, p.ParseGene2Pubmed(strings.NewReader("#tax\tgene\tpmid\n9606\t438\t12345\n")))
	pub, ok := m.Node("PMID:12345")
	require.True(t, ok)
	require.Equal(t, graph.KindIndividual, pub.Kind)
	require.Equal(t, graph.TypeJournalArticle, pub.TypeCode)
	require.True(t, m.HasEdge("PMID:12345", graph.PredIsAbout, "NCBIGene:438"))
}

func TestMapTypeOfGeneDefault(t *testing.T) {
	require.Equal(t, "SO:0001217", MapTypeOfGene("protein-coding"))
	require.Equal(t, graph.TypeSequenceFeature, MapTypeOfGene("unknown"))
	require.Equal(t, graph.TypeSequenceFeature, MapTypeOfGene("no-such-type"))
}
