package ncbigene

import (
	"strings"
	"testing"

	"genegraph/internal/graph"
	"genegraph/internal/util"

	"github.com/stretchr/testify/require"
)

const geneGroup = "#tax_id\tGeneID\trelationship\tOther_tax_id\tOther_GeneID\n" +
	"9606\t1\tOrtholog\t10090\t2\n" +
	"9606\t1\tOrtholog\t7955\t3\n" +
	"9606\t9\tPotential readthrough sibling\t9606\t10\n"

func TestGroupIndexMembershipTransitsThroughLeader(t *testing.T) {
	ix, err := BuildGroupIndex(strings.NewReader(geneGroup))
	require.NoError(t, err)

	// Seed 2 discovers the leader and its cross-species group-mate.
	require.Equal(t, []string{"1", "3"}, ix.Mates("2"))
	// Querying the leader itself returns the members.
	require.Equal(t, []string{"2", "3"}, ix.Mates("1"))
	// Non-Ortholog relations are discarded.
	require.Empty(t, ix.Mates("9"))
	require.Empty(t, ix.Mates("10"))
	// Unknown gene: empty result, not an error.
	require.Empty(t, ix.Mates("404"))
}

func TestGroupIndexTaxa(t *testing.T) {
	ix, err := BuildGroupIndex(strings.NewReader(geneGroup))
	require.NoError(t, err)
	tax, ok := ix.Taxon("3")
	require.True(t, ok)
	require.Equal(t, "7955", tax)
	_, ok = ix.Taxon("10")
	require.False(t, ok)
}

func TestBuildGroupIndexMalformedRow(t *testing.T) {
	_, err := BuildGroupIndex(strings.NewReader("9606\t1\tOrtholog\t10090\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, util.ErrMalformedRecord)
}

func TestEmitOrthologs(t *testing.T) {
	ix, err := BuildGroupIndex(strings.NewReader(geneGroup))
	require.NoError(t, err)

	m := graph.NewMemory()
	n := EmitOrthologs(m, ix, []string{"NCBIGene:2"})
	require.Equal(t, 2, n)

	require.True(t, m.HasEdge("NCBIGene:2", graph.PredOrthologousTo, "NCBIGene:1"))
	require.True(t, m.HasEdge("NCBIGene:2", graph.PredOrthologousTo, "NCBIGene:3"))
	require.False(t, m.HasEdge("NCBIGene:2", graph.PredOrthologousTo, "NCBIGene:2"))

	// Mates are always gene classes, with their taxon attached.
	mate, ok := m.Node("NCBIGene:3")
	require.True(t, ok)
	require.Equal(t, graph.KindClass, mate.Kind)
	require.Equal(t, graph.TypeGene, mate.TypeCode)
	require.True(t, m.HasEdge("NCBIGene:3", graph.PredInTaxon, "NCBITaxon:7955"))

	// The reified association carries the fixed citation.
	foundCitation := false
	for _, e := range m.Edges() {
		if e.Predicate == graph.PredSource && e.Object == OrthologyCitation {
			foundCitation = true
		}
	}
	require.True(t, foundCitation)
}

func TestEmitOrthologsUnknownSeed(t *testing.T) {
	ix, err := BuildGroupIndex(strings.NewReader(geneGroup))
	require.NoError(t, err)
	m := graph.NewMemory()
	require.Equal(t, 0, EmitOrthologs(m, ix, []string{"NCBIGene:404"}))
	require.Empty(t, m.Edges())
}

func TestEmitOrthologsIdempotentPerSeed(t *testing.T) {
	// The same (seed, mate) pair reachable via two leaders emits once.
	rows := "9606\tL1\tOrtholog\t10090\tM\n" +
		"9606\tL2\tOrtholog\t10090\tM\n" +
		"9606\tL1\tOrtholog\t7955\tX\n" +
		"9606\tL2\tOrtholog\t7955\tX\n"
	ix, err := BuildGroupIndex(strings.NewReader(rows))
	require.NoError(t, err)
	require.Equal(t, []string{"L1", "L2", "X"}, ix.Mates("M"))

	m := graph.NewMemory()
	// 3 mates, one association each even though X is reachable twice.
	require.Equal(t, 3, EmitOrthologs(m, ix, []string{"NCBIGene:M"}))
}
