package curie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	cases := map[string]string{
		"MIM:614444":              "OMIM:614444",
		"HGNC:HGNC:16851":         "HGNC:16851",
		"Ensembl:ENSG00000136828": "ENSEMBL:ENSG00000136828",
		"MGI:MGI:97490":           "MGI:97490",
		"FLYBASE:FBgn0011656":     "FlyBase:FBgn0011656",
		"ZFIN:ZDB-GENE-040426":    "ZFIN:ZDB-GENE-040426",
		"HPRD:11479":              "HPRD:11479",
	}
	for in, want := range cases {
		require.Equal(t, want, Clean(in), "input %q", in)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"MIM:614444",
		"HGNC:HGNC:16851",
		"Ensembl:ENSG00000136828",
		"MGI:MGI:97490",
		"FLYBASE:FBgn0011656",
		"Vega:OTTHUMG00000020696",
		"NCBIGene:100",
	}
	for _, in := range inputs {
		once := Clean(in)
		require.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestPrefixAndLocalID(t *testing.T) {
	require.Equal(t, "NCBIGene", Prefix("NCBIGene:6469"))
	require.Equal(t, "6469", LocalID("NCBIGene:6469"))
	require.Equal(t, "", Prefix("noprefix"))
	require.Equal(t, "noprefix", LocalID("noprefix"))
	require.Equal(t, "OMIM:1", Make("OMIM", "1"))
}
