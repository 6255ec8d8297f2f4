package genomic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveLocationsSingleBand(t *testing.T) {
	got := ResolveLocations("X", "Xp22.3", "9606")
	require.Len(t, got, 1)
	require.Equal(t, "CHR:9606chrX", got[0].ChromosomeID)
	require.Equal(t, "CHR:9606chrXp22.3", got[0].RegionID)
	require.True(t, got[0].Band)
}

func TestResolveLocationsPseudoautosomal(t *testing.T) {
	for _, chrom := range []string{"X|Y", "X; Y"} {
		got := ResolveLocations(chrom, "Xp22.3", "9606")
		require.Len(t, got, 2, "chrom %q", chrom)
		require.Equal(t, "CHR:9606chrX", got[0].ChromosomeID)
		require.Equal(t, "CHR:9606chrY", got[1].ChromosomeID)
	}
}

func TestResolveLocationsAmbiguousSkipped(t *testing.T) {
	require.Nil(t, ResolveLocations("10|19|3", "10q26.3;19q13.42-q13.43;3p25.3", "9606"))
	require.Nil(t, ResolveLocations("1|Un", "-", "9606"))
	require.Nil(t, ResolveLocations("19|20", "-", "7955"))
}

func TestResolveLocationsUnknownChromosomeSkipped(t *testing.T) {
	require.Nil(t, ResolveLocations("", "1p36", "9606"))
	require.Nil(t, ResolveLocations("-", "1p36", "9606"))
	require.Nil(t, ResolveLocations("Un", "-", "9606"))
}

func TestResolveLocationsRangeFallsBackToChromosome(t *testing.T) {
	got := ResolveLocations("10", "10q11.1-q24", "9606")
	require.Len(t, got, 1)
	require.False(t, got[0].Band)
	require.Equal(t, "CHR:9606chr10", got[0].RegionID)
}

func TestResolveLocationsMouseCentimorganFallsBack(t *testing.T) {
	// Mouse cM notations like "2 C3|2 43.76 cM" are not a recognized band.
	got := ResolveLocations("2", "2 C3|2 43.76 cM", "10090")
	require.Len(t, got, 1)
	require.False(t, got[0].Band)
	require.Equal(t, "CHR:10090chr2", got[0].RegionID)
}
