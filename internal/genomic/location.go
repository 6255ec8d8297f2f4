// Package genomic resolves chromosome and map-location fields into
// structured placements. The chromosome column of gene_info cannot be
// trusted when more than one chromosome is listed, so ambiguous input is
// skipped rather than guessed; the single exception is the human
// pseudoautosomal X|Y pair.
package genomic

import (
	"regexp"
	"strings"
)

// bandPattern matches a single cytogenetic band like "Xp22.3" or "10q24":
// an alphanumeric chromosome prefix, a p or q arm, optional digits and an
// optional decimal fraction, anchored to end-of-string. Compound ranges such
// as "15q11-q22" deliberately do not match and fall back to chromosome-level
// placement.
var bandPattern = regexp.MustCompile(`^[0-9A-Z]+[pq](\d+)?(\.\d+)?$`)

// Placement locates an entity under a region: the band when the map
// location parses, otherwise the chromosome itself.
type Placement struct {
	ChromosomeID    string
	ChromosomeLabel string
	RegionID        string
	Band            bool
}

// ChromID builds the taxon-scoped chromosome (or chromosome-band) id.
func ChromID(label, taxonNum string) string {
	return "CHR:" + taxonNum + "chr" + label
}

// ChromLabel builds the disambiguating display label for a chromosome node.
func ChromLabel(label, taxonNum string) string {
	return "chr" + label + " (NCBITaxon:" + taxonNum + ")"
}

// ResolveLocations resolves a raw chromosome field plus map location into
// zero or more placements. A nil result means the record is left unplaced:
// empty or unknown chromosome, or a multi-chromosome listing other than the
// pseudoautosomal X|Y / "X; Y" pair. Only that pair can yield more than one
// placement.
func ResolveLocations(chromField, mapLoc, taxonNum string) []Placement {
	chromField = strings.TrimSpace(chromField)
	if chromField == "" || chromField == "-" || chromField == "Un" {
		return nil
	}
	if strings.Contains(chromField, "|") && chromField != "X|Y" && chromField != "X; Y" {
		// Uncertain mapping; never guess.
		return nil
	}
	if chromField == "X; Y" {
		chromField = "X|Y"
	}

	mapLoc = strings.TrimSpace(mapLoc)
	placements := make([]Placement, 0, 2)
	for _, label := range strings.Split(chromField, "|") {
		p := Placement{
			ChromosomeID:    ChromID(label, taxonNum),
			ChromosomeLabel: label,
		}
		if bandPattern.MatchString(mapLoc) {
			// The map location repeats the chromosome label; strip it to get
			// the band suffix and build the composite band region.
			band := strings.TrimPrefix(mapLoc, label)
			p.RegionID = ChromID(label+band, taxonNum)
			p.Band = true
		} else {
			p.RegionID = p.ChromosomeID
		}
		placements = append(placements, p)
	}
	return placements
}
