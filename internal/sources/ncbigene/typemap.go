package ncbigene

import (
	"log"

	"genegraph/internal/graph"
)

// typeOfGeneMap maps the gene_info "type of gene" column to Sequence
// Ontology codes.
var typeOfGeneMap = map[string]string{
	"ncRNA":           "SO:0001263",
	"other":           "SO:0000110",
	"protein-coding":  "SO:0001217",
	"pseudo":          "SO:0000336",
	"rRNA":            "SO:0001637",
	"snRNA":           "SO:0001268",
	"snoRNA":          "SO:0001267",
	"tRNA":            "SO:0001272",
	"unknown":         "SO:0000110",
	"scRNA":           "SO:0001266",
	"miscRNA":         "SO:0000233", // mature transcript, no specific SO term
	"chromosome":      "SO:0000340",
	"chromosome_arm":  "SO:0000105",
	"chromosome_band": "SO:0000341",
	"chromosome_part": "SO:0000830",
}

// MapTypeOfGene maps a gene_info type string to a Sequence Ontology code.
// Unmapped strings fall back to sequence_feature (SO:0000110) with a warning
// so operators can extend the table without failing the run.
func MapTypeOfGene(typeOfGene string) string {
	if code, ok := typeOfGeneMap[typeOfGene]; ok {
		return code
	}
	log.Printf("ncbigene: unmapped type of gene %q, defaulting to %s (sequence_feature)", typeOfGene, graph.TypeSequenceFeature)
	return graph.TypeSequenceFeature
}
