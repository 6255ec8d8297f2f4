package ensembl

import (
	"log"

	"genegraph/internal/graph"
)

// biotypeMap maps BioMart gene_biotype values to Sequence Ontology codes.
// Several non-coding biotypes have no specific SO term and map to the
// generic ncRNA gene code.
var biotypeMap = map[string]string{
	"3prime_overlapping_ncrna":           "SO:0001263",
	"Mt_rRNA":                            "SO:0001637",
	"Mt_tRNA":                            "SO:0001272",
	"antisense":                          "SO:0001263",
	"lincRNA":                            "SO:0001641",
	"macro_lncRNA":                       "SO:0001263",
	"miRNA":                              "SO:0001265",
	"misc_RNA":                           "SO:0001263",
	"polymorphic_pseudogene":             "SO:0000336",
	"processed_pseudogene":               "SO:0000336",
	"processed_transcript":               "SO:0001263",
	"protein_coding":                     "SO:0001217",
	"pseudogene":                         "SO:0000336",
	"rRNA":                               "SO:0001637",
	"ribozyme":                           "SO:0001263",
	"sRNA":                               "SO:0001263",
	"scaRNA":                             "SO:0001263",
	"snoRNA":                             "SO:0001267",
	"transcribed_processed_pseudogene":   "SO:0000336",
	"transcribed_unitary_pseudogene":     "SO:0000336",
	"transcribed_unprocessed_pseudogene": "SO:0000336",
	"translated_unprocessed_pseudogene":  "SO:0000336",
	"unitary_pseudogene":                 "SO:0000336",
	"unprocessed_pseudogene":             "SO:0000336",
	"vaultRNA":                           "SO:0001263",
	"ncRNA":                              "SO:0001263",
	"other":                              "SO:0000110",
	"snRNA":                              "SO:0001268",
	"piRNA":                              "SO:0001638",
	"scRNA":                              "SO:0001266",
	"tRNA":                               "SO:0001272",
	"asRNA":                              "SO:0001263",
}

// MapBiotype maps a BioMart biotype to a Sequence Ontology code, falling
// back to sequence_feature (SO:0000110) with a warning for anything
// unmapped (TEC, the IG_*/TR_* segment biotypes, and future additions).
func MapBiotype(biotype string) string {
	if code, ok := biotypeMap[biotype]; ok {
		return code
	}
	log.Printf("ensembl: unmapped biotype %q, defaulting to %s (sequence_feature)", biotype, graph.TypeSequenceFeature)
	return graph.TypeSequenceFeature
}
