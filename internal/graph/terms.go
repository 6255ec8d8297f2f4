package graph

// Ontology terms used by the emitters. CURIEs, not full IRIs; the exporter
// downstream owns prefix expansion.
const (
	// Sequence Ontology type codes.
	TypeSequenceFeature = "SO:0000110" // also the "unknown significance" marker
	TypeGene            = "SO:0000704"
	TypeChromosome      = "SO:0000340"
	TypeChromosomeBand  = "SO:0000341"
	TypeGenome          = "SO:0001026"

	// IAO.
	TypeJournalArticle = "IAO:0000013"
	PredIsAbout        = "IAO:0000136"
	PredReplacedBy     = "IAO:0100001"

	// Relation Ontology.
	PredInTaxon        = "RO:0002162"
	PredHasGeneProduct = "RO:0002205"
	PredSubsequenceOf  = "RO:0002525"
	PredOrthologousTo  = "RO:HOM0000017"

	// OWL-level links the sink records as plain edges.
	PredEquivalentClass = "owl:equivalentClass"
	PredSameAs          = "owl:sameAs"
	PredType            = "rdf:type"

	// OBAN reified association model.
	TypeAssociation    = "OBAN:association"
	PredAssocSubject   = "OBAN:association_has_subject"
	PredAssocPredicate = "OBAN:association_has_predicate"
	PredAssocObject    = "OBAN:association_has_object"
	PredSource         = "dc:source"
)

// SynonymRelation distinguishes exact from related synonyms.
type SynonymRelation string

const (
	SynonymExact   SynonymRelation = "OIO:hasExactSynonym"
	SynonymRelated SynonymRelation = "OIO:hasRelatedSynonym"
)
