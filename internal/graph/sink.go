package graph

// Sink receives the facts the source parsers emit. Operations are
// fire-and-forget and idempotent: repeating a call with identical arguments
// must not create a duplicate fact. Implementations are not required to be
// safe for concurrent use; each parse session owns its sink.
type Sink interface {
	// AddClass ensures a class entity exists. Empty label/typeCode/
	// description leave the corresponding attribute unset (and never
	// overwrite a previously set value with emptiness).
	AddClass(id, label, typeCode, description string)
	// AddIndividual ensures a named-individual entity exists.
	AddIndividual(id, label, typeCode, description string)
	// AddEquivalence links two class-kind entities as same-referent. The
	// pairing is undirected.
	AddEquivalence(a, b string)
	// AddSameIndividual is the individual-kind counterpart of
	// AddEquivalence.
	AddSameIndividual(a, b string)
	AddSynonym(id, text string, rel SynonymRelation)
	AddTriple(subject, predicate, object string)
	// AddDeprecated marks id withdrawn, superseded by replacements.
	AddDeprecated(id string, replacements []string)
	// AddTaxon asserts that id belongs to the organism taxonID.
	AddTaxon(taxonID, id string)
}
